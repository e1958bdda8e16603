package inkflow

import (
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		got    Vec2
		expect Vec2
	}{
		{"add", V2(1, 2).Add(V2(3, 4)), V2(4, 6)},
		{"sub", V2(1, 2).Sub(V2(3, 4)), V2(-2, -2)},
		{"mul", V2(1, -2).Mul(3), V2(3, -6)},
		{"div", V2(3, 6).Div(3), V2(1, 2)},
		{"scale", V2(0.5, 0.25).Scale(V2(1000, 400)), V2(500, 100)},
		{"add scalar", V2(1, 2).AddScalar(0.5), V2(1.5, 2.5)},
		{"floor", V2(1.7, -0.2).Floor(), V2(1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expect {
				t.Errorf("got %v, want %v", tt.got, tt.expect)
			}
		})
	}
}

func TestVec2_Metrics(t *testing.T) {
	if got := V2(3, 4).Len(); got != 5 {
		t.Errorf("Len() = %v, want 5", got)
	}
	if got := V2(1, 1).Dist(V2(4, 5)); got != 5 {
		t.Errorf("Dist() = %v, want 5", got)
	}
	if got := V2(2, 3).Dot(V2(4, -1)); got != 5 {
		t.Errorf("Dot() = %v, want 5", got)
	}
	if got := V2(2, 7).MaxComponent(); got != 7 {
		t.Errorf("MaxComponent() = %v, want 7", got)
	}
}

func TestVec2_IsFinite(t *testing.T) {
	tests := []struct {
		v    Vec2
		want bool
	}{
		{V2(0, 0), true},
		{V2(-1e300, 1e300), true},
		{V2(math.NaN(), 0), false},
		{V2(0, math.Inf(1)), false},
		{V2(math.Inf(-1), math.NaN()), false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFinite(); got != tt.want {
			t.Errorf("%v.IsFinite() = %v, want %v", tt.v, got, tt.want)
		}
	}
}
