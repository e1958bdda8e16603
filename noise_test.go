package inkflow

import (
	"math"
	"testing"
)

func TestHash_Range(t *testing.T) {
	for y := -20; y <= 20; y++ {
		for x := -20; x <= 20; x++ {
			p := V2(float64(x)*1.37, float64(y)*0.91)
			h := Hash(p)
			if h < 0 || h >= 1 {
				t.Fatalf("Hash(%v) = %v, want [0, 1)", p, h)
			}
			if h2 := Hash(p); h2 != h {
				t.Fatalf("Hash(%v) not deterministic: %v vs %v", p, h, h2)
			}
		}
	}
}

func TestHash_Origin(t *testing.T) {
	if got := Hash(V2(0, 0)); got != 0 {
		t.Errorf("Hash(0, 0) = %v, want 0", got)
	}
}

func TestNoise_Origin(t *testing.T) {
	// Every simplex corner is outside the falloff radius or has a zero offset.
	if got := Noise(V2(0, 0)); got != 0 {
		t.Errorf("Noise(0, 0) = %v, want 0", got)
	}
	if got := FBM(V2(0, 0)); got != 0 {
		t.Errorf("FBM(0, 0) = %v, want 0", got)
	}
}

func TestNoise_Bounded(t *testing.T) {
	for y := range 200 {
		for x := range 200 {
			p := V2(float64(x)*0.173-17, float64(y)*0.131-13)
			n := Noise(p)
			if math.IsNaN(n) || math.Abs(n) > 1.5 {
				t.Fatalf("Noise(%v) = %v, want roughly [-1, 1]", p, n)
			}
		}
	}
}

func TestFBMOctaves(t *testing.T) {
	p := V2(0.37, 1.91)

	tests := []struct {
		name    string
		octaves int
		want    float64
	}{
		{"zero", 0, 0},
		{"negative", -2, 0},
		{"one", 1, 0.5 * Noise(p)},
		{"two", 2, 0.5*Noise(p) + 0.25*Noise(p.Mul(2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FBMOctaves(p, tt.octaves); math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("FBMOctaves(%v, %d) = %v, want %v", p, tt.octaves, got, tt.want)
			}
		})
	}

	if FBM(p) != FBMOctaves(p, DefaultOctaves) {
		t.Error("FBM should use DefaultOctaves")
	}
}

func TestFBM_Range(t *testing.T) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for y := range 100 {
		for x := range 100 {
			v := FBM(V2(float64(x)*0.1-3, float64(y)*0.1-3))
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo < -1 || hi > 1 {
		t.Errorf("FBM range [%v, %v] outside [-1, 1]", lo, hi)
	}
	if hi-lo < 0.2 {
		t.Errorf("FBM range [%v, %v] suspiciously flat", lo, hi)
	}
}

func BenchmarkFBM(b *testing.B) {
	b.ReportAllocs()
	p := V2(0.3, 0.7)
	for i := 0; i < b.N; i++ {
		_ = FBM(p)
	}
}
