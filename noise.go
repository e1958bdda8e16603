package inkflow

import "math"

// Noise constants. The WGSL and Kage programs in shader/ carry the same
// literals; shader tests compare them textually.
const (
	// HashDotX and HashDotY are the dot-product weights of Hash.
	HashDotX = 127.1
	HashDotY = 311.7

	// HashScale multiplies the sine before taking the fractional part.
	HashScale = 43758.5453

	// SimplexSkew is (sqrt(3)-1)/2, the input skew factor.
	SimplexSkew = 0.366025404

	// SimplexUnskew is (3-sqrt(3))/6, the lattice unskew factor.
	SimplexUnskew = 0.211324865

	// NoiseAmplitude scales the summed corner contributions to roughly [-1, 1].
	NoiseAmplitude = 70.0

	// DefaultOctaves is the octave count used by FBM.
	DefaultOctaves = 4
)

// fract returns x - floor(x), always in [0, 1).
func fract(x float64) float64 {
	return x - math.Floor(x)
}

// Hash maps a 2D point to a pseudo-random value in [0, 1).
//
// Hash is deterministic but discontinuous: neighbouring inputs produce
// unrelated outputs. Noise only samples it at lattice points.
func Hash(p Vec2) float64 {
	return fract(math.Sin(p.X*HashDotX+p.Y*HashDotY) * HashScale)
}

// Noise evaluates 2D simplex-style gradient noise at p.
//
// The plane is skewed onto a triangular lattice, the three corners of the
// containing simplex contribute (0.5 - |d|²)⁴ weighted gradient terms, and the
// sum is scaled by NoiseAmplitude. The result lies approximately in [-1, 1].
//
// Corner gradients are hashed relative to the containing cell rather than the
// corner itself, so the field is smooth inside a cell but can step across
// cell edges. FBM layering hides the seams in the reveal boundary.
func Noise(p Vec2) float64 {
	i := p.AddScalar((p.X + p.Y) * SimplexSkew).Floor()
	a := p.Sub(i).AddScalar((i.X + i.Y) * SimplexUnskew)

	var o Vec2
	if a.X < a.Y {
		o = Vec2{X: 0, Y: 1}
	} else {
		o = Vec2{X: 1, Y: 0}
	}

	b := a.Sub(o).AddScalar(SimplexUnskew)
	c := a.AddScalar(-1 + 2*SimplexUnskew)

	ha := falloff(a)
	hb := falloff(b)
	hc := falloff(c)

	ga := Vec2{X: Hash(i), Y: Hash(i.Add(Vec2{X: 1, Y: 0}))}
	gb := Vec2{X: Hash(i.Add(o).Add(Vec2{X: 0, Y: 1})), Y: Hash(i.Add(o))}
	hi := Hash(i.Add(Vec2{X: 1, Y: 1}))
	gc := Vec2{X: hi, Y: hi}

	n := ha*a.Dot(ga) + hb*b.Dot(gb) + hc*c.Dot(gc)
	return n * NoiseAmplitude
}

// falloff returns max(0.5 - dot(d, d), 0)⁴.
func falloff(d Vec2) float64 {
	h := math.Max(0.5-d.Dot(d), 0)
	h *= h
	return h * h
}

// FBM sums DefaultOctaves octaves of Noise (fractal Brownian motion).
func FBM(p Vec2) float64 {
	return FBMOctaves(p, DefaultOctaves)
}

// FBMOctaves sums the given number of Noise octaves. Each octave doubles the
// frequency and halves the amplitude, starting at amplitude 0.5 and frequency
// 1. Non-positive octave counts return 0.
func FBMOctaves(p Vec2, octaves int) float64 {
	value := 0.0
	amplitude := 0.5
	frequency := 1.0
	for range octaves {
		value += amplitude * Noise(p.Mul(frequency))
		frequency *= 2
		amplitude *= 0.5
	}
	return value
}
