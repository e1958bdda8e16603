// Package timeline drives reveal progress for the demo commands.
//
// inkflow itself never owns time; callers map elapsed time to progress.
// Timeline does that the way the reveal demos play: an eased reveal, a hold
// at full coverage, then a short retract.
package timeline

import (
	"math"
	"time"
)

// Default phase durations.
const (
	DefaultReveal  = 2000 * time.Millisecond
	DefaultHold    = 500 * time.Millisecond
	DefaultRetract = 300 * time.Millisecond
)

// Phase is the part of the timeline being played.
type Phase int

const (
	Reveal Phase = iota
	Hold
	Retract
	Done
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Reveal:
		return "reveal"
	case Hold:
		return "hold"
	case Retract:
		return "retract"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Timeline maps elapsed time to reveal progress.
type Timeline struct {
	Reveal  time.Duration
	Hold    time.Duration
	Retract time.Duration

	// Speed divides the reveal duration. Values <= 0 mean 1.
	Speed float64
}

// New returns the default timeline at the given speed.
func New(speed float64) Timeline {
	return Timeline{
		Reveal:  DefaultReveal,
		Hold:    DefaultHold,
		Retract: DefaultRetract,
		Speed:   speed,
	}
}

func (t Timeline) revealDuration() time.Duration {
	speed := t.Speed
	if !(speed > 0) || math.IsInf(speed, 0) {
		speed = 1
	}
	return time.Duration(float64(t.Reveal) / speed)
}

// Total returns the length of the whole timeline.
func (t Timeline) Total() time.Duration {
	return t.revealDuration() + t.Hold + t.Retract
}

// At returns the progress and phase at elapsed.
func (t Timeline) At(elapsed time.Duration) (float64, Phase) {
	if elapsed < 0 {
		elapsed = 0
	}

	reveal := t.revealDuration()
	if elapsed < reveal {
		return FastOutSlowIn(fraction(elapsed, reveal)), Reveal
	}
	elapsed -= reveal

	if elapsed < t.Hold {
		return 1, Hold
	}
	elapsed -= t.Hold

	if elapsed < t.Retract {
		return 1 - FastOutSlowIn(fraction(elapsed, t.Retract)), Retract
	}
	return 0, Done
}

// Frames returns n progress samples evenly spaced over the reveal phase,
// from 0 to 1 inclusive.
func (t Timeline) Frames(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{1}
	}
	reveal := t.revealDuration()
	out := make([]float64, n)
	for i := range out {
		at := time.Duration(float64(reveal) * float64(i) / float64(n-1))
		if i == n-1 {
			out[i] = 1
			continue
		}
		out[i], _ = t.At(at)
	}
	return out
}

func fraction(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return float64(elapsed) / float64(total)
}

// FastOutSlowIn is the cubic Bézier easing (0.4, 0, 0.2, 1).
func FastOutSlowIn(x float64) float64 {
	return cubicBezier(0.4, 0, 0.2, 1, x)
}

// cubicBezier evaluates the easing curve through (0,0), (x1,y1), (x2,y2),
// (1,1) at horizontal position x. x1 and x2 must be in [0, 1], which keeps
// the x polynomial monotone so bisection finds the parameter.
func cubicBezier(x1, y1, x2, y2, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lo, hi := 0.0, 1.0
	for range 48 {
		mid := (lo + hi) / 2
		if bezier(x1, x2, mid) < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return bezier(y1, y2, (lo+hi)/2)
}

func bezier(p1, p2, t float64) float64 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}
