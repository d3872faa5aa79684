// Package world holds the shared geometry and randomness seams used by the
// simulation: world bounds, clamping, and sampling from an injected source.
package world

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rand is the source of uniform floats in [0,1). *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Bounds is the size of the playable area supplied by the host each tick.
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the middle of the area.
func (b Bounds) Center() r2.Vec {
	return r2.Vec{X: b.Width / 2, Y: b.Height / 2}
}

// Clamp keeps p inside the bounds shrunk by pad on every side. When the area
// is too small for the padding the axis collapses onto its center.
func (b Bounds) Clamp(p r2.Vec, pad float64) r2.Vec {
	return r2.Vec{
		X: clampAxis(p.X, pad, b.Width),
		Y: clampAxis(p.Y, pad, b.Height),
	}
}

func clampAxis(v, pad, size float64) float64 {
	lo, hi := pad, size-pad
	if lo > hi {
		return size / 2
	}
	return Clamp(v, lo, hi)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Uniform samples uniformly from [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Angle samples uniformly from [0, 2π).
func Angle(r Rand) float64 {
	return r.Float64() * 2 * math.Pi
}

// Polar returns the point at the given angle and distance from origin.
func Polar(origin r2.Vec, angle, distance float64) r2.Vec {
	return r2.Add(origin, r2.Vec{X: math.Cos(angle) * distance, Y: math.Sin(angle) * distance})
}

// RandomPoint samples a point uniformly inside the bounds shrunk by pad.
func RandomPoint(r Rand, b Bounds, pad float64) r2.Vec {
	p := r2.Vec{
		X: Uniform(r, pad, b.Width-pad),
		Y: Uniform(r, pad, b.Height-pad),
	}
	return b.Clamp(p, pad)
}

// Distance is the euclidean distance between two points.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Toward returns the unit vector from `from` to `to` and the distance between
// them. The direction is the zero vector when the points coincide.
func Toward(from, to r2.Vec) (r2.Vec, float64) {
	d := r2.Sub(to, from)
	n := r2.Norm(d)
	if n == 0 {
		return r2.Vec{}, 0
	}
	return r2.Scale(1/n, d), n
}

// Sequence is a deterministic Rand that replays a fixed list of values,
// wrapping around when exhausted. An empty Sequence always yields 0.
type Sequence struct {
	Values []float64
	next   int
}

// Float64 implements Rand.
func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
