package world

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestBoundsClamp(t *testing.T) {
	b := Bounds{Width: 800, Height: 480}

	tests := []struct {
		name string
		in   r2.Vec
		pad  float64
		want r2.Vec
	}{
		{"inside untouched", r2.Vec{X: 400, Y: 200}, 20, r2.Vec{X: 400, Y: 200}},
		{"left and top edge", r2.Vec{X: -50, Y: 5}, 20, r2.Vec{X: 20, Y: 20}},
		{"right and bottom edge", r2.Vec{X: 900, Y: 1000}, 20, r2.Vec{X: 780, Y: 460}},
		{"padding larger than area collapses to center", r2.Vec{X: 10, Y: 10}, 500, r2.Vec{X: 400, Y: 240}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Clamp(tt.in, tt.pad)
			if got != tt.want {
				t.Errorf("Clamp(%v, %v) = %v, want %v", tt.in, tt.pad, got, tt.want)
			}
		})
	}
}

func TestToward(t *testing.T) {
	dir, dist := Toward(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 3, Y: 4})
	if dist != 5 {
		t.Errorf("dist = %v, want 5", dist)
	}
	if math.Abs(dir.X-0.6) > 1e-9 || math.Abs(dir.Y-0.8) > 1e-9 {
		t.Errorf("dir = %v, want {0.6 0.8}", dir)
	}

	dir, dist = Toward(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 1, Y: 1})
	if dist != 0 || dir != (r2.Vec{}) {
		t.Errorf("coincident points: dir=%v dist=%v, want zero", dir, dist)
	}
}

func TestSamplingRanges(t *testing.T) {
	seq := &Sequence{Values: []float64{0, 0.5, 0.999999}}

	if got := Uniform(seq, 400, 600); got != 400 {
		t.Errorf("Uniform at 0 = %v, want 400", got)
	}
	if got := Uniform(seq, 400, 600); got != 500 {
		t.Errorf("Uniform at 0.5 = %v, want 500", got)
	}
	if got := Angle(seq); got >= 2*math.Pi {
		t.Errorf("Angle = %v, want < 2π", got)
	}
}

func TestRandomPointStaysInside(t *testing.T) {
	b := Bounds{Width: 300, Height: 200}
	seq := &Sequence{Values: []float64{0, 0.25, 0.5, 0.75, 0.99}}
	for i := 0; i < 20; i++ {
		p := RandomPoint(seq, b, 60)
		if p.X < 60 || p.X > 240 || p.Y < 60 || p.Y > 140 {
			t.Fatalf("RandomPoint = %v, outside padded bounds", p)
		}
	}
}

func TestSequenceWraps(t *testing.T) {
	seq := &Sequence{Values: []float64{0.1, 0.2}}
	got := []float64{seq.Float64(), seq.Float64(), seq.Float64()}
	want := []float64{0.1, 0.2, 0.1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %v, want %v", i, got[i], want[i])
		}
	}

	var empty Sequence
	if v := empty.Float64(); v != 0 {
		t.Errorf("empty Sequence = %v, want 0", v)
	}
}
