// Package telemetry aggregates simulation events into fixed windows for
// headless runs and writes them as CSV.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"throng/internal/effects"
	"throng/internal/pet"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"window_end"`

	// Pet at window end
	State     string  `csv:"state"`
	Hunger    float64 `csv:"hunger"`
	Happiness float64 `csv:"happiness"`
	Energy    float64 `csv:"energy"`
	Wellbeing float64 `csv:"wellbeing"`

	// Wellbeing over the window
	WellbeingMean float64 `csv:"wellbeing_mean"`
	WellbeingMin  float64 `csv:"wellbeing_min"`
	WellbeingMax  float64 `csv:"wellbeing_max"`

	// Events during window
	Spawns        int `csv:"spawns"`
	Bites         int `csv:"bites"`
	Kills         int `csv:"kills"`
	FruitsDropped int `csv:"fruits_dropped"`
	FruitsEaten   int `csv:"fruits_eaten"`
	FruitsExpired int `csv:"fruits_expired"`
	Actions       int `csv:"actions"`

	Enemies int `csv:"enemies"`
	Score   int `csv:"score"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_end", s.WindowEnd),
		slog.String("state", s.State),
		slog.Float64("hunger", s.Hunger),
		slog.Float64("happiness", s.Happiness),
		slog.Float64("energy", s.Energy),
		slog.Float64("wellbeing", s.Wellbeing),
		slog.Float64("wellbeing_mean", s.WellbeingMean),
		slog.Int("spawns", s.Spawns),
		slog.Int("bites", s.Bites),
		slog.Int("kills", s.Kills),
		slog.Int("fruits_eaten", s.FruitsEaten),
		slog.Int("enemies", s.Enemies),
		slog.Int("score", s.Score),
	)
}

// Collector counts events and samples the pet between flushes. It is an
// effects.Sink.
type Collector struct {
	window  float64
	start   float64
	current WindowStats
	samples []float64
}

// NewCollector creates a collector producing one row per window seconds.
func NewCollector(window float64) *Collector {
	return &Collector{window: window}
}

// Emit implements effects.Sink.
func (c *Collector) Emit(e effects.Event) {
	switch e.Kind {
	case effects.EnemySpawned:
		c.current.Spawns++
	case effects.EnemyAttacked:
		c.current.Bites++
	case effects.EnemyKilled:
		c.current.Kills++
	case effects.FruitDropped:
		c.current.FruitsDropped++
	case effects.FruitEaten:
		c.current.FruitsEaten++
	case effects.FruitExpired:
		c.current.FruitsExpired++
	case effects.PetSlept, effects.PetPlayed, effects.PetFed:
		c.current.Actions++
	}
}

// Sample records the pet's wellbeing for the window aggregates.
func (c *Collector) Sample(p *pet.Pet) {
	c.samples = append(c.samples, p.Wellbeing())
}

// Due reports whether the window ending at now is complete.
func (c *Collector) Due(now float64) bool {
	return now-c.start >= c.window
}

// Flush closes the window at now and starts the next one.
func (c *Collector) Flush(now float64, p *pet.Pet, enemies, score int) WindowStats {
	s := c.current
	s.WindowStart = c.start
	s.WindowEnd = now

	n := p.Needs()
	s.State = p.State().String()
	s.Hunger = n.Hunger
	s.Happiness = n.Happiness
	s.Energy = n.Energy
	s.Wellbeing = p.Wellbeing()
	s.Enemies = enemies
	s.Score = score

	if len(c.samples) > 0 {
		s.WellbeingMean = stat.Mean(c.samples, nil)
		s.WellbeingMin = floats.Min(c.samples)
		s.WellbeingMax = floats.Max(c.samples)
	} else {
		s.WellbeingMean = s.Wellbeing
		s.WellbeingMin = s.Wellbeing
		s.WellbeingMax = s.Wellbeing
	}

	c.current = WindowStats{}
	c.samples = c.samples[:0]
	c.start = now
	return s
}
