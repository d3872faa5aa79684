package score

import (
	"throng/internal/config"
	"throng/internal/effects"
)

// Tracker turns simulation events into points. It is an effects.Sink.
type Tracker struct {
	cfg       config.ScoreConfig
	current   int
	best      int
	kills     int
	collected int
}

// NewTracker starts a session score against the persisted best.
func NewTracker(cfg config.ScoreConfig, best int) *Tracker {
	return &Tracker{cfg: cfg, best: best}
}

// Emit implements effects.Sink.
func (t *Tracker) Emit(e effects.Event) {
	switch e.Kind {
	case effects.PetFed:
		t.add(t.cfg.Feed)
	case effects.PetPlayed:
		t.add(t.cfg.Play)
	case effects.PetSlept:
		t.add(t.cfg.Sleep)
	case effects.EnemyKilled:
		t.kills++
		t.add(t.cfg.Kill)
	case effects.FruitEaten:
		t.collected++
		t.add(t.cfg.Collect)
	}
}

func (t *Tracker) add(points int) {
	t.current += points
	if t.current > t.best {
		t.best = t.current
	}
}

func (t *Tracker) Current() int   { return t.current }
func (t *Tracker) Best() int      { return t.best }
func (t *Tracker) Kills() int     { return t.kills }
func (t *Tracker) Collected() int { return t.collected }

// Reset zeroes the session score and keeps the best.
func (t *Tracker) Reset() {
	t.current = 0
	t.kills = 0
	t.collected = 0
}
