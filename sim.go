package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"throng/internal/config"
	"throng/internal/fruit"
	"throng/internal/game"
	"throng/internal/score"
	"throng/internal/telemetry"
	"throng/internal/world"
)

// simOptions configures a headless run.
type simOptions struct {
	Seconds float64   // Simulated time limit
	Step    float64   // Fixed frame step; zero uses the configured frame clamp
	Seed    uint64    // RNG seed
	CSV     io.Writer // Window rows; nil discards them
}

// runSim plays one session to death or the time limit with the autopilot at
// the controls.
func runSim(cfg *config.Config, opts simOptions) (score.Run, error) {
	step := opts.Step
	if step <= 0 {
		step = cfg.World.MaxFrameStep
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	collector := telemetry.NewCollector(cfg.Telemetry.Window)
	writer := telemetry.NewWriter(opts.CSV)
	s := game.New(cfg, rng, 0, collector)
	pilot := newAutopilot()

	flush := func() error {
		stats := collector.Flush(s.Elapsed(), s.Pet(), s.Pool().Len(), s.Score())
		slog.Info("stats", "window", stats)
		return writer.Write(stats)
	}

	slog.Info("starting headless simulation", "seed", opts.Seed, "seconds", opts.Seconds, "step", step)

	lastFlush := 0.0
	for s.Elapsed() < opts.Seconds && !s.Over() {
		pilot.drive(s)
		s.Advance(step)
		collector.Sample(s.Pet())

		if collector.Due(s.Elapsed()) {
			if err := flush(); err != nil {
				return score.Run{}, err
			}
			lastFlush = s.Elapsed()
		}
	}
	if s.Elapsed() > lastFlush {
		if err := flush(); err != nil {
			return score.Run{}, err
		}
	}

	run := s.Result()
	slog.Info("simulation finished", "score", run.Score, "kills", run.Kills, "survived", run.Survived, "cause", run.Cause)
	return run, nil
}

// autopilot plays without input. It strikes anything in reach, walks to safe
// fruit, and otherwise looks after whichever need has run low.
type autopilot struct {
	feedBelow    float64
	playBelow    float64
	sleepBelow   float64
	feedCooldown float64 // Minimum seconds between drops
	lastFeed     float64
}

func newAutopilot() *autopilot {
	return &autopilot{feedBelow: 60, playBelow: 40, sleepBelow: 25, feedCooldown: 3, lastFeed: -3}
}

func (a *autopilot) drive(s *game.Session) {
	p := s.Pet()
	if p.Dead() {
		return
	}
	s.StrikeNearest()
	if p.State().Timed() {
		return
	}

	n := p.Needs()
	if f := nearestSafeFruit(s); f != nil && n.Energy >= a.sleepBelow {
		dir, _ := world.Toward(p.Position(), f.Position())
		s.Move(dir.X, dir.Y)
		return
	}

	switch {
	case n.Energy < a.sleepBelow:
		s.Sleep()
	case n.Hunger < a.feedBelow && s.Elapsed()-a.lastFeed >= a.feedCooldown:
		s.Feed()
		a.lastFeed = s.Elapsed()
	case n.Happiness < a.playBelow:
		s.Play()
	}
}

// nearestSafeFruit returns the closest fruit that is not poisonous.
func nearestSafeFruit(s *game.Session) *fruit.Fruit {
	var best *fruit.Fruit
	bestDist := 0.0
	from := s.Pet().Position()
	for _, f := range s.Fruits() {
		if f.Kind() == fruit.Death {
			continue
		}
		if d := world.Distance(from, f.Position()); best == nil || d < bestDist {
			best, bestDist = f, d
		}
	}
	return best
}

func formatRun(r score.Run) string {
	cause := r.Cause
	if cause == "" {
		cause = "alive"
	}
	return fmt.Sprintf("score %d, %d kills, survived %.1fs (%s)", r.Score, r.Kills, r.Survived, cause)
}
