// Package game wires the pet, the enemy pool and the fruit on the ground into
// one session driven by a per-frame Advance call. It plays the role of the
// host: it clamps frame time, buffers input, detects pickups and keeps score.
package game

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"throng/internal/config"
	"throng/internal/effects"
	"throng/internal/enemy"
	"throng/internal/fruit"
	"throng/internal/pet"
	"throng/internal/score"
	"throng/internal/spawn"
	"throng/internal/world"
)

const (
	maxMessages = 4
	messageTTL  = 3.0
)

// Message is a short notice shown to the player.
type Message struct {
	Text string
	Age  float64
}

// Session is one life of the pet.
type Session struct {
	cfg    *config.Config
	rng    world.Rand
	bounds world.Bounds
	sink   effects.Sink

	pet     *pet.Pet
	pool    *spawn.Pool
	fruits  []*fruit.Fruit
	tracker *score.Tracker

	input    r2.Vec
	hasInput bool

	elapsed  float64
	over     bool
	onOver   func(score.Run)
	messages []Message
}

// New starts a session. best is the persisted high score; extra, if not nil,
// receives every simulation event after scoring.
func New(cfg *config.Config, rng world.Rand, best int, extra effects.Sink) *Session {
	s := &Session{
		cfg:     cfg,
		rng:     rng,
		bounds:  world.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
		tracker: score.NewTracker(cfg.Score, best),
	}
	s.sink = effects.Multi{s.tracker, effects.Func(s.notice), extra}
	s.pet = pet.New(cfg.Pet, cfg.Economy, s.bounds.Center(), rng, s.sink)
	s.pet.SetDeathObserver(s.gameOver)
	s.pool = spawn.New(cfg.Spawn, cfg.Enemy, cfg.Fruit, rng, s.sink)
	return s
}

// OnGameOver registers fn to receive the finished run once the pet dies.
func (s *Session) OnGameOver(fn func(score.Run)) {
	s.onOver = fn
}

func (s *Session) Pet() *pet.Pet           { return s.pet }
func (s *Session) Pool() *spawn.Pool       { return s.pool }
func (s *Session) Bounds() world.Bounds    { return s.bounds }
func (s *Session) Tracker() *score.Tracker { return s.tracker }
func (s *Session) Elapsed() float64        { return s.elapsed }
func (s *Session) Over() bool              { return s.over }

// Score is the current session score.
func (s *Session) Score() int { return s.tracker.Current() }

// Fruits returns the fruit lying in the world. The slice is owned by the
// session and only valid until the next Advance.
func (s *Session) Fruits() []*fruit.Fruit { return s.fruits }

// Messages returns the live notices, oldest first.
func (s *Session) Messages() []string {
	out := make([]string, len(s.messages))
	for i, m := range s.messages {
		out[i] = m.Text
	}
	return out
}

// Result summarizes the run so far.
func (s *Session) Result() score.Run {
	return score.Run{
		Score:    s.tracker.Current(),
		Kills:    s.tracker.Kills(),
		Survived: s.pet.Clock(),
		Cause:    s.pet.CauseOfDeath(),
	}
}

// Advance moves the world forward by one frame.
func (s *Session) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	dt = min(dt, s.cfg.World.MaxFrameStep)
	s.ageMessages(dt)

	if s.over {
		s.pet.Update(dt, s.bounds)
		return
	}

	if s.hasInput {
		s.pet.ManualMove(s.input.X, s.input.Y, dt, s.bounds)
		s.input, s.hasInput = r2.Vec{}, false
	}

	s.pet.Update(dt, s.bounds)
	s.elapsed += dt
	if s.over {
		return
	}

	s.pool.Update(dt, s.pet, s.bounds, s)
	s.updateFruits(dt)
}

func (s *Session) updateFruits(dt float64) {
	kept := s.fruits[:0]
	for _, f := range s.fruits {
		f.Update(dt)
		if f.Expired() {
			s.sink.Emit(effects.Event{Kind: effects.FruitExpired, Position: f.Position(), Label: f.Kind().String()})
			continue
		}
		if !s.pet.Dead() && world.Distance(s.pet.Position(), f.Position()) <= s.cfg.Fruit.PickupRadius {
			if f.Touch(s.pet) {
				s.sink.Emit(effects.Event{Kind: effects.FruitEaten, Position: f.Position(), Label: f.Kind().String()})
			}
			continue
		}
		kept = append(kept, f)
	}
	clear(s.fruits[len(kept):])
	s.fruits = kept
}

// AddDrop puts f on the ground. The enemy pool calls it for every recycled
// enemy.
func (s *Session) AddDrop(f *fruit.Fruit) {
	s.fruits = append(s.fruits, f)
}

// Move buffers one frame of manual movement. dx and dy are input axes in
// [-1,1]; the last call before Advance wins.
func (s *Session) Move(dx, dy float64) {
	if s.over {
		return
	}
	s.input = r2.Vec{X: dx, Y: dy}
	s.hasInput = true
}

// Feed drops a random fruit a fixed distance from the pet in a random
// direction.
func (s *Session) Feed() {
	if s.over {
		return
	}
	at := world.Polar(s.pet.Position(), world.Angle(s.rng), s.cfg.Fruit.DropDistance)
	f := fruit.Random(s.cfg.Fruit, s.bounds.Clamp(at, s.cfg.Fruit.Margin), s.rng)
	s.AddDrop(f)
	s.sink.Emit(effects.Event{Kind: effects.PetFed, Position: s.pet.Position()})
	s.sink.Emit(effects.Event{Kind: effects.FruitDropped, Position: f.Position(), Label: f.Kind().String()})
}

// Play starts a play session.
func (s *Session) Play() { s.pet.Play() }

// Sleep puts the pet to sleep.
func (s *Session) Sleep() { s.pet.Sleep() }

// Strike hits the living enemy under at, reporting whether a hit landed.
func (s *Session) Strike(at r2.Vec) bool {
	if s.over {
		return false
	}
	_, e, ok := s.pool.At(at)
	return ok && s.hit(e)
}

// StrikeNearest hits the closest living enemy within reach of the pet.
func (s *Session) StrikeNearest() bool {
	if s.over {
		return false
	}
	_, e, ok := s.pool.Nearest(s.pet.Position(), s.cfg.Enemy.StrikeReach)
	return ok && s.hit(e)
}

func (s *Session) hit(e *enemy.Enemy) bool {
	return e.TakeDamage(s.cfg.Enemy.StrikeDamage)
}

func (s *Session) gameOver() {
	s.over = true
	run := s.Result()
	slog.Info("game over", "score", run.Score, "kills", run.Kills, "survived", run.Survived, "cause", run.Cause)
	if s.onOver != nil {
		s.onOver(run)
	}
}

// notice turns events into player-facing messages.
func (s *Session) notice(e effects.Event) {
	var text string
	switch e.Kind {
	case effects.FruitEaten:
		text = fmt.Sprintf("Ate %s fruit (+%d)", e.Label, s.cfg.Score.Collect)
	case effects.FruitExpired:
		text = fmt.Sprintf("The %s fruit rotted away", e.Label)
	case effects.EnemyKilled:
		text = fmt.Sprintf("Enemy slain! (+%d)", s.cfg.Score.Kill)
	case effects.EnemySpawned:
		text = "An enemy appears!"
	case effects.PetDied:
		text = fmt.Sprintf("Your pet died (%s)", e.Label)
	default:
		return
	}
	s.messages = append(s.messages, Message{Text: text})
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}

func (s *Session) ageMessages(dt float64) {
	kept := s.messages[:0]
	for _, m := range s.messages {
		m.Age += dt
		if m.Age < messageTTL {
			kept = append(kept, m)
		}
	}
	s.messages = kept
}
