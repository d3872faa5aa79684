// Package spawn manages the fixed set of enemy slots: timed spawning around
// the pet, per-tick updates, and recycling once a death animation is over.
package spawn

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"throng/internal/config"
	"throng/internal/effects"
	"throng/internal/enemy"
	"throng/internal/fruit"
	"throng/internal/world"
)

// Handle identifies an enemy slot for one occupancy. A handle taken before a
// recycle no longer resolves afterwards.
type Handle struct {
	index int
	gen   uint32
}

// DropSink receives the fruit a dead enemy leaves behind.
type DropSink interface {
	AddDrop(f *fruit.Fruit)
}

type slot struct {
	enemy  *enemy.Enemy
	gen    uint32
	active bool
}

// Pool owns every enemy for the session. Enemies are allocated once and reset
// in place on reuse.
type Pool struct {
	cfg      config.SpawnConfig
	fruitCfg config.FruitConfig
	rng      world.Rand
	sink     effects.Sink

	slots  []slot
	free   []int
	active []int
	timer  float64
	spawns int
}

// New creates a pool with cfg.MaxEnemies slots. The first spawn happens one
// interval after start.
func New(cfg config.SpawnConfig, enemyCfg config.EnemyConfig, fruitCfg config.FruitConfig, rng world.Rand, sink effects.Sink) *Pool {
	sink = effects.OrNop(sink)
	p := &Pool{
		cfg:      cfg,
		fruitCfg: fruitCfg,
		rng:      rng,
		sink:     sink,
		slots:    make([]slot, cfg.MaxEnemies),
		free:     make([]int, 0, cfg.MaxEnemies),
		active:   make([]int, 0, cfg.MaxEnemies),
		timer:    cfg.Interval,
	}
	for i := range p.slots {
		p.slots[i].enemy = enemy.New(enemyCfg, sink)
		p.free = append(p.free, len(p.slots)-1-i)
	}
	return p
}

// Len is the number of active enemies.
func (p *Pool) Len() int { return len(p.active) }

// Cap is the most enemies that can be active at once.
func (p *Pool) Cap() int { return len(p.slots) }

// Spawns is the total number of spawns so far.
func (p *Pool) Spawns() int { return p.spawns }

// NextSpawn is the time until the spawn timer next elapses.
func (p *Pool) NextSpawn() float64 { return max(p.timer, 0) }

// Get resolves h to its enemy if the handle is still current.
func (p *Pool) Get(h Handle) (*enemy.Enemy, bool) {
	if h.index < 0 || h.index >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[h.index]
	if !s.active || s.gen != h.gen {
		return nil, false
	}
	return s.enemy, true
}

// Each calls fn for every active enemy in spawn order.
func (p *Pool) Each(fn func(Handle, *enemy.Enemy)) {
	for _, i := range p.active {
		fn(Handle{index: i, gen: p.slots[i].gen}, p.slots[i].enemy)
	}
}

// Nearest returns the closest living enemy within radius of pos.
func (p *Pool) Nearest(pos r2.Vec, radius float64) (Handle, *enemy.Enemy, bool) {
	var (
		best     Handle
		bestE    *enemy.Enemy
		bestDist = radius
	)
	p.Each(func(h Handle, e *enemy.Enemy) {
		if e.Dead() {
			return
		}
		if d := world.Distance(pos, e.Position()); d <= bestDist {
			best, bestE, bestDist = h, e, d
		}
	})
	return best, bestE, bestE != nil
}

// At returns the living enemy whose hit area contains pos, preferring the
// one whose center is closest.
func (p *Pool) At(pos r2.Vec) (Handle, *enemy.Enemy, bool) {
	var (
		best  Handle
		bestE *enemy.Enemy
		bestD float64
	)
	p.Each(func(h Handle, e *enemy.Enemy) {
		if e.Dead() || !e.Contains(pos) {
			return
		}
		if d := world.Distance(pos, e.Position()); bestE == nil || d < bestD {
			best, bestE, bestD = h, e, d
		}
	})
	return best, bestE, bestE != nil
}

// Update runs the spawn timer, ticks every active enemy against target and
// recycles enemies whose death animation has finished, handing one fruit per
// recycled enemy to drops.
func (p *Pool) Update(dt float64, target enemy.Target, bounds world.Bounds, drops DropSink) {
	if dt <= 0 {
		return
	}

	p.timer -= dt
	if p.timer <= 0 {
		if len(p.free) > 0 && target != nil {
			p.spawn(target.Position(), bounds)
		}
		p.timer = p.cfg.Interval
	}

	kept := p.active[:0]
	for _, i := range p.active {
		s := &p.slots[i]
		s.enemy.Update(dt, target)
		if s.enemy.DeathAnimationFinished() {
			p.recycle(i, drops)
			continue
		}
		kept = append(kept, i)
	}
	p.active = kept
}

func (p *Pool) spawn(around r2.Vec, bounds world.Bounds) {
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	dist := world.Uniform(p.rng, p.cfg.MinDistance, p.cfg.MaxDistance)
	pos := bounds.Clamp(world.Polar(around, world.Angle(p.rng), dist), p.cfg.Margin)

	s := &p.slots[i]
	s.active = true
	s.enemy.Spawn(pos)
	p.active = append(p.active, i)
	p.spawns++

	slog.Debug("enemy spawned", "slot", i, "x", pos.X, "y", pos.Y, "active", len(p.active))
}

func (p *Pool) recycle(i int, drops DropSink) {
	s := &p.slots[i]
	pos := s.enemy.Position()

	f := fruit.Random(p.fruitCfg, pos, p.rng)
	if drops != nil {
		drops.AddDrop(f)
	}
	p.sink.Emit(effects.Event{Kind: effects.FruitDropped, Position: pos, Label: f.Kind().String()})

	s.enemy.Reset()
	s.active = false
	s.gen++
	p.free = append(p.free, i)
	p.sink.Emit(effects.Event{Kind: effects.EnemyRecycled, Position: pos})

	slog.Debug("enemy recycled", "slot", i, "drop", f.Kind().String())
}

// Reset returns every slot to the free list and restarts the spawn timer.
func (p *Pool) Reset() {
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		s := &p.slots[i]
		if s.active {
			s.gen++
		}
		s.active = false
		s.enemy.Reset()
		p.free = append(p.free, i)
	}
	p.active = p.active[:0]
	p.timer = p.cfg.Interval
	p.spawns = 0
}
