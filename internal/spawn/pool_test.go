package spawn

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"throng/internal/config"
	"throng/internal/effects"
	"throng/internal/enemy"
	"throng/internal/fruit"
	"throng/internal/pet"
	"throng/internal/world"
)

var testBounds = world.Bounds{Width: 2000, Height: 2000}

type stillTarget struct {
	pos  r2.Vec
	hits int
}

func (s *stillTarget) Position() r2.Vec { return s.pos }

func (s *stillTarget) ApplyDamage(pet.Delta, float64) { s.hits++ }

type dropList struct {
	fruits []*fruit.Fruit
}

func (d *dropList) AddDrop(f *fruit.Fruit) { d.fruits = append(d.fruits, f) }

func newTestPool(t *testing.T) (*Pool, *effects.Recorder, config.Config) {
	t.Helper()
	cfg := *config.Default()
	rec := &effects.Recorder{}
	p := New(cfg.Spawn, cfg.Enemy, cfg.Fruit, &world.Sequence{Values: []float64{0.3, 0.6, 0.1}}, rec)
	return p, rec, cfg
}

func TestSpawnTiming(t *testing.T) {
	p, rec, cfg := newTestPool(t)
	target := &stillTarget{pos: testBounds.Center()}

	p.Update(cfg.Spawn.Interval-0.5, target, testBounds, nil)
	if p.Len() != 0 {
		t.Fatalf("Len() = %d before the first interval, want 0", p.Len())
	}
	p.Update(0.5, target, testBounds, nil)
	if p.Len() != 1 {
		t.Fatalf("Len() = %d after the first interval, want 1", p.Len())
	}
	if got := rec.Count(effects.EnemySpawned); got != 1 {
		t.Errorf("EnemySpawned events = %d, want 1", got)
	}
}

func TestSpawnDistance(t *testing.T) {
	p, _, cfg := newTestPool(t)
	target := &stillTarget{pos: testBounds.Center()}

	for i := 0; i < cfg.Spawn.MaxEnemies; i++ {
		p.timer = 0
		p.Update(0.001, target, testBounds, nil)
	}

	p.Each(func(h Handle, e *enemy.Enemy) {
		d := world.Distance(e.Position(), target.pos)
		// Enemies have taken one tiny step toward the target.
		if d < cfg.Spawn.MinDistance-1 || d > cfg.Spawn.MaxDistance {
			t.Errorf("enemy %v spawned %v away, want within [%v, %v]", h, d, cfg.Spawn.MinDistance, cfg.Spawn.MaxDistance)
		}
	})
}

func TestSpawnClampedToBounds(t *testing.T) {
	p, _, cfg := newTestPool(t)
	small := world.Bounds{Width: 800, Height: 480}
	target := &stillTarget{pos: small.Center()}

	p.timer = 0
	p.Update(0.001, target, small, nil)

	_, e, ok := p.Nearest(target.pos, 1e9)
	if !ok {
		t.Fatal("no enemy spawned")
	}
	pos := e.Position()
	m := cfg.Spawn.Margin
	if pos.X < m-1 || pos.X > small.Width-m+1 || pos.Y < m-1 || pos.Y > small.Height-m+1 {
		t.Errorf("spawned at %v, outside the margin", pos)
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	p, _, cfg := newTestPool(t)
	target := &stillTarget{pos: testBounds.Center()}

	for i := 0; i < 200; i++ {
		p.Update(cfg.Spawn.Interval*3, target, testBounds, nil)
		if p.Len() > p.Cap() {
			t.Fatalf("Len() = %d, exceeds Cap() = %d", p.Len(), p.Cap())
		}
	}
	if p.Len() != cfg.Spawn.MaxEnemies {
		t.Errorf("Len() = %d, want %d at saturation", p.Len(), cfg.Spawn.MaxEnemies)
	}
}

func TestRecycleDropsExactlyOnce(t *testing.T) {
	p, rec, cfg := newTestPool(t)
	target := &stillTarget{pos: testBounds.Center()}
	drops := &dropList{}

	p.timer = 0
	p.Update(0.01, target, testBounds, drops)

	var h Handle
	var e *enemy.Enemy
	p.Each(func(hh Handle, ee *enemy.Enemy) { h, e = hh, ee })

	if !e.TakeDamage(60) || e.State() != enemy.Hurt || e.Health() != 40 {
		t.Fatalf("first hit: %v health %v", e.State(), e.Health())
	}
	if e.TakeDamage(60) {
		t.Fatal("hit landed inside the hurt window")
	}
	for i := 0; i < 10; i++ {
		p.Update(0.05, target, testBounds, drops)
	}
	if !e.TakeDamage(60) || e.State() != enemy.Death {
		t.Fatalf("second hit: %v health %v", e.State(), e.Health())
	}

	for i := 0; i < 40; i++ {
		p.Update(0.05, target, testBounds, drops)
	}

	if len(drops.fruits) != 1 {
		t.Errorf("drops = %d, want 1", len(drops.fruits))
	}
	if got := rec.Count(effects.EnemyRecycled); got != 1 {
		t.Errorf("EnemyRecycled events = %d, want 1", got)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d after recycle, want 0", p.Len())
	}
	if _, ok := p.Get(h); ok {
		t.Error("stale handle still resolves after recycle")
	}

	fresh := enemy.New(cfg.Enemy, nil)
	if e.Health() != fresh.Health() || e.State() != fresh.State() ||
		e.HurtRemaining() != fresh.HurtRemaining() || e.Cooldown() != fresh.Cooldown() ||
		e.DeathElapsed() != fresh.DeathElapsed() {
		t.Errorf("recycled enemy carries stale state: health %v state %v", e.Health(), e.State())
	}
}

func TestSlotReuse(t *testing.T) {
	cfg := *config.Default()
	cfg.Spawn.MaxEnemies = 1
	p := New(cfg.Spawn, cfg.Enemy, cfg.Fruit, &world.Sequence{Values: []float64{0.5}}, nil)
	target := &stillTarget{pos: testBounds.Center()}
	drops := &dropList{}

	p.timer = 0
	p.Update(0.01, target, testBounds, drops)
	first, e, _ := p.Nearest(target.pos, 1e9)
	e.TakeDamage(1000)
	for i := 0; i < 20; i++ {
		p.Update(0.05, target, testBounds, drops)
	}

	p.timer = 0
	p.Update(0.01, target, testBounds, drops)
	second, e2, ok := p.Nearest(target.pos, 1e9)
	if !ok {
		t.Fatal("no enemy after reuse")
	}
	if e2 != e {
		t.Error("reuse allocated a new enemy")
	}
	if first == second {
		t.Error("handle unchanged across recycle")
	}
	if e2.Health() != cfg.Enemy.MaxHealth {
		t.Errorf("Health() = %v after reuse, want %v", e2.Health(), cfg.Enemy.MaxHealth)
	}
	if p.Spawns() != 2 {
		t.Errorf("Spawns() = %d, want 2", p.Spawns())
	}
}

func TestNearestSkipsDeadAndFar(t *testing.T) {
	p, _, _ := newTestPool(t)
	target := &stillTarget{pos: testBounds.Center()}
	p.timer = 0
	p.Update(0.01, target, testBounds, nil)

	_, e, _ := p.Nearest(target.pos, 1e9)
	if _, _, ok := p.Nearest(target.pos, 10); ok {
		t.Error("Nearest() found an enemy outside the radius")
	}
	if _, _, ok := p.At(e.Position()); !ok {
		t.Error("At() missed an enemy at its own position")
	}

	e.TakeDamage(1000)
	if _, _, ok := p.Nearest(target.pos, 1e9); ok {
		t.Error("Nearest() returned a dead enemy")
	}
	if _, _, ok := p.At(e.Position()); ok {
		t.Error("At() returned a dead enemy")
	}
}

func TestReset(t *testing.T) {
	p, _, cfg := newTestPool(t)
	target := &stillTarget{pos: testBounds.Center()}
	for i := 0; i < 3; i++ {
		p.timer = 0
		p.Update(0.01, target, testBounds, nil)
	}
	p.Reset()
	if p.Len() != 0 || p.Spawns() != 0 {
		t.Errorf("after Reset: Len() = %d Spawns() = %d", p.Len(), p.Spawns())
	}
	if p.NextSpawn() != cfg.Spawn.Interval {
		t.Errorf("NextSpawn() = %v, want %v", p.NextSpawn(), cfg.Spawn.Interval)
	}
}
