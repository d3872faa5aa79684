package enemy

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"throng/internal/config"
	"throng/internal/effects"
	"throng/internal/pet"
)

type fakeTarget struct {
	pos  r2.Vec
	hits []pet.Delta
}

func (f *fakeTarget) Position() r2.Vec { return f.pos }

func (f *fakeTarget) ApplyDamage(d pet.Delta, hold float64) {
	f.hits = append(f.hits, d)
}

func newTestEnemy(pos r2.Vec) (*Enemy, *effects.Recorder) {
	rec := &effects.Recorder{}
	e := New(config.Default().Enemy, rec)
	e.Spawn(pos)
	return e, rec
}

func step(e *Enemy, target Target, seconds float64) {
	for i := 0; i < int(math.Round(seconds/0.05)); i++ {
		e.Update(0.05, target)
	}
}

func TestSpawnDefaults(t *testing.T) {
	e, rec := newTestEnemy(r2.Vec{X: 10, Y: 20})
	if e.Health() != 100 {
		t.Errorf("Health() = %v, want 100", e.Health())
	}
	if e.State() != Idle {
		t.Errorf("State() = %v, want idle", e.State())
	}
	if e.Position() != (r2.Vec{X: 10, Y: 20}) {
		t.Errorf("Position() = %v, want (10,20)", e.Position())
	}
	if got := rec.Count(effects.EnemySpawned); got != 1 {
		t.Errorf("EnemySpawned events = %d, want 1", got)
	}
}

func TestPursuit(t *testing.T) {
	e, _ := newTestEnemy(r2.Vec{X: 500, Y: 100})
	target := &fakeTarget{pos: r2.Vec{X: 100, Y: 100}}

	e.Update(0.1, target)
	if e.State() != Walking {
		t.Errorf("State() = %v, want walking", e.State())
	}
	if got := e.Position().X; math.Abs(got-488) > 1e-9 {
		t.Errorf("X = %v, want 488", got)
	}
	if !e.FacingLeft() {
		t.Error("FacingLeft() = false moving left")
	}
	if len(target.hits) != 0 {
		t.Errorf("hits = %d at long range, want 0", len(target.hits))
	}
}

func TestPursuitDoesNotOvershoot(t *testing.T) {
	e, _ := newTestEnemy(r2.Vec{X: 105, Y: 100})
	target := &fakeTarget{pos: r2.Vec{X: 100, Y: 100}}
	e.Update(0.1, target)
	if e.Position() != target.pos {
		t.Errorf("Position() = %v, want %v", e.Position(), target.pos)
	}
}

func TestAttackCooldown(t *testing.T) {
	cfg := config.Default().Enemy
	e, rec := newTestEnemy(r2.Vec{X: 150, Y: 100})
	target := &fakeTarget{pos: r2.Vec{X: 100, Y: 100}}

	e.Update(0.05, target)
	if len(target.hits) != 1 {
		t.Fatalf("hits = %d after entering range, want 1", len(target.hits))
	}
	want := pet.Delta{Hunger: -cfg.AttackDamage, Happiness: -cfg.AttackDamage, Energy: -cfg.AttackDamage}
	if target.hits[0] != want {
		t.Errorf("hit = %+v, want %+v", target.hits[0], want)
	}

	step(e, target, 1.0)
	if len(target.hits) != 1 {
		t.Errorf("hits = %d during cooldown, want 1", len(target.hits))
	}

	step(e, target, 0.6)
	if len(target.hits) != 2 {
		t.Errorf("hits = %d after cooldown, want 2", len(target.hits))
	}
	if got := rec.Count(effects.EnemyAttacked); got != 2 {
		t.Errorf("EnemyAttacked events = %d, want 2", got)
	}
}

func TestDamageAndDeath(t *testing.T) {
	cfg := config.Default().Enemy
	e, rec := newTestEnemy(r2.Vec{X: 400, Y: 100})
	target := &fakeTarget{pos: r2.Vec{X: 0, Y: 100}}

	if !e.TakeDamage(60) {
		t.Fatal("first hit did not land")
	}
	if e.State() != Hurt || e.Health() != 40 {
		t.Fatalf("after first hit: %v health %v, want hurt 40", e.State(), e.Health())
	}

	if e.TakeDamage(60) {
		t.Error("hit landed during the hurt window")
	}
	if e.Health() != 40 {
		t.Errorf("Health() = %v after ignored hit, want 40", e.Health())
	}

	pos := e.Position()
	e.Update(0.1, target)
	if e.Position() != pos {
		t.Error("hurt enemy moved")
	}

	step(e, target, cfg.HurtDuration)
	if e.State() == Hurt {
		t.Fatalf("still hurt after %v", cfg.HurtDuration+0.1)
	}

	if !e.TakeDamage(60) {
		t.Fatal("second hit did not land")
	}
	if e.State() != Death {
		t.Fatalf("State() = %v, want death", e.State())
	}
	if e.Health() != 0 {
		t.Errorf("Health() = %v, want 0 for display", e.Health())
	}
	if e.HurtRemaining() != 0 {
		t.Errorf("HurtRemaining() = %v on a dead enemy", e.HurtRemaining())
	}
	if e.TakeDamage(10) {
		t.Error("dead enemy took damage")
	}
	if got := rec.Count(effects.EnemyKilled); got != 1 {
		t.Errorf("EnemyKilled events = %d, want 1", got)
	}
	if got := rec.Count(effects.EnemyHurt); got != 1 {
		t.Errorf("EnemyHurt events = %d, want 1", got)
	}

	pos = e.Position()
	e.Update(0.1, target)
	if e.Position() != pos {
		t.Error("dead enemy moved")
	}
	if e.DeathAnimationFinished() {
		t.Error("death animation finished too early")
	}
	step(e, target, cfg.DeathAnimation)
	if !e.DeathAnimationFinished() {
		t.Errorf("DeathAnimationFinished() = false after %v", e.DeathElapsed())
	}
}

func TestStalledFrameCannotSkipHurt(t *testing.T) {
	e, _ := newTestEnemy(r2.Vec{})
	e.TakeDamage(10)
	e.Update(10, &fakeTarget{})
	if e.State() != Hurt {
		t.Errorf("State() = %v after a stalled frame, want hurt", e.State())
	}
}

func TestResetClearsEverything(t *testing.T) {
	e, _ := newTestEnemy(r2.Vec{X: 100, Y: 100})
	target := &fakeTarget{pos: r2.Vec{X: 90, Y: 100}}
	e.Update(0.05, target)
	e.TakeDamage(150)
	step(e, target, 1)

	e.Reset()
	fresh := New(config.Default().Enemy, nil)
	if e.Health() != fresh.Health() || e.State() != fresh.State() ||
		e.HurtRemaining() != fresh.HurtRemaining() || e.Cooldown() != fresh.Cooldown() ||
		e.DeathElapsed() != fresh.DeathElapsed() || e.FacingLeft() != fresh.FacingLeft() {
		t.Errorf("reset enemy differs from a fresh one: %+v", e)
	}
}

func TestContains(t *testing.T) {
	e, _ := newTestEnemy(r2.Vec{X: 100, Y: 100})
	if !e.Contains(r2.Vec{X: 120, Y: 110}) {
		t.Error("Contains() = false for a nearby point")
	}
	if e.Contains(r2.Vec{X: 300, Y: 100}) {
		t.Error("Contains() = true for a far point")
	}
}
