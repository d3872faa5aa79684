// Package enemy implements the hostile creatures that chase and bite the pet.
package enemy

import (
	"gonum.org/v1/gonum/spatial/r2"

	"throng/internal/config"
	"throng/internal/effects"
	"throng/internal/pet"
	"throng/internal/world"
)

// State is the enemy's combat state. Renderers pick animations from it.
type State int

const (
	Idle State = iota
	Walking
	Hurt
	Death
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Walking:
		return "walking"
	case Hurt:
		return "hurt"
	case Death:
		return "death"
	default:
		return "unknown"
	}
}

// Target is what an enemy pursues and bites.
type Target interface {
	Position() r2.Vec
	ApplyDamage(d pet.Delta, hold float64)
}

// Enemy is a pooled hostile. Its zero value is not usable; create one with New.
type Enemy struct {
	cfg  config.EnemyConfig
	sink effects.Sink

	position   r2.Vec
	velocity   r2.Vec
	facingLeft bool

	health       float64
	state        State
	hurtTimer    float64
	cooldown     float64
	deathElapsed float64
}

// New creates an enemy in its freshly reset state.
func New(cfg config.EnemyConfig, sink effects.Sink) *Enemy {
	e := &Enemy{cfg: cfg, sink: effects.OrNop(sink)}
	e.Reset()
	return e
}

// Reset restores every field to its constructed default.
func (e *Enemy) Reset() {
	e.position = r2.Vec{}
	e.velocity = r2.Vec{}
	e.facingLeft = false
	e.health = e.cfg.MaxHealth
	e.state = Idle
	e.hurtTimer = 0
	e.cooldown = 0
	e.deathElapsed = 0
}

// Spawn resets the enemy and places it at pos.
func (e *Enemy) Spawn(pos r2.Vec) {
	e.Reset()
	e.position = pos
	e.sink.Emit(effects.Event{Kind: effects.EnemySpawned, Position: pos})
}

// Health is the remaining health, never below zero.
func (e *Enemy) Health() float64 { return max(e.health, 0) }

// Position returns the enemy's world position.
func (e *Enemy) Position() r2.Vec { return e.position }

// Velocity returns the velocity of the last update.
func (e *Enemy) Velocity() r2.Vec { return e.velocity }

// FacingLeft reports whether the enemy last moved left.
func (e *Enemy) FacingLeft() bool { return e.facingLeft }

// State returns the current state.
func (e *Enemy) State() State { return e.state }

// Dead reports whether the enemy has been killed.
func (e *Enemy) Dead() bool { return e.state == Death }

// HurtRemaining returns the seconds left in the hurt window.
func (e *Enemy) HurtRemaining() float64 { return e.hurtTimer }

// Cooldown returns the seconds until the enemy can attack again.
func (e *Enemy) Cooldown() float64 { return e.cooldown }

// DeathElapsed returns the seconds since the enemy died.
func (e *Enemy) DeathElapsed() float64 { return e.deathElapsed }

// DeathAnimationFinished reports whether the enemy is dead and its death
// animation has played out.
func (e *Enemy) DeathAnimationFinished() bool {
	return e.state == Death && e.deathElapsed >= e.cfg.DeathAnimation
}

// Update advances the enemy by dt, pursuing and attacking target.
func (e *Enemy) Update(dt float64, target Target) {
	if dt <= 0 {
		return
	}
	dt = min(dt, e.cfg.MaxStep)

	if e.state == Death {
		e.deathElapsed += dt
		return
	}

	e.cooldown = max(e.cooldown-dt, 0)

	if e.state == Hurt {
		e.hurtTimer -= dt
		if e.hurtTimer <= 0 {
			e.hurtTimer = 0
			e.state = Walking
		}
		e.velocity = r2.Vec{}
		return
	}

	if target == nil {
		e.state = Idle
		return
	}
	e.pursue(dt, target.Position())

	if world.Distance(e.position, target.Position()) <= e.cfg.AttackRange && e.cooldown <= 0 {
		e.attack(target)
	}
}

func (e *Enemy) pursue(dt float64, goal r2.Vec) {
	dir, dist := world.Toward(e.position, goal)
	if dist == 0 {
		e.velocity = r2.Vec{}
		e.state = Idle
		return
	}

	e.velocity = r2.Scale(e.cfg.Speed, dir)
	step := e.cfg.Speed * dt
	if step >= dist {
		e.position = goal
	} else {
		e.position = r2.Add(e.position, r2.Scale(step, dir))
	}
	if dir.X != 0 {
		e.facingLeft = dir.X < 0
	}
	e.state = Walking
}

func (e *Enemy) attack(target Target) {
	d := -e.cfg.AttackDamage
	target.ApplyDamage(pet.Delta{Hunger: d, Happiness: d, Energy: d}, 0)
	e.cooldown = e.cfg.AttackCooldown
	e.sink.Emit(effects.Event{Kind: effects.EnemyAttacked, Position: e.position, Amount: e.cfg.AttackDamage})
}

// TakeDamage subtracts amount from health. It is ignored while the enemy is
// hurt or dead, and reports whether the hit landed. A landed hit either kills
// the enemy or hurts it, never both.
func (e *Enemy) TakeDamage(amount float64) bool {
	if e.state == Hurt || e.state == Death || amount <= 0 {
		return false
	}

	e.health -= amount
	e.velocity = r2.Vec{}
	if e.health <= 0 {
		e.state = Death
		e.deathElapsed = 0
		e.hurtTimer = 0
		e.sink.Emit(effects.Event{Kind: effects.EnemyKilled, Position: e.position, Amount: amount})
		return true
	}

	e.state = Hurt
	e.hurtTimer = e.cfg.HurtDuration
	e.sink.Emit(effects.Event{Kind: effects.EnemyHurt, Position: e.position, Amount: amount})
	return true
}

// Contains reports whether p is within the enemy's hit radius.
func (e *Enemy) Contains(p r2.Vec) bool {
	return world.Distance(e.position, p) <= e.cfg.HitRadius
}
