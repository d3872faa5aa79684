package pet

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"throng/internal/config"
	"throng/internal/effects"
	"throng/internal/world"
)

// Pet is the single player-controlled creature. All of its state is owned
// here; other components act on it only through the command methods.
type Pet struct {
	cfg     config.PetConfig
	economy config.EconomyConfig
	rng     world.Rand
	sink    effects.Sink

	position   r2.Vec
	target     r2.Vec
	wandering  bool
	facingLeft bool

	needs     Needs
	wellbeing float64

	state        State
	stateElapsed float64
	deathElapsed float64
	clock        float64
	actions      Arbiter

	manualThisTick            bool
	suppressAutoBehaviorUntil float64

	cause    string
	onDeath  func()
	notified bool
}

// New creates a pet with full needs at pos.
func New(cfg config.PetConfig, economy config.EconomyConfig, pos r2.Vec, rng world.Rand, sink effects.Sink) *Pet {
	return &Pet{
		cfg:       cfg,
		economy:   economy,
		rng:       rng,
		sink:      effects.OrNop(sink),
		position:  pos,
		target:    pos,
		needs:     FullNeeds(),
		wellbeing: clampStat(economy.InitialWellbeing),
		state:     Idle,
	}
}

// SetDeathObserver registers the callback fired once when the pet dies.
func (p *Pet) SetDeathObserver(fn func()) {
	p.onDeath = fn
}

// Needs returns the current needs.
func (p *Pet) Needs() Needs { return p.needs }

// Wellbeing returns the derived survival metric.
func (p *Pet) Wellbeing() float64 { return p.wellbeing }

// State returns the current behavior state.
func (p *Pet) State() State { return p.state }

// Dead reports whether the pet has died.
func (p *Pet) Dead() bool { return p.state == Dead }

// Position returns the pet's location.
func (p *Pet) Position() r2.Vec { return p.position }

// FacingLeft reports the last horizontal movement direction.
func (p *Pet) FacingLeft() bool { return p.facingLeft }

// StateElapsed is the time spent in the current state.
func (p *Pet) StateElapsed() float64 { return p.stateElapsed }

// DeathElapsed is the time since death, for the death animation.
func (p *Pet) DeathElapsed() float64 { return p.deathElapsed }

// DeathAnimationFinished reports whether the death animation has played out.
func (p *Pet) DeathAnimationFinished() bool {
	return p.state == Dead && p.deathElapsed >= p.cfg.DeathAnimation
}

// CauseOfDeath names what killed the pet, or "" while it lives.
func (p *Pet) CauseOfDeath() string { return p.cause }

// Clock is the simulated time the pet has lived.
func (p *Pet) Clock() float64 { return p.clock }

// Action returns the running timed action, if any.
func (p *Pet) Action() (Action, bool) {
	return p.actions.Current(), p.actions.Active()
}

// AutoBehaviorSuppressed reports whether recent manual control is holding off
// autonomous wandering.
func (p *Pet) AutoBehaviorSuppressed() bool {
	return p.clock < p.suppressAutoBehaviorUntil
}

// Update advances the pet by dt within the given world.
func (p *Pet) Update(dt float64, bounds world.Bounds) {
	if dt <= 0 {
		return
	}
	dt = min(dt, p.cfg.MaxStep)

	if p.state == Dead {
		p.deathElapsed += dt
		return
	}

	p.clock += dt
	p.stateElapsed += dt

	if p.actions.Active() && p.actions.Tick(dt, &p.needs) {
		p.setState(Idle)
	}

	p.needs = Decay(p.needs, p.state, dt, p.economy)
	p.wellbeing = UpdateWellbeing(p.wellbeing, p.needs, dt, p.economy)
	if p.wellbeing <= MinStat || p.needs.Depleted() {
		p.die()
		return
	}

	manual := p.manualThisTick
	p.manualThisTick = false
	if manual || p.state.Timed() {
		return
	}

	// A manual walk ends as soon as input stops.
	if p.state == Walking && !p.wandering {
		p.setState(Idle)
	}

	if p.AutoBehaviorSuppressed() {
		return
	}
	p.autonomous(dt, bounds)
}

func (p *Pet) autonomous(dt float64, bounds world.Bounds) {
	switch p.state {
	case Idle, Blinking:
		if p.rng.Float64() < p.cfg.BlinkRate*dt {
			p.toggleBlink()
		}
		if p.rng.Float64() < p.cfg.WanderRate*dt {
			p.startWander(bounds)
		}
	case Walking:
		p.stepWander(dt)
	}
}

func (p *Pet) toggleBlink() {
	if p.state == Idle {
		p.setState(Blinking)
	} else {
		p.setState(Idle)
	}
}

func (p *Pet) startWander(bounds world.Bounds) {
	pad := min(bounds.Width, bounds.Height) * p.cfg.WanderPadding
	p.target = world.RandomPoint(p.rng, bounds, pad)
	p.wandering = true
	p.setState(Walking)
}

func (p *Pet) stepWander(dt float64) {
	dir, dist := world.Toward(p.position, p.target)
	step := p.cfg.WalkSpeed * dt
	if step >= dist {
		p.position = p.target
	} else {
		p.position = r2.Add(p.position, r2.Scale(step, dir))
	}
	if dir.X != 0 {
		p.facingLeft = dir.X < 0
	}
	if world.Distance(p.position, p.target) < p.cfg.ArrivalEpsilon {
		p.wandering = false
		p.setState(Idle)
	}
}

// ManualMove moves the pet under player control. dx and dy are the input
// axes; a combined magnitude above 1 is normalized so diagonals are not faster.
func (p *Pet) ManualMove(dx, dy, dt float64, bounds world.Bounds) {
	if p.state == Dead {
		return
	}
	if p.state.Timed() {
		p.actions.Cancel()
		p.setState(Idle)
	}

	p.wandering = false
	p.manualThisTick = true
	p.suppressAutoBehaviorUntil = p.clock + p.cfg.AutoBehaviorTimeout

	axis := r2.Vec{X: dx, Y: dy}
	n := r2.Norm(axis)
	if n == 0 {
		p.setState(Idle)
		return
	}
	if n > 1 {
		axis = r2.Scale(1/n, axis)
	}

	dt = min(max(dt, 0), p.cfg.MaxStep)
	p.position = bounds.Clamp(r2.Add(p.position, r2.Scale(p.cfg.ManualSpeed*dt, axis)), p.cfg.Padding)
	p.target = p.position
	if dx != 0 {
		p.facingLeft = dx < 0
	}
	if p.state != Walking {
		p.setState(Walking)
	}
}

// StartAction begins sleeping, eating or playing, cancelling any action in
// progress. Any other kind, or a dead pet, is ignored.
func (p *Pet) StartAction(kind State, duration float64) {
	if p.state == Dead {
		return
	}
	switch kind {
	case Sleeping:
		gain := Delta{Energy: min(p.cfg.Sleep.Gain, MaxStat-p.needs.Energy)}
		p.begin(Sleeping, duration, gain)
		p.sink.Emit(effects.Event{Kind: effects.PetSlept, Position: p.position})
	case Playing:
		gain := Delta{Happiness: min(p.cfg.Play.Gain, MaxStat-p.needs.Happiness)}
		p.begin(Playing, duration, gain)
		p.sink.Emit(effects.Event{Kind: effects.PetPlayed, Position: p.position})
	case Eating:
		feed := p.cfg.Feed
		p.ApplyDamage(Delta{Hunger: feed.Hunger, Happiness: feed.Happiness, Energy: feed.Energy}, duration)
	}
}

// Sleep starts a sleep of the configured duration.
func (p *Pet) Sleep() { p.StartAction(Sleeping, p.cfg.Sleep.Duration) }

// Play starts a play session of the configured duration.
func (p *Pet) Play() { p.StartAction(Playing, p.cfg.Play.Duration) }

// Eat applies the configured feed delta with the configured hold.
func (p *Pet) Eat() { p.StartAction(Eating, p.cfg.Feed.Hold) }

func (p *Pet) begin(kind State, duration float64, gain Delta) {
	p.wandering = false
	p.actions.Start(kind, duration, p.needs, gain)
	p.setState(kind)
}

// ApplyDamage adds d to the needs at once. Consumables call it with their
// effect and enemies with negative deltas. A positive hold enters the eating
// animation, replacing any timed action; a zero hold leaves the current state
// alone. Dead pets ignore it.
func (p *Pet) ApplyDamage(d Delta, hold float64) {
	if p.state == Dead {
		return
	}

	p.needs = p.needs.Add(d)
	if hold > 0 {
		p.begin(Eating, hold, Delta{})
	} else {
		p.actions.Shift(d)
	}

	kind := effects.PetAte
	if d.Hunger+d.Happiness+d.Energy < 0 {
		kind = effects.PetHit
	}
	p.sink.Emit(effects.Event{Kind: kind, Position: p.position, Amount: d.Hunger + d.Happiness + d.Energy})

	if p.needs.Depleted() {
		p.die()
	}
}

// Die kills the pet. Only the first call has any effect.
func (p *Pet) Die() {
	p.die()
}

func (p *Pet) die() {
	if p.state == Dead {
		return
	}
	p.cause = p.causeOfDeath()

	p.actions.Cancel()
	p.wandering = false
	p.needs = Needs{}
	p.wellbeing = MinStat
	p.setState(Dead)
	p.deathElapsed = 0

	slog.Info("pet died", "cause", p.cause, "lived", p.clock)
	if p.notified {
		return
	}
	p.notified = true
	p.sink.Emit(effects.Event{Kind: effects.PetDied, Position: p.position, Label: p.cause})
	if p.onDeath != nil {
		p.onDeath()
	}
}

func (p *Pet) causeOfDeath() string {
	switch {
	case p.needs.Hunger <= MinStat:
		return "Starvation"
	case p.needs.Energy <= MinStat:
		return "Exhaustion"
	case p.needs.Happiness <= MinStat:
		return "Heartbreak"
	default:
		return "Neglect"
	}
}

func (p *Pet) setState(s State) {
	p.state = s
	p.stateElapsed = 0
}
