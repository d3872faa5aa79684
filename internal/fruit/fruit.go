// Package fruit implements the consumables the pet can pick up. Each fruit
// carries one of a closed set of kinds whose effect is a fixed need delta.
package fruit

import (
	"gonum.org/v1/gonum/spatial/r2"

	"throng/internal/config"
	"throng/internal/pet"
	"throng/internal/world"
)

// Kind is the fruit variety.
type Kind int

const (
	Apple Kind = iota
	Banana
	Energy
	Death

	numKinds
)

// Kinds lists every variety in draw order.
var Kinds = [...]Kind{Apple, Banana, Energy, Death}

func (k Kind) String() string {
	switch k {
	case Apple:
		return "apple"
	case Banana:
		return "banana"
	case Energy:
		return "energy"
	case Death:
		return "death"
	default:
		return "unknown"
	}
}

// Glyph is the single-cell icon drawn for the kind.
func (k Kind) Glyph() string {
	switch k {
	case Apple:
		return "🍎"
	case Banana:
		return "🍌"
	case Energy:
		return "⚡"
	case Death:
		return "🍄"
	default:
		return "?"
	}
}

// Effect is what eating a fruit does: a need delta and how long the pet
// holds the eating animation.
type Effect struct {
	Delta pet.Delta
	Hold  float64
}

// EffectOf returns the effect for k. Unknown kinds have no effect.
func EffectOf(k Kind) Effect {
	switch k {
	case Apple:
		return Effect{Delta: pet.Delta{Hunger: 40, Happiness: 10}, Hold: 2.1}
	case Banana:
		return Effect{Delta: pet.Delta{Hunger: 20, Happiness: 20}, Hold: 2.1}
	case Energy:
		return Effect{Delta: pet.Delta{Energy: 30}, Hold: 2.1}
	case Death:
		return Effect{Delta: pet.Delta{Hunger: -100, Happiness: -100, Energy: -100}}
	default:
		return Effect{}
	}
}

// RandomKind draws a kind uniformly.
func RandomKind(r world.Rand) Kind {
	k := Kind(r.Float64() * float64(numKinds))
	if k >= numKinds {
		k = numKinds - 1
	}
	return k
}

// Eater is anything a fruit can be applied to.
type Eater interface {
	ApplyDamage(d pet.Delta, hold float64)
}

// Fruit is a consumable lying in the world.
type Fruit struct {
	cfg      config.FruitConfig
	kind     Kind
	position r2.Vec
	age      float64
	consumed bool
}

// New creates a fruit of kind k at pos.
func New(cfg config.FruitConfig, k Kind, pos r2.Vec) *Fruit {
	return &Fruit{cfg: cfg, kind: k, position: pos}
}

// Random creates a fruit of a uniformly drawn kind at pos.
func Random(cfg config.FruitConfig, pos r2.Vec, r world.Rand) *Fruit {
	return New(cfg, RandomKind(r), pos)
}

// Kind returns the fruit's kind.
func (f *Fruit) Kind() Kind { return f.kind }

// Position returns where the fruit lies.
func (f *Fruit) Position() r2.Vec { return f.position }

// Age returns the seconds since the fruit appeared.
func (f *Fruit) Age() float64 { return f.age }

// Consumed reports whether the fruit has been eaten.
func (f *Fruit) Consumed() bool { return f.consumed }

// Remaining returns the seconds left before the fruit expires.
func (f *Fruit) Remaining() float64 { return max(f.cfg.TTL-f.age, 0) }

// Update ages the fruit.
func (f *Fruit) Update(dt float64) {
	if dt > 0 {
		f.age += dt
	}
}

// Expired reports whether the fruit has outlived its TTL.
func (f *Fruit) Expired() bool {
	return f.age >= f.cfg.TTL
}

// Visible reports whether the fruit should be drawn this frame. Fruits blink
// during the last BlinkWindow seconds of their life.
func (f *Fruit) Visible() bool {
	if f.consumed || f.Expired() {
		return false
	}
	if f.Remaining() > f.cfg.BlinkWindow || f.cfg.BlinkPeriod <= 0 {
		return true
	}
	return int(f.age/f.cfg.BlinkPeriod)%2 == 0
}

// Touch applies the fruit's effect to e. Only the first touch counts; it
// reports whether this call applied the effect.
func (f *Fruit) Touch(e Eater) bool {
	if f.consumed || e == nil {
		return false
	}
	f.consumed = true
	eff := EffectOf(f.kind)
	e.ApplyDamage(eff.Delta, eff.Hold)
	return true
}
