package pet

import (
	"gonum.org/v1/gonum/stat"

	"throng/internal/config"
)

// Needs are the three independently decaying resources, each in [0,100].
type Needs struct {
	Hunger    float64
	Happiness float64
	Energy    float64
}

// Delta is a signed change to the needs. Enemy attacks carry negative deltas.
type Delta struct {
	Hunger    float64
	Happiness float64
	Energy    float64
}

// FullNeeds is a freshly created pet.
func FullNeeds() Needs {
	return Needs{Hunger: MaxStat, Happiness: MaxStat, Energy: MaxStat}
}

// Add applies d and clamps the result.
func (n Needs) Add(d Delta) Needs {
	return Needs{
		Hunger:    n.Hunger + d.Hunger,
		Happiness: n.Happiness + d.Happiness,
		Energy:    n.Energy + d.Energy,
	}.Clamp()
}

// Clamp limits every need to [MinStat, MaxStat].
func (n Needs) Clamp() Needs {
	return Needs{
		Hunger:    clampStat(n.Hunger),
		Happiness: clampStat(n.Happiness),
		Energy:    clampStat(n.Energy),
	}
}

// Average is the mean of the three needs.
func (n Needs) Average() float64 {
	return stat.Mean([]float64{n.Hunger, n.Happiness, n.Energy}, nil)
}

// Depleted reports whether any need has reached its lower bound.
func (n Needs) Depleted() bool {
	return n.Hunger <= MinStat || n.Happiness <= MinStat || n.Energy <= MinStat
}

// Lowest returns the smallest need.
func (n Needs) Lowest() float64 {
	return min(n.Hunger, n.Happiness, n.Energy)
}

// Decay applies one step of need decay for a pet in state s.
//
// Sleeping freezes hunger and happiness; energy is driven by the sleep
// interpolation instead. Playing burns hunger and energy at a multiple of the
// base rate while happiness is driven by the play interpolation. Eating
// freezes everything. A dead pet does not change.
func Decay(n Needs, s State, dt float64, cfg config.EconomyConfig) Needs {
	base := cfg.BaseDecay * dt
	switch s {
	case Dead, Eating, Sleeping:
		return n
	case Playing:
		n.Hunger -= base * cfg.PlayHungerMultiplier
		n.Energy -= base * cfg.PlayEnergyMultiplier
	default:
		n.Hunger -= base
		n.Happiness -= base
		n.Energy -= base
	}
	return n.Clamp()
}

// WellbeingRate returns the per-second wellbeing change for a needs average.
// Bands are checked from the highest threshold down; below the last band the
// critical rate applies.
func WellbeingRate(avg float64, cfg config.EconomyConfig) float64 {
	for _, band := range cfg.Bands {
		if avg >= band.Min {
			return band.Rate
		}
	}
	return cfg.CriticalRate
}

// UpdateWellbeing advances wellbeing by one step for the given needs.
func UpdateWellbeing(wellbeing float64, n Needs, dt float64, cfg config.EconomyConfig) float64 {
	return clampStat(wellbeing + WellbeingRate(n.Average(), cfg)*dt)
}

func clampStat(v float64) float64 {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}
