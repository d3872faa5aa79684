package pet

// Action is the timed action in progress.
type Action struct {
	Kind     State
	Elapsed  float64
	Duration float64

	start Needs
	gain  Delta
}

// Progress is the interpolation parameter in [0,1].
func (a Action) Progress() float64 {
	if a.Duration <= 0 {
		return 1
	}
	return min(a.Elapsed/a.Duration, 1)
}

// Arbiter owns the pet's single timed-action slot. Starting an action always
// replaces whatever was running.
type Arbiter struct {
	current Action
	active  bool
}

// Active reports whether an action is running.
func (a *Arbiter) Active() bool { return a.active }

// Current returns the running action. Only meaningful when Active.
func (a *Arbiter) Current() Action { return a.current }

// Start cancels any running action and begins kind from the given needs.
// gain is the total change reached when the action completes; it is only
// interpolated for Sleeping and Playing.
func (a *Arbiter) Start(kind State, duration float64, from Needs, gain Delta) {
	a.Cancel()
	a.current = Action{Kind: kind, Duration: duration, start: from, gain: gain}
	a.active = true
}

// Cancel drops the running action and its timers. Needs keep whatever value
// the interpolation had reached.
func (a *Arbiter) Cancel() {
	a.current = Action{}
	a.active = false
}

// Shift moves the interpolation baseline by d so out-of-band changes (an enemy
// bite during sleep) survive the next interpolation step.
func (a *Arbiter) Shift(d Delta) {
	if a.active {
		a.current.start = a.current.start.Add(d)
	}
}

// Tick advances the running action by dt, writes interpolated needs into n and
// reports whether the action completed on this step.
func (a *Arbiter) Tick(dt float64, n *Needs) bool {
	if !a.active {
		return false
	}
	a.current.Elapsed += dt
	t := a.current.Progress()

	switch a.current.Kind {
	case Sleeping:
		n.Energy = clampStat(a.current.start.Energy + a.current.gain.Energy*t)
	case Playing:
		n.Happiness = clampStat(a.current.start.Happiness + a.current.gain.Happiness*t)
	}

	if a.current.Elapsed >= a.current.Duration {
		a.Cancel()
		return true
	}
	return false
}
