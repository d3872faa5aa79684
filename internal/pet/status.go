package pet

// GetStatus returns the status emoji(s) for the pet: what it is doing, then
// how it feels.
func GetStatus(p *Pet) string {
	if p.Dead() {
		return StatusEmojiDead
	}

	// Icon 1: Activity
	var activity string
	switch p.State() {
	case Sleeping:
		activity = StatusEmojiSleeping
	case Eating:
		activity = StatusEmojiEating
	case Playing:
		activity = StatusEmojiPlaying
	case Walking:
		activity = StatusEmojiWalking
	case Blinking:
		activity = StatusEmojiBlinking
	default:
		activity = StatusEmojiHappy
	}

	// Icon 2: Feeling (most critical need)
	n := p.Needs()
	lowestStat := n.Energy
	lowestFeeling := StatusEmojiTired
	if n.Hunger < lowestStat {
		lowestStat = n.Hunger
		lowestFeeling = StatusEmojiHungry
	}
	if n.Happiness < lowestStat {
		lowestStat = n.Happiness
		lowestFeeling = StatusEmojiSad
	}

	if lowestStat < LowStatThreshold {
		return activity + lowestFeeling
	}
	if n.Energy < DrowsyThreshold && p.State() != Sleeping {
		return activity + "🥱"
	}
	if want := GetWantEmoji(p); want != "" {
		return activity + want
	}
	return activity
}

// GetStatusWithLabel returns status with a text label for the UI.
func GetStatusWithLabel(p *Pet) string {
	if p.Dead() {
		return StatusEmojiDead + " Dead"
	}

	status := GetStatus(p)
	n := p.Needs()

	switch p.State() {
	case Sleeping:
		if n.Lowest() < LowStatThreshold {
			return status + " Sleeping (needs care)"
		}
		return status + " Sleeping"
	case Eating:
		return status + " Eating"
	case Playing:
		return status + " Playing!"
	}

	switch {
	case n.Lowest() >= LowStatThreshold && n.Energy < DrowsyThreshold:
		return status + " Drowsy"
	case n.Lowest() >= LowStatThreshold:
		if p.State() == Walking {
			return status + " Exploring"
		}
		return status + " Happy"
	case n.Hunger == n.Lowest():
		return status + " Hungry"
	case n.Happiness == n.Lowest():
		return status + " Sad"
	default:
		return status + " Tired"
	}
}

// GetWantEmoji returns an icon for the pet's most pressing desire when idle.
func GetWantEmoji(p *Pet) string {
	if p.Dead() || p.State().Timed() {
		return ""
	}

	type need struct {
		deficit   float64
		emoji     string
		threshold float64
	}

	n := p.Needs()
	needs := []need{
		{deficit: MaxStat - n.Hunger, emoji: "🍖", threshold: WantHungerThreshold},
		{deficit: MaxStat - n.Happiness, emoji: "🎾", threshold: WantHappyThreshold},
		{deficit: MaxStat - n.Energy, emoji: "🛌", threshold: WantEnergyThreshold},
	}

	best := need{deficit: 0}
	for _, nd := range needs {
		if nd.deficit >= nd.threshold && nd.deficit > best.deficit {
			best = nd
		}
	}

	return best.emoji
}
