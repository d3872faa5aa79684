package pet

// Stat bounds and display thresholds
const (
	MaxStat           = 100
	MinStat           = 0
	LowStatThreshold  = 30 // Below this a need shows as critical
	DrowsyThreshold   = 40 // Energy level that shows drowsy status
	HighStatThreshold = 80

	// Need deficits that surface a "want" icon while idle
	WantHungerThreshold = 40
	WantHappyThreshold  = 40
	WantEnergyThreshold = 55
)

// Status emojis
const (
	StatusEmojiHappy    = "😸"
	StatusEmojiSleeping = "😴"
	StatusEmojiHungry   = "🙀"
	StatusEmojiSad      = "😿"
	StatusEmojiTired    = "😾"
	StatusEmojiEating   = "😋"
	StatusEmojiPlaying  = "😼"
	StatusEmojiWalking  = "🐾"
	StatusEmojiBlinking = "😌"
	StatusEmojiDead     = "💀"
)

// State is the pet's behavior state. Exactly one is active at a time.
type State int

const (
	Idle State = iota
	Blinking
	Walking
	Sleeping
	Eating
	Playing
	Dead
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Blinking:
		return "blinking"
	case Walking:
		return "walking"
	case Sleeping:
		return "sleeping"
	case Eating:
		return "eating"
	case Playing:
		return "playing"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Timed reports whether s is one of the mutually exclusive timed actions.
func (s State) Timed() bool {
	return s == Sleeping || s == Eating || s == Playing
}
