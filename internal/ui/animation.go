package ui

import (
	"time"

	"throng/internal/pet"
)

// AnimationType represents the type of action animation
type AnimationType int

const (
	AnimNone AnimationType = iota
	AnimEat
	AnimPlay
	AnimSleep
	AnimDeath
)

// Animation is the activity strip shown next to the pet's status. Elapsed is
// measured in simulated seconds from the start of the pet's current state.
type Animation struct {
	Type    AnimationType
	Elapsed float64
	Loop    bool
}

// AnimationFrames contains the frames for each animation type
var AnimationFrames = map[AnimationType][]string{
	AnimEat: {
		"🍖   😺",
		" 🍖→😺",
		"    😸 *nom*",
		"    😋 *munch*",
	},
	AnimPlay: {
		"🎾      😺",
		"   🎾   😸",
		"      🎾😺",
		"   🎾   😸 *boing*",
		"🎾      😺 *catch!*",
	},
	AnimSleep: {
		"😺",
		"😪 z",
		"😴 z z",
		"😴 z z z",
	},
	AnimDeath: {
		"😿",
		"😵",
		"👻",
		"💀",
	},
}

// AnimationFrameDuration is how long each frame displays
const AnimationFrameDuration = 200 * time.Millisecond

// AnimationFor returns the animation matching what the pet is doing.
func AnimationFor(p *pet.Pet) Animation {
	switch p.State() {
	case pet.Eating:
		return Animation{Type: AnimEat, Elapsed: p.StateElapsed(), Loop: true}
	case pet.Playing:
		return Animation{Type: AnimPlay, Elapsed: p.StateElapsed(), Loop: true}
	case pet.Sleeping:
		return Animation{Type: AnimSleep, Elapsed: p.StateElapsed(), Loop: true}
	case pet.Dead:
		return Animation{Type: AnimDeath, Elapsed: p.DeathElapsed()}
	default:
		return Animation{}
	}
}

// Frame returns the index of the frame to show.
func (a Animation) Frame() int {
	n := AnimationTotalFrames(a.Type)
	if n == 0 || a.Elapsed < 0 {
		return 0
	}
	i := int(a.Elapsed / AnimationFrameDuration.Seconds())
	if a.Loop {
		return i % n
	}
	return i
}

// GetAnimationFrame returns the current frame for an animation
func GetAnimationFrame(anim Animation) string {
	frames := AnimationFrames[anim.Type]
	if len(frames) == 0 {
		return ""
	}
	i := anim.Frame()
	if i >= len(frames) {
		return frames[len(frames)-1]
	}
	return frames[i]
}

// IsAnimationComplete returns true if a one-shot animation has played all
// its frames. Looping animations never complete.
func IsAnimationComplete(anim Animation) bool {
	if anim.Loop {
		return false
	}
	return anim.Frame() >= AnimationTotalFrames(anim.Type)
}

// AnimationTotalFrames returns the number of frames for an animation type
func AnimationTotalFrames(animType AnimationType) int {
	return len(AnimationFrames[animType])
}
