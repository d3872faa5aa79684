// Package effects defines the sink the simulation reports notable happenings
// to. Sounds, scoring, telemetry and UI flashes all hang off a Sink instead of
// process-wide managers.
package effects

import "gonum.org/v1/gonum/spatial/r2"

// Kind identifies what happened.
type Kind int

const (
	PetFed Kind = iota
	PetAte
	PetHit
	PetSlept
	PetPlayed
	PetDied
	EnemySpawned
	EnemyAttacked
	EnemyHurt
	EnemyKilled
	EnemyRecycled
	FruitDropped
	FruitEaten
	FruitExpired
)

var kindNames = map[Kind]string{
	PetFed:        "pet_fed",
	PetAte:        "pet_ate",
	PetHit:        "pet_hit",
	PetSlept:      "pet_slept",
	PetPlayed:     "pet_played",
	PetDied:       "pet_died",
	EnemySpawned:  "enemy_spawned",
	EnemyAttacked: "enemy_attacked",
	EnemyHurt:     "enemy_hurt",
	EnemyKilled:   "enemy_killed",
	EnemyRecycled: "enemy_recycled",
	FruitDropped:  "fruit_dropped",
	FruitEaten:    "fruit_eaten",
	FruitExpired:  "fruit_expired",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a single notification.
type Event struct {
	Kind     Kind
	Position r2.Vec
	Amount   float64 // Damage dealt, points, etc. Meaning depends on Kind.
	Label    string  // Optional detail such as a fruit kind
}

// Sink receives events synchronously from the tick that produced them.
type Sink interface {
	Emit(Event)
}

// Nop discards everything.
type Nop struct{}

// Emit implements Sink.
func (Nop) Emit(Event) {}

// Func adapts a function to a Sink.
type Func func(Event)

// Emit implements Sink.
func (f Func) Emit(e Event) { f(e) }

// Multi fans events out to several sinks in order.
type Multi []Sink

// Emit implements Sink.
func (m Multi) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}

// Recorder keeps every event it sees. Handy in tests and for replay.
type Recorder struct {
	Events []Event
}

// Emit implements Sink.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many events of kind k were recorded.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// OrNop returns s, or Nop when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop{}
	}
	return s
}
