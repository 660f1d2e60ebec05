package core

// EventKind names a discrete simulation event the presentation layer may
// react to with sound or particles.
type EventKind int

const (
	EventNone EventKind = iota
	EventChunkExpanded
	EventRespawned
	EventDied
	EventShotFired
	EventEnemyKilled
	EventPlayerHit
	EventBossPhaseChanged
	EventBossDefeated
	EventPickupTaken
	EventLevelComplete
	EventPathToggled
)

var eventNames = map[EventKind]string{
	EventNone:             "none",
	EventChunkExpanded:    "chunk_expanded",
	EventRespawned:        "respawned",
	EventDied:             "died",
	EventShotFired:        "shot_fired",
	EventEnemyKilled:      "enemy_killed",
	EventPlayerHit:        "player_hit",
	EventBossPhaseChanged: "boss_phase_changed",
	EventBossDefeated:     "boss_defeated",
	EventPickupTaken:      "pickup_taken",
	EventLevelComplete:    "level_complete",
	EventPathToggled:      "path_toggled",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is one entry of the outbox. Value carries a kind-specific number
// (new level, damage taken, weapon index).
type Event struct {
	Kind  EventKind
	Value int
}

// Outbox collects events during a tick. The simulation pushes; the
// presentation layer drains after rendering.
type Outbox struct {
	events []Event
}

// Push appends an event.
func (o *Outbox) Push(kind EventKind, value int) {
	o.events = append(o.events, Event{Kind: kind, Value: value})
}

// Len returns the number of pending events.
func (o *Outbox) Len() int {
	return len(o.events)
}

// Drain returns the pending events and empties the outbox.
func (o *Outbox) Drain() []Event {
	if len(o.events) == 0 {
		return nil
	}
	out := o.events
	o.events = nil
	return out
}

// Count returns how many pending events have the given kind.
func (o *Outbox) Count(kind EventKind) int {
	n := 0
	for _, e := range o.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
