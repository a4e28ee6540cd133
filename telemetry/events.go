// Package telemetry tracks population health over time: birth and death
// events, windowed statistics, per-agent lifetimes, step timings and CSV
// output.
package telemetry

import "github.com/google/uuid"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
)

// String returns the event name used in logs.
func (t EventType) String() string {
	if t == EventDeath {
		return "death"
	}
	return "birth"
}

// Event represents a single lifecycle event.
type Event struct {
	Type    EventType
	Day     int
	AgentID uuid.UUID
	Kind    string

	// Optional fields depending on event type
	MotherID uuid.UUID // births in the simulation
	FatherID uuid.UUID
	Reason   string // deaths
}

// NewBirthEvent creates a birth event. Seeded agents have nil parents.
func NewBirthEvent(day int, childID, motherID, fatherID uuid.UUID, kind string) Event {
	return Event{
		Type:     EventBirth,
		Day:      day,
		AgentID:  childID,
		Kind:     kind,
		MotherID: motherID,
		FatherID: fatherID,
	}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(day int, agentID uuid.UUID, kind, reason string) Event {
	return Event{
		Type:    EventDeath,
		Day:     day,
		AgentID: agentID,
		Kind:    kind,
		Reason:  reason,
	}
}
