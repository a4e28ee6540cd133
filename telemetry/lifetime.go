package telemetry

import "github.com/google/uuid"

// LifetimeStats tracks one agent over its life.
type LifetimeStats struct {
	Kind     string
	BirthDay int
	DeathDay int
	Dead     bool
	Children int
}

// Age returns the age on day, or the age at death.
func (s *LifetimeStats) Age(day int) int {
	if s.Dead {
		return s.DeathDay - s.BirthDay
	}
	return day - s.BirthDay
}

// LifetimeTracker manages per-agent lifetime statistics. Records are kept
// after death so the run summary can report on them.
type LifetimeTracker struct {
	stats map[uuid.UUID]*LifetimeStats
	order []uuid.UUID
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uuid.UUID]*LifetimeStats),
	}
}

// Register starts tracking an agent born on day.
func (lt *LifetimeTracker) Register(id uuid.UUID, day int, kind string) {
	if _, ok := lt.stats[id]; !ok {
		lt.order = append(lt.order, id)
	}
	lt.stats[id] = &LifetimeStats{Kind: kind, BirthDay: day}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uuid.UUID) *LifetimeStats {
	return lt.stats[id]
}

// RecordChild increments the children count of a parent.
func (lt *LifetimeTracker) RecordChild(parentID uuid.UUID) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// RecordDeath marks an agent dead on day.
func (lt *LifetimeTracker) RecordDeath(id uuid.UUID, day int) {
	if s := lt.stats[id]; s != nil && !s.Dead {
		s.Dead = true
		s.DeathDay = day
	}
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// MostFertile returns the agent with the most children. Ties go to the
// earliest registered. ok is false when nobody had children.
func (lt *LifetimeTracker) MostFertile() (id uuid.UUID, stats *LifetimeStats, ok bool) {
	for _, candidate := range lt.order {
		s := lt.stats[candidate]
		if s.Children > 0 && (stats == nil || s.Children > stats.Children) {
			id, stats, ok = candidate, s, true
		}
	}
	return id, stats, ok
}

// Oldest returns the agent that reached the greatest age by day.
func (lt *LifetimeTracker) Oldest(day int) (id uuid.UUID, stats *LifetimeStats, ok bool) {
	for _, candidate := range lt.order {
		s := lt.stats[candidate]
		if stats == nil || s.Age(day) > stats.Age(day) {
			id, stats, ok = candidate, s, true
		}
	}
	return id, stats, ok
}
