// Package components defines the ECS components that make up an agent.
package components

import (
	"github.com/google/uuid"

	"github.com/ahtohbi4/nature-simulator/species"
	"github.com/ahtohbi4/nature-simulator/traits"
)

// Emotion is the agent's current mood.
type Emotion uint8

const (
	EmotionNormal Emotion = iota
	EmotionScared
	EmotionInLove
)

// String returns the emotion name.
func (e Emotion) String() string {
	switch e {
	case EmotionScared:
		return "scared"
	case EmotionInLove:
		return "in love"
	default:
		return "normal"
	}
}

// DeathReason records why an agent died.
type DeathReason uint8

const (
	DeathNone DeathReason = iota
	DeathOldness
	DeathIllness
	DeathKilling
)

// String returns the death reason name.
func (r DeathReason) String() string {
	switch r {
	case DeathOldness:
		return "oldness"
	case DeathIllness:
		return "illness"
	case DeathKilling:
		return "killing"
	default:
		return "none"
	}
}

// Identity names an agent and ties it to its species.
type Identity struct {
	ID      uuid.UUID
	Name    string
	Gender  traits.Gender
	Species *species.Profile
}

// Lineage holds parent ids. uuid.Nil means unknown (seeded agents).
type Lineage struct {
	Father uuid.UUID
	Mother uuid.UUID
}

// HasParents reports whether the agent was born in the simulation.
func (l Lineage) HasParents() bool {
	return l.Father != uuid.Nil || l.Mother != uuid.Nil
}

// IsParent reports whether id is one of the recorded parents.
func (l Lineage) IsParent(id uuid.UUID) bool {
	return id != uuid.Nil && (l.Father == id || l.Mother == id)
}
