package entity

import (
	"strings"
	"time"
)

// RegulationID uniquely identifies a regulation record.
type RegulationID string

// RegulationTopic is the closed set of topics a regulation is filed under.
type RegulationTopic string

const (
	TopicZoning        RegulationTopic = "zoning"
	TopicFire          RegulationTopic = "fire"
	TopicAccessibility RegulationTopic = "accessibility"
	TopicEnergy        RegulationTopic = "energy"
	TopicHeritage      RegulationTopic = "heritage"
)

// ValidTopic reports whether t belongs to the closed topic set.
func ValidTopic(t RegulationTopic) bool {
	switch t {
	case TopicZoning, TopicFire, TopicAccessibility, TopicEnergy, TopicHeritage:
		return true
	}
	return false
}

// Regulation is a building regulation the studio tracks.
type Regulation struct {
	ID            RegulationID
	Code          string
	Title         string
	Jurisdiction  string
	Topic         RegulationTopic
	Summary       string
	EffectiveFrom time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the regulation's structural invariants.
func (r Regulation) Validate() error {
	if r.ID == "" {
		return invalidf("regulation id is empty")
	}
	if strings.TrimSpace(r.Code) == "" {
		return invalidf("regulation %s has no code", r.ID)
	}
	if strings.TrimSpace(r.Title) == "" {
		return invalidf("regulation %s has no title", r.ID)
	}
	if !ValidTopic(r.Topic) {
		return invalidf("regulation %s has unknown topic %q", r.ID, r.Topic)
	}
	return nil
}
