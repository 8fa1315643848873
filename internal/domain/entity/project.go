package entity

import (
	"strings"
	"time"
)

// ProjectID uniquely identifies a project record.
type ProjectID string

// ProjectStage is the closed set of delivery stages a project moves through.
type ProjectStage string

const (
	StageBrief        ProjectStage = "brief"
	StageConcept      ProjectStage = "concept"
	StagePermit       ProjectStage = "permit"
	StageConstruction ProjectStage = "construction"
	StageDelivered    ProjectStage = "delivered"
)

// AllProjectStages lists the stages in delivery order.
func AllProjectStages() []ProjectStage {
	return []ProjectStage{StageBrief, StageConcept, StagePermit, StageConstruction, StageDelivered}
}

// ValidStage reports whether s belongs to the closed stage set.
func ValidStage(s ProjectStage) bool {
	switch s {
	case StageBrief, StageConcept, StagePermit, StageConstruction, StageDelivered:
		return true
	}
	return false
}

// Project is a building project run by an office.
type Project struct {
	ID        ProjectID
	OfficeID  OfficeID
	Name      string
	Client    string
	Stage     ProjectStage
	BudgetEUR int64
	Site      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the project's structural invariants.
func (p Project) Validate() error {
	if p.ID == "" {
		return invalidf("project id is empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalidf("project %s has no name", p.ID)
	}
	if !ValidStage(p.Stage) {
		return invalidf("project %s has unknown stage %q", p.ID, p.Stage)
	}
	if p.BudgetEUR < 0 {
		return invalidf("project %s has negative budget", p.ID)
	}
	return nil
}
