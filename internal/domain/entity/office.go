package entity

import (
	"strings"
	"time"
)

// OfficeID uniquely identifies an office record.
type OfficeID string

// Office is an architecture office on file.
type Office struct {
	ID          OfficeID
	Name        string
	City        string
	Country     string
	Headcount   int
	FoundedYear int
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the office's structural invariants.
func (o Office) Validate() error {
	if o.ID == "" {
		return invalidf("office id is empty")
	}
	if strings.TrimSpace(o.Name) == "" {
		return invalidf("office %s has no name", o.ID)
	}
	if o.Headcount < 0 {
		return invalidf("office %s has negative headcount %d", o.ID, o.Headcount)
	}
	if o.FoundedYear != 0 && (o.FoundedYear < 1800 || o.FoundedYear > time.Now().Year()) {
		return invalidf("office %s founded year %d is implausible", o.ID, o.FoundedYear)
	}
	return nil
}

// WorkspaceKey returns the dashboard workspace key for this office.
func (o Office) WorkspaceKey() WorkspaceKey {
	return WorkspaceKey("office:" + string(o.ID))
}
