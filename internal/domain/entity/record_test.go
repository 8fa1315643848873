package entity

import (
	"errors"
	"testing"
	"time"
)

func TestParseRecordKind(t *testing.T) {
	for _, kind := range []string{"office", "project", "regulation"} {
		if _, err := ParseRecordKind(kind); err != nil {
			t.Errorf("ParseRecordKind(%q) = %v, want nil", kind, err)
		}
	}

	if _, err := ParseRecordKind("invoice"); !errors.Is(err, ErrUnknownRecordKind) {
		t.Errorf("ParseRecordKind(invoice) = %v, want ErrUnknownRecordKind", err)
	}
}

func TestOffice_Validate(t *testing.T) {
	valid := Office{ID: "o1", Name: "Atelier Nord", City: "Oslo", Country: "NO", Headcount: 12, FoundedYear: 1998}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Office)
	}{
		{"empty id", func(o *Office) { o.ID = "" }},
		{"blank name", func(o *Office) { o.Name = "   " }},
		{"negative headcount", func(o *Office) { o.Headcount = -1 }},
		{"founded in the future", func(o *Office) { o.FoundedYear = time.Now().Year() + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			office := valid
			tt.mutate(&office)
			if err := office.Validate(); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Validate() = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestProject_Validate(t *testing.T) {
	valid := Project{ID: "p1", OfficeID: "o1", Name: "Harbour Library", Client: "City of Bergen", Stage: StagePermit, BudgetEUR: 4_500_000}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Project)
	}{
		{"empty id", func(p *Project) { p.ID = "" }},
		{"blank name", func(p *Project) { p.Name = "" }},
		{"unknown stage", func(p *Project) { p.Stage = "tender" }},
		{"negative budget", func(p *Project) { p.BudgetEUR = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := valid
			tt.mutate(&project)
			if err := project.Validate(); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Validate() = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestRegulation_Validate(t *testing.T) {
	valid := Regulation{ID: "r1", Code: "TEK17-11", Title: "Fire safety in assembly buildings", Jurisdiction: "NO", Topic: TopicFire}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Regulation)
	}{
		{"empty id", func(r *Regulation) { r.ID = "" }},
		{"blank code", func(r *Regulation) { r.Code = " " }},
		{"blank title", func(r *Regulation) { r.Title = "" }},
		{"unknown topic", func(r *Regulation) { r.Topic = "plumbing" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regulation := valid
			tt.mutate(&regulation)
			if err := regulation.Validate(); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Validate() = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestOffice_WorkspaceKey(t *testing.T) {
	office := Office{ID: "o1"}
	if got := office.WorkspaceKey(); got != WorkspaceKey("office:o1") {
		t.Errorf("WorkspaceKey() = %q, want %q", got, "office:o1")
	}
}
