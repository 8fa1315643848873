package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/domain/repository"
	"github.com/atelo/atelo/internal/logging"
)

// NewRegistry builds the renderer set for one office workspace, primes each
// renderer with the current records and subscribes it to future mutations.
// Callers must Close the registry on teardown.
func NewRegistry(
	ctx context.Context,
	officeID entity.OfficeID,
	offices repository.OfficeRepository,
	projects repository.ProjectRepository,
	regulations repository.RegulationRepository,
) *Registry {
	log := logging.FromContext(ctx)
	registry := &Registry{}

	summary := &officeSummaryRenderer{officeID: officeID}
	notes := &notesRenderer{officeID: officeID}
	projectList := &projectListRenderer{officeID: officeID}
	stages := &projectStagesRenderer{officeID: officeID}
	watch := &regulationWatchRenderer{}

	registry.Register(entity.WindowOfficeSummary, summary)
	registry.Register(entity.WindowNotes, notes)
	registry.Register(entity.WindowProjectList, projectList)
	registry.Register(entity.WindowProjectStages, stages)
	registry.Register(entity.WindowRegulationWatch, watch)

	if initial, err := offices.List(ctx); err != nil {
		log.Warn().Err(err).Msg("could not prime office renderers")
	} else {
		summary.update(initial)
		notes.update(initial)
	}
	registry.addDetach(offices.Subscribe(func(snapshot []*entity.Office) {
		summary.update(snapshot)
		notes.update(snapshot)
	}))

	if initial, err := projects.List(ctx); err != nil {
		log.Warn().Err(err).Msg("could not prime project renderers")
	} else {
		projectList.update(initial)
		stages.update(initial)
	}
	registry.addDetach(projects.Subscribe(func(snapshot []*entity.Project) {
		projectList.update(snapshot)
		stages.update(snapshot)
	}))

	if initial, err := regulations.List(ctx); err != nil {
		log.Warn().Err(err).Msg("could not prime regulation renderer")
	} else {
		watch.update(initial)
	}
	registry.addDetach(regulations.Subscribe(watch.update))

	return registry
}

type officeSummaryRenderer struct {
	officeID entity.OfficeID

	mu     sync.RWMutex
	office *entity.Office
}

func (r *officeSummaryRenderer) update(offices []*entity.Office) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.office = nil
	for _, o := range offices {
		if o.ID == r.officeID {
			r.office = o
			return
		}
	}
}

func (r *officeSummaryRenderer) Render(_ entity.WindowPlacement, width, height int) string {
	r.mu.RLock()
	office := r.office
	r.mu.RUnlock()

	if office == nil {
		return fitLines([]string{"no office selected"}, width, height)
	}

	lines := []string{
		office.Name,
		fmt.Sprintf("%s, %s", office.City, office.Country),
		fmt.Sprintf("headcount %d", office.Headcount),
	}
	if office.FoundedYear > 0 {
		lines = append(lines, fmt.Sprintf("founded %d", office.FoundedYear))
	}
	return fitLines(lines, width, height)
}

type notesRenderer struct {
	officeID entity.OfficeID

	mu    sync.RWMutex
	notes string
}

func (r *notesRenderer) update(offices []*entity.Office) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = ""
	for _, o := range offices {
		if o.ID == r.officeID {
			r.notes = o.Notes
			return
		}
	}
}

func (r *notesRenderer) Render(_ entity.WindowPlacement, width, height int) string {
	r.mu.RLock()
	notes := r.notes
	r.mu.RUnlock()

	if strings.TrimSpace(notes) == "" {
		return fitLines([]string{"no notes"}, width, height)
	}
	return fitLines(wrap(notes, width), width, height)
}

type projectListRenderer struct {
	officeID entity.OfficeID

	mu       sync.RWMutex
	projects []*entity.Project
}

func (r *projectListRenderer) update(projects []*entity.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = filterByOffice(projects, r.officeID)
}

func (r *projectListRenderer) Render(_ entity.WindowPlacement, width, height int) string {
	r.mu.RLock()
	projects := r.projects
	r.mu.RUnlock()

	if len(projects) == 0 {
		return fitLines([]string{"no projects"}, width, height)
	}

	lines := make([]string, 0, len(projects))
	for _, p := range projects {
		lines = append(lines, fmt.Sprintf("%s [%s]", p.Name, p.Stage))
	}
	return fitLines(lines, width, height)
}

type projectStagesRenderer struct {
	officeID entity.OfficeID

	mu       sync.RWMutex
	projects []*entity.Project
}

func (r *projectStagesRenderer) update(projects []*entity.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = filterByOffice(projects, r.officeID)
}

func (r *projectStagesRenderer) Render(_ entity.WindowPlacement, width, height int) string {
	r.mu.RLock()
	projects := r.projects
	r.mu.RUnlock()

	counts := make(map[entity.ProjectStage]int)
	for _, p := range projects {
		counts[p.Stage]++
	}

	lines := make([]string, 0, len(entity.AllProjectStages()))
	for _, stage := range entity.AllProjectStages() {
		n := counts[stage]
		lines = append(lines, fmt.Sprintf("%-12s %s %d", stage, strings.Repeat("█", n), n))
	}
	return fitLines(lines, width, height)
}

type regulationWatchRenderer struct {
	mu          sync.RWMutex
	regulations []*entity.Regulation
}

func (r *regulationWatchRenderer) update(regulations []*entity.Regulation) {
	sorted := make([]*entity.Regulation, len(regulations))
	copy(sorted, regulations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveFrom.Before(sorted[j].EffectiveFrom)
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.regulations = sorted
}

func (r *regulationWatchRenderer) Render(_ entity.WindowPlacement, width, height int) string {
	r.mu.RLock()
	regulations := r.regulations
	r.mu.RUnlock()

	if len(regulations) == 0 {
		return fitLines([]string{"no regulations tracked"}, width, height)
	}

	lines := make([]string, 0, len(regulations))
	for _, reg := range regulations {
		when := "in force"
		if reg.EffectiveFrom.After(time.Now()) {
			when = reg.EffectiveFrom.Format("2006-01-02")
		}
		lines = append(lines, fmt.Sprintf("%s %s (%s)", reg.Code, when, reg.Topic))
	}
	return fitLines(lines, width, height)
}

func filterByOffice(projects []*entity.Project, officeID entity.OfficeID) []*entity.Project {
	if officeID == "" {
		return projects
	}
	filtered := make([]*entity.Project, 0, len(projects))
	for _, p := range projects {
		if p.OfficeID == officeID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
