package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/atelo/atelo/internal/application/port"
	"github.com/atelo/atelo/internal/domain/entity"
)

// fakeWorkspaceRepo is an in-memory WorkspaceRepository that counts calls
// and can fail a configurable number of saves.
type fakeWorkspaceRepo struct {
	mu        sync.Mutex
	layouts   map[entity.WorkspaceKey][]entity.WindowPlacement
	loadCalls int
	saveCalls int
	failSaves int
	saveErr   error
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{layouts: make(map[entity.WorkspaceKey][]entity.WindowPlacement)}
}

func (f *fakeWorkspaceRepo) LoadLayout(_ context.Context, key entity.WorkspaceKey) ([]entity.WindowPlacement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	stored, ok := f.layouts[key]
	if !ok {
		return nil, nil
	}
	out := make([]entity.WindowPlacement, len(stored))
	copy(out, stored)
	return out, nil
}

func (f *fakeWorkspaceRepo) SaveLayout(_ context.Context, key entity.WorkspaceKey, placements []entity.WindowPlacement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.failSaves > 0 {
		f.failSaves--
		return f.saveErr
	}
	stored := make([]entity.WindowPlacement, len(placements))
	copy(stored, placements)
	f.layouts[key] = stored
	return nil
}

func (f *fakeWorkspaceRepo) DeleteLayout(_ context.Context, key entity.WorkspaceKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.layouts, key)
	return nil
}

func (f *fakeWorkspaceRepo) stored(key entity.WorkspaceKey) []entity.WindowPlacement {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.layouts[key]
}

// fakeExtractor returns canned extractions keyed by input text.
type fakeExtractor struct {
	byText map[string]port.Extraction
	err    error
}

func (f *fakeExtractor) Extract(_ context.Context, text string) (port.Extraction, error) {
	if f.err != nil {
		return port.Extraction{}, f.err
	}
	return f.byText[text], nil
}

// fakeOfficeRepo is an in-memory OfficeRepository.
type fakeOfficeRepo struct {
	mu      sync.Mutex
	offices map[entity.OfficeID]*entity.Office
}

func newFakeOfficeRepo() *fakeOfficeRepo {
	return &fakeOfficeRepo{offices: make(map[entity.OfficeID]*entity.Office)}
}

func (f *fakeOfficeRepo) Save(_ context.Context, office *entity.Office) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *office
	f.offices[office.ID] = &copied
	return nil
}

func (f *fakeOfficeRepo) Get(_ context.Context, id entity.OfficeID) (*entity.Office, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.offices[id], nil
}

func (f *fakeOfficeRepo) List(_ context.Context) ([]*entity.Office, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Office, 0, len(f.offices))
	for _, o := range f.offices {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeOfficeRepo) Delete(_ context.Context, id entity.OfficeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.offices, id)
	return nil
}

func (f *fakeOfficeRepo) Subscribe(func([]*entity.Office)) func() {
	return func() {}
}

// fakeProjectRepo is an in-memory ProjectRepository.
type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[entity.ProjectID]*entity.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[entity.ProjectID]*entity.Project)}
}

func (f *fakeProjectRepo) Save(_ context.Context, project *entity.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *project
	f.projects[project.ID] = &copied
	return nil
}

func (f *fakeProjectRepo) Get(_ context.Context, id entity.ProjectID) (*entity.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.projects[id], nil
}

func (f *fakeProjectRepo) List(_ context.Context) ([]*entity.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProjectRepo) ListByOffice(ctx context.Context, officeID entity.OfficeID) ([]*entity.Project, error) {
	all, _ := f.List(ctx)
	out := all[:0]
	for _, p := range all {
		if p.OfficeID == officeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id entity.ProjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) Subscribe(func([]*entity.Project)) func() {
	return func() {}
}

// fakeRegulationRepo is an in-memory RegulationRepository.
type fakeRegulationRepo struct {
	mu          sync.Mutex
	regulations map[entity.RegulationID]*entity.Regulation
}

func newFakeRegulationRepo() *fakeRegulationRepo {
	return &fakeRegulationRepo{regulations: make(map[entity.RegulationID]*entity.Regulation)}
}

func (f *fakeRegulationRepo) Save(_ context.Context, regulation *entity.Regulation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *regulation
	f.regulations[regulation.ID] = &copied
	return nil
}

func (f *fakeRegulationRepo) Get(_ context.Context, id entity.RegulationID) (*entity.Regulation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regulations[id], nil
}

func (f *fakeRegulationRepo) List(_ context.Context) ([]*entity.Regulation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Regulation, 0, len(f.regulations))
	for _, r := range f.regulations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeRegulationRepo) Delete(_ context.Context, id entity.RegulationID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.regulations, id)
	return nil
}

func (f *fakeRegulationRepo) Subscribe(func([]*entity.Regulation)) func() {
	return func() {}
}

// sequentialIDs returns "id-1", "id-2", ... for deterministic assertions.
func sequentialIDs() func() string {
	var mu sync.Mutex
	next := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("id-%d", next)
	}
}
