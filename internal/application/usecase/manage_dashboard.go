// Package usecase contains the application services that sit between the
// CLI/TUI surfaces and the domain.
package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/domain/repository"
	"github.com/atelo/atelo/internal/layout"
	"github.com/atelo/atelo/internal/logging"
)

// IDGenerator is a function type for generating unique IDs.
type IDGenerator func() string

// ManageDashboardUseCase opens dashboard sessions: one layout engine per
// workspace key, loaded once and written through on every mutation.
type ManageDashboardUseCase struct {
	workspaces repository.WorkspaceRepository
	grid       layout.Grid
	resizable  []entity.WindowKind
	newID      IDGenerator

	mu       sync.Mutex
	sessions map[entity.WorkspaceKey]*DashboardSession
}

// NewManageDashboardUseCase creates the dashboard service.
func NewManageDashboardUseCase(
	workspaces repository.WorkspaceRepository,
	grid layout.Grid,
	resizable []entity.WindowKind,
	newID IDGenerator,
) *ManageDashboardUseCase {
	return &ManageDashboardUseCase{
		workspaces: workspaces,
		grid:       grid,
		resizable:  resizable,
		newID:      newID,
		sessions:   make(map[entity.WorkspaceKey]*DashboardSession),
	}
}

// Open loads the stored layout for a workspace and returns its session.
// A second Open for the same key, while one is live, returns the existing
// session without reloading.
func (uc *ManageDashboardUseCase) Open(ctx context.Context, key entity.WorkspaceKey) (*DashboardSession, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if s, ok := uc.sessions[key]; ok {
		return s, nil
	}

	log := logging.FromContext(ctx)

	loaded, err := uc.workspaces.LoadLayout(ctx, key)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("workspace_key", string(key)).
		Int("placement_count", len(loaded)).
		Msg("workspace layout loaded")

	s := &DashboardSession{
		key:        key,
		workspaces: uc.workspaces,
		logger:     log.With().Str("component", "dashboard-session").Str("workspace_key", string(key)).Logger(),
		detach:     func() { uc.drop(key) },
	}
	s.engine = layout.NewEngine(
		uc.grid,
		loaded,
		layout.WithResizableKinds(uc.resizable...),
		layout.WithIDGenerator(func() entity.PlacementID { return entity.PlacementID(uc.newID()) }),
		layout.WithOnChange(s.persistAsync),
	)

	uc.sessions[key] = s
	return s, nil
}

func (uc *ManageDashboardUseCase) drop(key entity.WorkspaceKey) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.sessions, key)
}

// DashboardSession owns one workspace's layout engine and its write-through
// persistence. Engine commands stay synchronous; saves run fire-and-forget
// with the full snapshot, so a failed write self-heals on the next edit.
type DashboardSession struct {
	key        entity.WorkspaceKey
	engine     *layout.Engine
	workspaces repository.WorkspaceRepository
	logger     zerolog.Logger
	detach     func()

	saving sync.WaitGroup

	closeOnce sync.Once
}

// Engine returns the session's layout engine.
func (s *DashboardSession) Engine() *layout.Engine {
	return s.engine
}

// Key returns the workspace key this session persists under.
func (s *DashboardSession) Key() entity.WorkspaceKey {
	return s.key
}

// persistAsync writes the snapshot in the background. Errors are logged,
// never surfaced: the in-memory layout stays valid and the next mutation
// retries with a fresh full snapshot.
func (s *DashboardSession) persistAsync(placements []entity.WindowPlacement) {
	s.saving.Add(1)
	go func() {
		defer s.saving.Done()
		if err := s.workspaces.SaveLayout(context.Background(), s.key, placements); err != nil {
			s.logger.Error().Err(err).Msg("failed to persist dashboard layout")
		}
	}()
}

// Close tears the session down: waits for in-flight saves, persists a
// final synchronous snapshot, and releases the workspace key so a later
// Open reloads from storage.
func (s *DashboardSession) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		s.saving.Wait()
		err = s.workspaces.SaveLayout(ctx, s.key, s.engine.Placements())
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to persist dashboard layout on teardown")
		}
		s.detach()
	})
	return err
}

// Discard drops the session without persisting, for the stale-workspace
// path where the backing entity was deselected or deleted mid-session.
func (s *DashboardSession) Discard() {
	s.closeOnce.Do(func() {
		s.saving.Wait()
		s.detach()
	})
}
