package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelo/atelo/internal/application/usecase"
	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/layout"
)

const testKey = entity.WorkspaceKey("office:test")

func newDashboardUC(repo *fakeWorkspaceRepo) *usecase.ManageDashboardUseCase {
	return usecase.NewManageDashboardUseCase(
		repo,
		layout.Grid{Cols: 5, Rows: 2},
		[]entity.WindowKind{entity.WindowProjectList},
		sequentialIDs(),
	)
}

// waitForSaves polls the repo until the expected number of saves landed or
// the deadline passes. Saves are fire-and-forget, so tests have to wait.
func waitForSaves(t *testing.T, repo *fakeWorkspaceRepo, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		repo.mu.Lock()
		n := repo.saveCalls
		repo.mu.Unlock()
		if n >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d saves", want)
}

func TestOpen_LoadsOnce(t *testing.T) {
	repo := newFakeWorkspaceRepo()
	repo.layouts[testKey] = []entity.WindowPlacement{
		{ID: "a", Kind: entity.WindowNotes, Row: 0, AnchorCol: 2, Width: 1, Height: 1},
	}
	uc := newDashboardUC(repo)
	ctx := context.Background()

	first, err := uc.Open(ctx, testKey)
	require.NoError(t, err)
	second, err := uc.Open(ctx, testKey)
	require.NoError(t, err)

	// A second open while the session is live is a no-op reload-wise.
	assert.Same(t, first, second)
	assert.Equal(t, 1, repo.loadCalls)
	assert.Len(t, first.Engine().Placements(), 1)
}

func TestOpen_AbsentLayoutStartsEmpty(t *testing.T) {
	repo := newFakeWorkspaceRepo()
	uc := newDashboardUC(repo)

	session, err := uc.Open(context.Background(), testKey)
	require.NoError(t, err)

	assert.Empty(t, session.Engine().Placements())
}

func TestMutation_WritesThrough(t *testing.T) {
	repo := newFakeWorkspaceRepo()
	uc := newDashboardUC(repo)
	ctx := context.Background()

	session, err := uc.Open(ctx, testKey)
	require.NoError(t, err)

	p, err := session.Engine().Add(entity.WindowNotes)
	require.NoError(t, err)
	waitForSaves(t, repo, 1)

	stored := repo.stored(testKey)
	require.Len(t, stored, 1)
	assert.Equal(t, p.ID, stored[0].ID)
}

func TestClose_PersistsFinalSnapshot(t *testing.T) {
	repo := newFakeWorkspaceRepo()
	uc := newDashboardUC(repo)
	ctx := context.Background()

	session, err := uc.Open(ctx, testKey)
	require.NoError(t, err)
	_, err = session.Engine().Add(entity.WindowNotes)
	require.NoError(t, err)
	_, err = session.Engine().Add(entity.WindowOfficeSummary)
	require.NoError(t, err)

	require.NoError(t, session.Close(ctx))

	assert.Len(t, repo.stored(testKey), 2)

	// Closing released the key; a fresh open reloads from storage.
	reopened, err := uc.Open(ctx, testKey)
	require.NoError(t, err)
	assert.NotSame(t, session, reopened)
	assert.Equal(t, 2, repo.loadCalls)
	assert.Len(t, reopened.Engine().Placements(), 2)
}

func TestSaveFailure_SelfHealsOnNextMutation(t *testing.T) {
	repo := newFakeWorkspaceRepo()
	repo.failSaves = 1
	repo.saveErr = errors.New("store unavailable")
	uc := newDashboardUC(repo)
	ctx := context.Background()

	session, err := uc.Open(ctx, testKey)
	require.NoError(t, err)

	// First save fails silently; the in-memory layout stays intact.
	first, err := session.Engine().Add(entity.WindowNotes)
	require.NoError(t, err)
	waitForSaves(t, repo, 1)
	assert.Empty(t, repo.stored(testKey))
	assert.Len(t, session.Engine().Placements(), 1)

	// The next mutation carries the full snapshot, both placements land.
	second, err := session.Engine().Add(entity.WindowNotes)
	require.NoError(t, err)
	waitForSaves(t, repo, 2)

	stored := repo.stored(testKey)
	require.Len(t, stored, 2)
	ids := []entity.PlacementID{stored[0].ID, stored[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestDiscard_DropsWithoutPersisting(t *testing.T) {
	repo := newFakeWorkspaceRepo()
	uc := newDashboardUC(repo)
	ctx := context.Background()

	session, err := uc.Open(ctx, testKey)
	require.NoError(t, err)

	// The backing entity was deselected mid-session: no partial state may
	// survive.
	session.Discard()

	assert.Empty(t, repo.stored(testKey))

	reopened, err := uc.Open(ctx, testKey)
	require.NoError(t, err)
	assert.NotSame(t, session, reopened)
}
