package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/domain/repository"
	"github.com/atelo/atelo/internal/logging"
)

type workspaceRepo struct {
	db *sql.DB
}

// NewWorkspaceRepository creates the dashboard layout store. Layouts are
// stored as one JSON snapshot per workspace key; every save replaces the
// previous snapshot.
func NewWorkspaceRepository(db *sql.DB) repository.WorkspaceRepository {
	return &workspaceRepo{db: db}
}

// LoadLayout returns the placement collection for a workspace, or nil when
// none has been saved.
func (r *workspaceRepo) LoadLayout(ctx context.Context, key entity.WorkspaceKey) ([]entity.WindowPlacement, error) {
	var layoutJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT layout_json FROM workspace_layouts WHERE workspace_key = ?`,
		string(key),
	).Scan(&layoutJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load layout: %w", err)
	}

	var placements []entity.WindowPlacement
	if err := json.Unmarshal([]byte(layoutJSON), &placements); err != nil {
		logging.FromContext(ctx).Error().Err(err).
			Str("workspace_key", string(key)).
			Msg("failed to unmarshal workspace layout")
		return nil, err
	}

	return placements, nil
}

// SaveLayout replaces the stored placement collection for a workspace.
func (r *workspaceRepo) SaveLayout(ctx context.Context, key entity.WorkspaceKey, placements []entity.WindowPlacement) error {
	log := logging.FromContext(ctx)

	if placements == nil {
		placements = []entity.WindowPlacement{}
	}
	layoutJSON, err := json.Marshal(placements)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal workspace layout")
		return err
	}

	log.Debug().
		Str("workspace_key", string(key)).
		Int("placement_count", len(placements)).
		Msg("saving workspace layout")

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO workspace_layouts (workspace_key, layout_json, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (workspace_key) DO UPDATE SET
		   layout_json = excluded.layout_json,
		   updated_at = excluded.updated_at`,
		string(key), string(layoutJSON), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

// DeleteLayout removes a workspace's stored layout.
func (r *workspaceRepo) DeleteLayout(ctx context.Context, key entity.WorkspaceKey) error {
	logging.FromContext(ctx).Debug().
		Str("workspace_key", string(key)).
		Msg("deleting workspace layout")

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM workspace_layouts WHERE workspace_key = ?`, string(key))
	if err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return nil
}
