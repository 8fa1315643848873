// Package repository defines persistence interfaces for domain entities.
// Implementations live under internal/infrastructure/persistence.
package repository

import (
	"context"

	"github.com/atelo/atelo/internal/domain/entity"
)

// WorkspaceRepository persists dashboard layouts as full snapshots keyed by
// workspace. Each save replaces the previous snapshot (last writer wins).
type WorkspaceRepository interface {
	// LoadLayout returns the placement collection for a workspace, or nil
	// when no layout has been saved yet.
	LoadLayout(ctx context.Context, key entity.WorkspaceKey) ([]entity.WindowPlacement, error)

	// SaveLayout replaces the stored placement collection for a workspace.
	SaveLayout(ctx context.Context, key entity.WorkspaceKey, placements []entity.WindowPlacement) error

	// DeleteLayout removes a workspace's stored layout.
	DeleteLayout(ctx context.Context, key entity.WorkspaceKey) error
}
