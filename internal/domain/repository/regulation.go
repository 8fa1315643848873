package repository

import (
	"context"

	"github.com/atelo/atelo/internal/domain/entity"
)

// RegulationRepository persists regulation records.
type RegulationRepository interface {
	// Save inserts or updates a regulation.
	Save(ctx context.Context, regulation *entity.Regulation) error

	// Get returns a regulation by ID, or nil when not found.
	Get(ctx context.Context, id entity.RegulationID) (*entity.Regulation, error)

	// List returns all regulations ordered by code.
	List(ctx context.Context) ([]*entity.Regulation, error)

	// Delete removes a regulation. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, id entity.RegulationID) error

	// Subscribe registers a callback invoked with a full ordered snapshot
	// after every mutation. The returned cancel func detaches the callback.
	Subscribe(fn func([]*entity.Regulation)) (cancel func())
}
