package repository

import (
	"context"

	"github.com/atelo/atelo/internal/domain/entity"
)

// OfficeRepository persists office records.
type OfficeRepository interface {
	// Save inserts or updates an office.
	Save(ctx context.Context, office *entity.Office) error

	// Get returns an office by ID, or nil when not found.
	Get(ctx context.Context, id entity.OfficeID) (*entity.Office, error)

	// List returns all offices ordered by name.
	List(ctx context.Context) ([]*entity.Office, error)

	// Delete removes an office. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, id entity.OfficeID) error

	// Subscribe registers a callback invoked with a full ordered snapshot
	// after every mutation. The returned cancel func detaches the callback.
	Subscribe(fn func([]*entity.Office)) (cancel func())
}
