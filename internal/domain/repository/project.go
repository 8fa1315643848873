package repository

import (
	"context"

	"github.com/atelo/atelo/internal/domain/entity"
)

// ProjectRepository persists project records.
type ProjectRepository interface {
	// Save inserts or updates a project.
	Save(ctx context.Context, project *entity.Project) error

	// Get returns a project by ID, or nil when not found.
	Get(ctx context.Context, id entity.ProjectID) (*entity.Project, error)

	// List returns all projects ordered by name.
	List(ctx context.Context) ([]*entity.Project, error)

	// ListByOffice returns the projects of one office ordered by name.
	ListByOffice(ctx context.Context, officeID entity.OfficeID) ([]*entity.Project, error)

	// Delete removes a project. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, id entity.ProjectID) error

	// Subscribe registers a callback invoked with a full ordered snapshot
	// after every mutation. The returned cancel func detaches the callback.
	Subscribe(fn func([]*entity.Project)) (cancel func())
}
