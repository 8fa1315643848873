package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/domain/repository"
	"github.com/atelo/atelo/internal/logging"
)

// ManageRecordsUseCase is the CRUD surface for the record screens and CLI
// subcommands. Entities are validated before they reach the store.
type ManageRecordsUseCase struct {
	offices     repository.OfficeRepository
	projects    repository.ProjectRepository
	regulations repository.RegulationRepository
	newID       IDGenerator
}

// NewManageRecordsUseCase creates the record management service.
func NewManageRecordsUseCase(
	offices repository.OfficeRepository,
	projects repository.ProjectRepository,
	regulations repository.RegulationRepository,
	newID IDGenerator,
) *ManageRecordsUseCase {
	return &ManageRecordsUseCase{
		offices:     offices,
		projects:    projects,
		regulations: regulations,
		newID:       newID,
	}
}

// CreateOffice validates and stores a new office, assigning its ID.
func (uc *ManageRecordsUseCase) CreateOffice(ctx context.Context, office entity.Office) (*entity.Office, error) {
	now := time.Now()
	office.ID = entity.OfficeID(uc.newID())
	office.CreatedAt = now
	office.UpdatedAt = now

	if err := office.Validate(); err != nil {
		return nil, err
	}
	if err := uc.offices.Save(ctx, &office); err != nil {
		return nil, fmt.Errorf("save office: %w", err)
	}

	logging.FromContext(ctx).Info().Str("office_id", string(office.ID)).Str("name", office.Name).Msg("office created")
	return &office, nil
}

// CreateProject validates and stores a new project. The referenced office
// must exist.
func (uc *ManageRecordsUseCase) CreateProject(ctx context.Context, project entity.Project) (*entity.Project, error) {
	if project.OfficeID != "" {
		office, err := uc.offices.Get(ctx, project.OfficeID)
		if err != nil {
			return nil, fmt.Errorf("look up office: %w", err)
		}
		if office == nil {
			return nil, fmt.Errorf("%w: office %s not found", entity.ErrInvalidRecord, project.OfficeID)
		}
	}

	now := time.Now()
	project.ID = entity.ProjectID(uc.newID())
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Stage == "" {
		project.Stage = entity.StageBrief
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := uc.projects.Save(ctx, &project); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}

	logging.FromContext(ctx).Info().Str("project_id", string(project.ID)).Str("name", project.Name).Msg("project created")
	return &project, nil
}

// CreateRegulation validates and stores a new regulation.
func (uc *ManageRecordsUseCase) CreateRegulation(ctx context.Context, regulation entity.Regulation) (*entity.Regulation, error) {
	now := time.Now()
	regulation.ID = entity.RegulationID(uc.newID())
	regulation.CreatedAt = now
	regulation.UpdatedAt = now

	if err := regulation.Validate(); err != nil {
		return nil, err
	}
	if err := uc.regulations.Save(ctx, &regulation); err != nil {
		return nil, fmt.Errorf("save regulation: %w", err)
	}

	logging.FromContext(ctx).Info().Str("regulation_id", string(regulation.ID)).Str("code", regulation.Code).Msg("regulation created")
	return &regulation, nil
}

// ListOffices returns all offices ordered by name.
func (uc *ManageRecordsUseCase) ListOffices(ctx context.Context) ([]*entity.Office, error) {
	return uc.offices.List(ctx)
}

// ListProjects returns all projects, or one office's when officeID is set.
func (uc *ManageRecordsUseCase) ListProjects(ctx context.Context, officeID entity.OfficeID) ([]*entity.Project, error) {
	if officeID != "" {
		return uc.projects.ListByOffice(ctx, officeID)
	}
	return uc.projects.List(ctx)
}

// ListRegulations returns all regulations ordered by code.
func (uc *ManageRecordsUseCase) ListRegulations(ctx context.Context) ([]*entity.Regulation, error) {
	return uc.regulations.List(ctx)
}

// GetOffice returns one office, or nil when absent.
func (uc *ManageRecordsUseCase) GetOffice(ctx context.Context, id entity.OfficeID) (*entity.Office, error) {
	return uc.offices.Get(ctx, id)
}

// DeleteOffice removes an office record.
func (uc *ManageRecordsUseCase) DeleteOffice(ctx context.Context, id entity.OfficeID) error {
	return uc.offices.Delete(ctx, id)
}

// DeleteProject removes a project record.
func (uc *ManageRecordsUseCase) DeleteProject(ctx context.Context, id entity.ProjectID) error {
	return uc.projects.Delete(ctx, id)
}

// DeleteRegulation removes a regulation record.
func (uc *ManageRecordsUseCase) DeleteRegulation(ctx context.Context, id entity.RegulationID) error {
	return uc.regulations.Delete(ctx, id)
}
