package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/domain/repository"
	"github.com/atelo/atelo/internal/logging"
)

type projectRepo struct {
	db       *sql.DB
	notifier notifier[[]*entity.Project]
}

// NewProjectRepository creates the project record store.
func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Save(ctx context.Context, project *entity.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, office_id, name, client, stage, budget_eur, site, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   office_id = excluded.office_id,
		   name = excluded.name,
		   client = excluded.client,
		   stage = excluded.stage,
		   budget_eur = excluded.budget_eur,
		   site = excluded.site,
		   notes = excluded.notes,
		   updated_at = excluded.updated_at`,
		string(project.ID), string(project.OfficeID), project.Name, project.Client,
		string(project.Stage), project.BudgetEUR, project.Site, project.Notes,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	r.publishSnapshot(ctx)
	return nil
}

func (r *projectRepo) Get(ctx context.Context, id entity.ProjectID) (*entity.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, office_id, name, client, stage, budget_eur, site, notes, created_at, updated_at
		 FROM projects WHERE id = ?`, string(id))

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

func (r *projectRepo) List(ctx context.Context) ([]*entity.Project, error) {
	return r.query(ctx,
		`SELECT id, office_id, name, client, stage, budget_eur, site, notes, created_at, updated_at
		 FROM projects ORDER BY name, id`)
}

func (r *projectRepo) ListByOffice(ctx context.Context, officeID entity.OfficeID) ([]*entity.Project, error) {
	return r.query(ctx,
		`SELECT id, office_id, name, client, stage, budget_eur, site, notes, created_at, updated_at
		 FROM projects WHERE office_id = ? ORDER BY name, id`, string(officeID))
}

func (r *projectRepo) query(ctx context.Context, q string, args ...any) ([]*entity.Project, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *projectRepo) Delete(ctx context.Context, id entity.ProjectID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	r.publishSnapshot(ctx)
	return nil
}

func (r *projectRepo) Subscribe(fn func([]*entity.Project)) (cancel func()) {
	return r.notifier.subscribe(fn)
}

func (r *projectRepo) publishSnapshot(ctx context.Context) {
	if !r.notifier.hasSubscribers() {
		return
	}
	projects, err := r.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to snapshot projects for subscribers")
		return
	}
	r.notifier.publish(projects)
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var project entity.Project
	err := row.Scan(
		&project.ID, &project.OfficeID, &project.Name, &project.Client,
		&project.Stage, &project.BudgetEUR, &project.Site, &project.Notes,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}
