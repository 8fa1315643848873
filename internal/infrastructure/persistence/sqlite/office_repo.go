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

type officeRepo struct {
	db       *sql.DB
	notifier notifier[[]*entity.Office]
}

// NewOfficeRepository creates the office record store.
func NewOfficeRepository(db *sql.DB) repository.OfficeRepository {
	return &officeRepo{db: db}
}

func (r *officeRepo) Save(ctx context.Context, office *entity.Office) error {
	if err := office.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO offices (id, name, city, country, headcount, founded_year, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   city = excluded.city,
		   country = excluded.country,
		   headcount = excluded.headcount,
		   founded_year = excluded.founded_year,
		   notes = excluded.notes,
		   updated_at = excluded.updated_at`,
		string(office.ID), office.Name, office.City, office.Country,
		office.Headcount, office.FoundedYear, office.Notes,
		office.CreatedAt, office.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save office: %w", err)
	}

	r.publishSnapshot(ctx)
	return nil
}

func (r *officeRepo) Get(ctx context.Context, id entity.OfficeID) (*entity.Office, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, city, country, headcount, founded_year, notes, created_at, updated_at
		 FROM offices WHERE id = ?`, string(id))

	office, err := scanOffice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get office: %w", err)
	}
	return office, nil
}

func (r *officeRepo) List(ctx context.Context) ([]*entity.Office, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, city, country, headcount, founded_year, notes, created_at, updated_at
		 FROM offices ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list offices: %w", err)
	}
	defer rows.Close()

	var offices []*entity.Office
	for rows.Next() {
		office, err := scanOffice(rows)
		if err != nil {
			return nil, fmt.Errorf("list offices: %w", err)
		}
		offices = append(offices, office)
	}
	return offices, rows.Err()
}

func (r *officeRepo) Delete(ctx context.Context, id entity.OfficeID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM offices WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete office: %w", err)
	}

	r.publishSnapshot(ctx)
	return nil
}

func (r *officeRepo) Subscribe(fn func([]*entity.Office)) (cancel func()) {
	return r.notifier.subscribe(fn)
}

// publishSnapshot pushes the current ordered office list to subscribers.
// Failures are logged and swallowed so a broken read never fails the write
// that triggered it.
func (r *officeRepo) publishSnapshot(ctx context.Context) {
	if !r.notifier.hasSubscribers() {
		return
	}
	offices, err := r.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to snapshot offices for subscribers")
		return
	}
	r.notifier.publish(offices)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffice(row rowScanner) (*entity.Office, error) {
	var office entity.Office
	err := row.Scan(
		&office.ID, &office.Name, &office.City, &office.Country,
		&office.Headcount, &office.FoundedYear, &office.Notes,
		&office.CreatedAt, &office.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &office, nil
}
