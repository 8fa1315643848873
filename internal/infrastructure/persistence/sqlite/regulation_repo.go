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

type regulationRepo struct {
	db       *sql.DB
	notifier notifier[[]*entity.Regulation]
}

// NewRegulationRepository creates the regulation record store.
func NewRegulationRepository(db *sql.DB) repository.RegulationRepository {
	return &regulationRepo{db: db}
}

func (r *regulationRepo) Save(ctx context.Context, regulation *entity.Regulation) error {
	if err := regulation.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO regulations (id, code, title, jurisdiction, topic, summary, effective_from, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   code = excluded.code,
		   title = excluded.title,
		   jurisdiction = excluded.jurisdiction,
		   topic = excluded.topic,
		   summary = excluded.summary,
		   effective_from = excluded.effective_from,
		   updated_at = excluded.updated_at`,
		string(regulation.ID), regulation.Code, regulation.Title, regulation.Jurisdiction,
		string(regulation.Topic), regulation.Summary, regulation.EffectiveFrom,
		regulation.CreatedAt, regulation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save regulation: %w", err)
	}

	r.publishSnapshot(ctx)
	return nil
}

func (r *regulationRepo) Get(ctx context.Context, id entity.RegulationID) (*entity.Regulation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, code, title, jurisdiction, topic, summary, effective_from, created_at, updated_at
		 FROM regulations WHERE id = ?`, string(id))

	regulation, err := scanRegulation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get regulation: %w", err)
	}
	return regulation, nil
}

func (r *regulationRepo) List(ctx context.Context) ([]*entity.Regulation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, title, jurisdiction, topic, summary, effective_from, created_at, updated_at
		 FROM regulations ORDER BY code, id`)
	if err != nil {
		return nil, fmt.Errorf("list regulations: %w", err)
	}
	defer rows.Close()

	var regulations []*entity.Regulation
	for rows.Next() {
		regulation, err := scanRegulation(rows)
		if err != nil {
			return nil, fmt.Errorf("list regulations: %w", err)
		}
		regulations = append(regulations, regulation)
	}
	return regulations, rows.Err()
}

func (r *regulationRepo) Delete(ctx context.Context, id entity.RegulationID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM regulations WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete regulation: %w", err)
	}

	r.publishSnapshot(ctx)
	return nil
}

func (r *regulationRepo) Subscribe(fn func([]*entity.Regulation)) (cancel func()) {
	return r.notifier.subscribe(fn)
}

func (r *regulationRepo) publishSnapshot(ctx context.Context) {
	if !r.notifier.hasSubscribers() {
		return
	}
	regulations, err := r.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to snapshot regulations for subscribers")
		return
	}
	r.notifier.publish(regulations)
}

func scanRegulation(row rowScanner) (*entity.Regulation, error) {
	var regulation entity.Regulation
	err := row.Scan(
		&regulation.ID, &regulation.Code, &regulation.Title, &regulation.Jurisdiction,
		&regulation.Topic, &regulation.Summary, &regulation.EffectiveFrom,
		&regulation.CreatedAt, &regulation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &regulation, nil
}
