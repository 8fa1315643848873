package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/atelo/atelo/internal/application/port"
	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/domain/repository"
	"github.com/atelo/atelo/internal/logging"
)

// ErrLowConfidence is returned when the extractor's confidence falls below
// the configured threshold; the text is not stored.
var ErrLowConfidence = errors.New("extraction confidence below threshold")

// IngestTextUseCase turns free text into validated records via the
// extractor port.
type IngestTextUseCase struct {
	extractor     port.Extractor
	offices       repository.OfficeRepository
	projects      repository.ProjectRepository
	regulations   repository.RegulationRepository
	newID         IDGenerator
	minConfidence float64
}

// NewIngestTextUseCase creates the ingestion service. minConfidence is the
// lowest extractor confidence that still results in a stored record.
func NewIngestTextUseCase(
	extractor port.Extractor,
	offices repository.OfficeRepository,
	projects repository.ProjectRepository,
	regulations repository.RegulationRepository,
	newID IDGenerator,
	minConfidence float64,
) *IngestTextUseCase {
	return &IngestTextUseCase{
		extractor:     extractor,
		offices:       offices,
		projects:      projects,
		regulations:   regulations,
		newID:         newID,
		minConfidence: minConfidence,
	}
}

// IngestResult describes one stored record.
type IngestResult struct {
	Kind       entity.RecordKind
	RecordID   string
	Confidence float64
}

// Ingest classifies one chunk of text, maps the extracted fields into the
// matching entity, validates it and stores it.
func (uc *IngestTextUseCase) Ingest(ctx context.Context, text string) (IngestResult, error) {
	log := logging.FromContext(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		return IngestResult{}, fmt.Errorf("%w: empty text", entity.ErrInvalidRecord)
	}

	extraction, err := uc.extractor.Extract(ctx, text)
	if err != nil {
		return IngestResult{}, fmt.Errorf("extract: %w", err)
	}

	log.Debug().
		Str("kind", string(extraction.Kind)).
		Float64("confidence", extraction.Confidence).
		Msg("text classified")

	if extraction.Confidence < uc.minConfidence {
		return IngestResult{}, fmt.Errorf("%w: %.2f < %.2f",
			ErrLowConfidence, extraction.Confidence, uc.minConfidence)
	}

	id := uc.newID()
	result := IngestResult{Kind: extraction.Kind, RecordID: id, Confidence: extraction.Confidence}

	switch extraction.Kind {
	case entity.RecordOffice:
		err = uc.storeOffice(ctx, id, extraction.Fields)
	case entity.RecordProject:
		err = uc.storeProject(ctx, id, extraction.Fields)
	case entity.RecordRegulation:
		err = uc.storeRegulation(ctx, id, extraction.Fields)
	default:
		err = fmt.Errorf("%w: %q", entity.ErrUnknownRecordKind, extraction.Kind)
	}
	if err != nil {
		return IngestResult{}, err
	}

	log.Info().
		Str("kind", string(extraction.Kind)).
		Str("record_id", id).
		Msg("record ingested")
	return result, nil
}

// BatchItem pairs an input's position with its outcome.
type BatchItem struct {
	Index  int
	Result IngestResult
	Err    error
}

// IngestBatch runs Ingest over every text with bounded concurrency.
// Per-item failures land in the returned items; only context cancellation
// aborts the batch.
func (uc *IngestTextUseCase) IngestBatch(ctx context.Context, texts []string, concurrency int) ([]BatchItem, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	items := make([]BatchItem, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := uc.Ingest(ctx, text)
			items[i] = BatchItem{Index: i, Result: result, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}

func (uc *IngestTextUseCase) storeOffice(ctx context.Context, id string, fields map[string]string) error {
	now := time.Now()
	office := &entity.Office{
		ID:          entity.OfficeID(id),
		Name:        fields["name"],
		City:        fields["city"],
		Country:     fields["country"],
		Headcount:   atoiField(fields, "headcount"),
		FoundedYear: atoiField(fields, "founded_year"),
		Notes:       fields["notes"],
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := office.Validate(); err != nil {
		return err
	}
	return uc.offices.Save(ctx, office)
}

func (uc *IngestTextUseCase) storeProject(ctx context.Context, id string, fields map[string]string) error {
	now := time.Now()
	project := &entity.Project{
		ID:        entity.ProjectID(id),
		OfficeID:  entity.OfficeID(fields["office_id"]),
		Name:      fields["name"],
		Client:    fields["client"],
		Stage:     entity.ProjectStage(fields["stage"]),
		BudgetEUR: int64(atoiField(fields, "budget_eur")),
		Site:      fields["site"],
		Notes:     fields["notes"],
		CreatedAt: now,
		UpdatedAt: now,
	}
	if project.Stage == "" {
		project.Stage = entity.StageBrief
	}
	if err := project.Validate(); err != nil {
		return err
	}
	return uc.projects.Save(ctx, project)
}

func (uc *IngestTextUseCase) storeRegulation(ctx context.Context, id string, fields map[string]string) error {
	now := time.Now()
	regulation := &entity.Regulation{
		ID:           entity.RegulationID(id),
		Code:         fields["code"],
		Title:        fields["title"],
		Jurisdiction: fields["jurisdiction"],
		Topic:        entity.RegulationTopic(fields["topic"]),
		Summary:      fields["summary"],
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if raw := fields["effective_from"]; raw != "" {
		if ts, err := time.Parse("2006-01-02", raw); err == nil {
			regulation.EffectiveFrom = ts
		}
	}
	if err := regulation.Validate(); err != nil {
		return err
	}
	return uc.regulations.Save(ctx, regulation)
}

func atoiField(fields map[string]string, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(fields[key]))
	if err != nil {
		return 0
	}
	return n
}
