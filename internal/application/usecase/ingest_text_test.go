package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelo/atelo/internal/application/port"
	"github.com/atelo/atelo/internal/application/usecase"
	"github.com/atelo/atelo/internal/domain/entity"
)

func newIngestUC(extractor port.Extractor, offices *fakeOfficeRepo, projects *fakeProjectRepo, regulations *fakeRegulationRepo) *usecase.IngestTextUseCase {
	return usecase.NewIngestTextUseCase(extractor, offices, projects, regulations, sequentialIDs(), 0.6)
}

func TestIngest_Office(t *testing.T) {
	offices := newFakeOfficeRepo()
	extractor := &fakeExtractor{byText: map[string]port.Extraction{
		"the text": {
			Kind:       entity.RecordOffice,
			Confidence: 0.92,
			Fields: map[string]string{
				"name":         "Atelier Sud",
				"city":         "Marseille",
				"country":      "FR",
				"headcount":    "23",
				"founded_year": "2004",
			},
		},
	}}
	uc := newIngestUC(extractor, offices, newFakeProjectRepo(), newFakeRegulationRepo())

	result, err := uc.Ingest(context.Background(), "the text")
	require.NoError(t, err)

	assert.Equal(t, entity.RecordOffice, result.Kind)
	assert.InDelta(t, 0.92, result.Confidence, 1e-9)

	stored, err := offices.Get(context.Background(), entity.OfficeID(result.RecordID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Atelier Sud", stored.Name)
	assert.Equal(t, 23, stored.Headcount)
	assert.Equal(t, 2004, stored.FoundedYear)
}

func TestIngest_RegulationWithEffectiveDate(t *testing.T) {
	regulations := newFakeRegulationRepo()
	extractor := &fakeExtractor{byText: map[string]port.Extraction{
		"reg text": {
			Kind:       entity.RecordRegulation,
			Confidence: 0.81,
			Fields: map[string]string{
				"code":           "DIN-4102",
				"title":          "Fire behaviour of building materials",
				"jurisdiction":   "DE",
				"topic":          "fire",
				"effective_from": "2023-07-01",
			},
		},
	}}
	uc := newIngestUC(extractor, newFakeOfficeRepo(), newFakeProjectRepo(), regulations)

	result, err := uc.Ingest(context.Background(), "reg text")
	require.NoError(t, err)

	stored, err := regulations.Get(context.Background(), entity.RegulationID(result.RecordID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.TopicFire, stored.Topic)
	assert.Equal(t, 2023, stored.EffectiveFrom.Year())
}

func TestIngest_LowConfidenceRejected(t *testing.T) {
	offices := newFakeOfficeRepo()
	extractor := &fakeExtractor{byText: map[string]port.Extraction{
		"vague": {Kind: entity.RecordOffice, Confidence: 0.3, Fields: map[string]string{"name": "Someone"}},
	}}
	uc := newIngestUC(extractor, offices, newFakeProjectRepo(), newFakeRegulationRepo())

	_, err := uc.Ingest(context.Background(), "vague")
	assert.ErrorIs(t, err, usecase.ErrLowConfidence)

	all, _ := offices.List(context.Background())
	assert.Empty(t, all)
}

func TestIngest_InvalidFieldsRejected(t *testing.T) {
	// High confidence but no usable name: validation at the store boundary
	// refuses the record.
	extractor := &fakeExtractor{byText: map[string]port.Extraction{
		"junk": {Kind: entity.RecordOffice, Confidence: 0.95, Fields: map[string]string{"city": "Ghent"}},
	}}
	uc := newIngestUC(extractor, newFakeOfficeRepo(), newFakeProjectRepo(), newFakeRegulationRepo())

	_, err := uc.Ingest(context.Background(), "junk")
	assert.ErrorIs(t, err, entity.ErrInvalidRecord)
}

func TestIngest_UnknownKindRejected(t *testing.T) {
	extractor := &fakeExtractor{byText: map[string]port.Extraction{
		"odd": {Kind: "invoice", Confidence: 0.99},
	}}
	uc := newIngestUC(extractor, newFakeOfficeRepo(), newFakeProjectRepo(), newFakeRegulationRepo())

	_, err := uc.Ingest(context.Background(), "odd")
	assert.ErrorIs(t, err, entity.ErrUnknownRecordKind)
}

func TestIngest_ExtractorFailure(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("service down")}
	uc := newIngestUC(extractor, newFakeOfficeRepo(), newFakeProjectRepo(), newFakeRegulationRepo())

	_, err := uc.Ingest(context.Background(), "anything")
	assert.Error(t, err)
}

func TestIngestBatch_PartialFailures(t *testing.T) {
	offices := newFakeOfficeRepo()
	extractor := &fakeExtractor{byText: map[string]port.Extraction{
		"good": {Kind: entity.RecordOffice, Confidence: 0.9, Fields: map[string]string{"name": "Studio A"}},
		"weak": {Kind: entity.RecordOffice, Confidence: 0.2, Fields: map[string]string{"name": "Studio B"}},
	}}
	uc := newIngestUC(extractor, offices, newFakeProjectRepo(), newFakeRegulationRepo())

	items, err := uc.IngestBatch(context.Background(), []string{"good", "weak", "good"}, 2)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.NoError(t, items[0].Err)
	assert.ErrorIs(t, items[1].Err, usecase.ErrLowConfidence)
	assert.NoError(t, items[2].Err)

	all, _ := offices.List(context.Background())
	assert.Len(t, all, 2)
}

func TestIngest_EmptyTextRejected(t *testing.T) {
	uc := newIngestUC(&fakeExtractor{}, newFakeOfficeRepo(), newFakeProjectRepo(), newFakeRegulationRepo())

	_, err := uc.Ingest(context.Background(), "   \n ")
	assert.ErrorIs(t, err, entity.ErrInvalidRecord)
}
