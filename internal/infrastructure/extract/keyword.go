// Package extract provides a rule-based Extractor for free-text ingestion.
// It classifies a paragraph by keyword evidence and pulls fields from
// "key: value" lines, with a confidence score that reflects how much of the
// text it understood.
package extract

import (
	"context"
	"strings"

	"github.com/atelo/atelo/internal/application/port"
	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/logging"
)

// kindKeywords holds the classification evidence per record kind. A word
// may appear under several kinds; the kind with the most hits wins.
var kindKeywords = map[entity.RecordKind][]string{
	entity.RecordOffice: {
		"office", "studio", "practice", "headcount", "founded", "partners",
	},
	entity.RecordProject: {
		"project", "client", "budget", "site", "stage", "brief", "permit",
		"construction", "delivered",
	},
	entity.RecordRegulation: {
		"regulation", "code", "jurisdiction", "zoning", "effective",
		"accessibility", "heritage", "ordinance",
	},
}

// fieldAliases maps the key names people actually write to the canonical
// field names the ingest usecase expects.
var fieldAliases = map[string]string{
	"office":     "name",
	"studio":     "name",
	"project":    "name",
	"regulation": "code",
	"budget":     "budget_eur",
	"effective":  "effective_from",
	"founded":    "founded_year",
	"staff":      "headcount",
}

// KeywordExtractor is a deterministic port.Extractor. It never calls out;
// everything is derived from the text itself.
type KeywordExtractor struct{}

// NewKeywordExtractor creates the rule-based extractor.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

// Extract classifies the text and collects its fields.
func (e *KeywordExtractor) Extract(ctx context.Context, text string) (port.Extraction, error) {
	lowered := strings.ToLower(text)

	kind, hits := classify(lowered)
	fields := collectFields(text)

	// Confidence grows with keyword evidence and with structured fields,
	// capping out once either source is abundant.
	confidence := float64(hits)*0.2 + float64(len(fields))*0.15
	if confidence > 1 {
		confidence = 1
	}

	logging.FromContext(ctx).Debug().
		Str("kind", string(kind)).
		Int("keyword_hits", hits).
		Int("field_count", len(fields)).
		Float64("confidence", confidence).
		Msg("extracted record candidate")

	return port.Extraction{
		Kind:       kind,
		Confidence: confidence,
		Fields:     fields,
	}, nil
}

func classify(lowered string) (entity.RecordKind, int) {
	best := entity.RecordOffice
	bestHits := -1
	for _, kind := range []entity.RecordKind{entity.RecordOffice, entity.RecordProject, entity.RecordRegulation} {
		hits := 0
		for _, kw := range kindKeywords[kind] {
			hits += strings.Count(lowered, kw)
		}
		if hits > bestHits {
			best, bestHits = kind, hits
		}
	}
	return best, bestHits
}

// collectFields parses "key: value" lines. Keys are lowercased, spaces
// become underscores, and known aliases are rewritten to canonical names.
func collectFields(text string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), " ", "_")
		value := strings.TrimSpace(v)
		if key == "" || value == "" {
			continue
		}
		if canonical, ok := fieldAliases[key]; ok {
			key = canonical
		}
		fields[key] = value
	}
	return fields
}

var _ port.Extractor = (*KeywordExtractor)(nil)
