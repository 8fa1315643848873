// Package port defines interfaces for external collaborators consumed by
// the application layer. Implementations are injected at startup; nothing
// in this package reaches for ambient singletons.
package port

import (
	"context"

	"github.com/atelo/atelo/internal/domain/entity"
)

// Extraction is the result of classifying and field-extracting one chunk
// of free text.
type Extraction struct {
	// Kind is the category label the extractor assigned.
	Kind entity.RecordKind
	// Confidence is the extractor's certainty in [0,1].
	Confidence float64
	// Fields maps extracted field names to raw string values. Field names
	// follow the entity's lower_snake_case column names.
	Fields map[string]string
}

// Extractor classifies raw text into a record kind and pulls structured
// fields out of it. The concrete service (an AI backend) lives outside
// this repository; tests inject fakes.
type Extractor interface {
	Extract(ctx context.Context, text string) (Extraction, error)
}
