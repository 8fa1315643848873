package entity

import (
	"errors"
	"fmt"
)

// RecordKind tags the closed set of record types the store holds.
type RecordKind string

const (
	RecordOffice     RecordKind = "office"
	RecordProject    RecordKind = "project"
	RecordRegulation RecordKind = "regulation"
)

// ErrInvalidRecord wraps field-level validation failures raised at the
// store boundary.
var ErrInvalidRecord = errors.New("invalid record")

// ErrUnknownRecordKind is returned for kind tags outside the closed set.
var ErrUnknownRecordKind = errors.New("unknown record kind")

// ParseRecordKind validates a kind tag against the closed set.
func ParseRecordKind(s string) (RecordKind, error) {
	switch RecordKind(s) {
	case RecordOffice, RecordProject, RecordRegulation:
		return RecordKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRecordKind, s)
	}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}
