package entity

import (
	"errors"
	"fmt"
)

// WorkspaceKey identifies the persisted dashboard layout of one office.
// Each selected office gets its own placement collection.
type WorkspaceKey string

// Layout validation errors.
var (
	ErrPlacementOutOfBounds = errors.New("placement out of grid bounds")
	ErrPlacementOverlap     = errors.New("placements overlap")
	ErrDuplicatePlacementID = errors.New("duplicate placement id")
	ErrInvalidWidth         = errors.New("placement width out of range")
)

// ValidateLayout checks the layout invariants for a placement collection on
// a cols×rows grid: every span in bounds, no same-row overlap, width within
// [1, MaxPlacementWidth], unique IDs.
func ValidateLayout(placements []WindowPlacement, cols, rows int) error {
	seen := make(map[PlacementID]struct{}, len(placements))

	for i, p := range placements {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePlacementID, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Width < 1 || p.Width > MaxPlacementWidth {
			return fmt.Errorf("%w: %s has width %d", ErrInvalidWidth, p.ID, p.Width)
		}
		if p.Row < 0 || p.Row+p.Height > rows || p.LeftmostCol() < 0 || p.RightmostCol() >= cols {
			return fmt.Errorf("%w: %s at row %d span [%d,%d]",
				ErrPlacementOutOfBounds, p.ID, p.Row, p.LeftmostCol(), p.RightmostCol())
		}

		for _, q := range placements[i+1:] {
			if p.Overlaps(q) {
				return fmt.Errorf("%w: %s and %s on row %d", ErrPlacementOverlap, p.ID, q.ID, p.Row)
			}
		}
	}

	return nil
}
