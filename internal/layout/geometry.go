// Package layout implements the dashboard grid layout engine: placement
// geometry, the add/remove/move/swap/resize commands, and the selection and
// drag session state machine that drives them.
package layout

import "github.com/atelo/atelo/internal/domain/entity"

// Grid is the fixed cell arrangement placements live on. It is immutable
// for the engine's lifetime within one dashboard session.
type Grid struct {
	Cols int
	Rows int
}

// Contains reports whether the cell (row, col) lies inside the grid.
func (g Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// ClampAnchor returns the nearest anchor whose span of the given width fits
// within the grid columns: shifted right when the left edge would go
// negative, shifted left when the right edge would pass the last column.
// Idempotent for any width that fits on the grid.
func (g Grid) ClampAnchor(anchor, width int) int {
	left := anchor - (width-1)/2
	right := anchor + width/2

	if left < 0 {
		return anchor - left
	}
	if right > g.Cols-1 {
		return anchor - (right - (g.Cols - 1))
	}
	return anchor
}

// IntervalsOverlap reports whether two closed integer intervals intersect.
func IntervalsOverlap(aLo, aHi, bLo, bHi int) bool {
	return aLo <= bHi && bLo <= aHi
}

// IsCellOccupied reports whether any placement other than excludeID covers
// the cell (row, col). Pass an empty excludeID to consider every placement.
func IsCellOccupied(placements []entity.WindowPlacement, row, col int, excludeID entity.PlacementID) bool {
	for _, p := range placements {
		if p.ID == excludeID || p.Row != row {
			continue
		}
		if p.SpanContains(col) {
			return true
		}
	}
	return false
}

// collisionTarget returns the index of the first placement on row (other
// than excludeID) whose span intersects [spanLo, spanHi], or -1.
func collisionTarget(placements []entity.WindowPlacement, row, spanLo, spanHi int, excludeID entity.PlacementID) int {
	for i, p := range placements {
		if p.ID == excludeID || p.Row != row {
			continue
		}
		if IntervalsOverlap(spanLo, spanHi, p.LeftmostCol(), p.RightmostCol()) {
			return i
		}
	}
	return -1
}
