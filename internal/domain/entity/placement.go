// Package entity contains domain entities representing core business concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

// PlacementID uniquely identifies a dashboard window placement.
// IDs are assigned at creation and never reused.
type PlacementID string

// WindowKind tags the content a dashboard window renders. The layout engine
// treats it as opaque; the dashboard maps it to a content renderer.
type WindowKind string

const (
	WindowOfficeSummary   WindowKind = "office_summary"
	WindowProjectList     WindowKind = "project_list"
	WindowProjectStages   WindowKind = "project_stages"
	WindowRegulationWatch WindowKind = "regulation_watch"
	WindowNotes           WindowKind = "notes"
)

// AllWindowKinds lists every window kind in menu order.
func AllWindowKinds() []WindowKind {
	return []WindowKind{
		WindowOfficeSummary,
		WindowProjectList,
		WindowProjectStages,
		WindowRegulationWatch,
		WindowNotes,
	}
}

// MaxPlacementWidth caps how wide a placement may grow, in cells.
const MaxPlacementWidth = 3

// WindowPlacement is one window's position and size on the dashboard grid.
// AnchorCol is the middle column of the occupied span rather than the
// leftmost one, so widening a window symmetrically never requires
// recomputing other placements' anchors.
type WindowPlacement struct {
	ID        PlacementID `json:"id"`
	Kind      WindowKind  `json:"kind"`
	Row       int         `json:"row"`
	AnchorCol int         `json:"anchor_col"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
}

// NewWindowPlacement creates a unit-size placement at the given cell.
func NewWindowPlacement(id PlacementID, kind WindowKind, row, col int) WindowPlacement {
	return WindowPlacement{
		ID:        id,
		Kind:      kind,
		Row:       row,
		AnchorCol: col,
		Width:     1,
		Height:    1,
	}
}

// LeftmostCol returns the first column of the placement's span.
func (p WindowPlacement) LeftmostCol() int {
	return p.AnchorCol - (p.Width-1)/2
}

// RightmostCol returns the last column of the placement's span.
func (p WindowPlacement) RightmostCol() int {
	return p.AnchorCol + p.Width/2
}

// SpanContains reports whether col falls inside the placement's span.
func (p WindowPlacement) SpanContains(col int) bool {
	return col >= p.LeftmostCol() && col <= p.RightmostCol()
}

// Overlaps reports whether two placements occupy a common cell. Placements
// on different rows never overlap.
func (p WindowPlacement) Overlaps(other WindowPlacement) bool {
	if p.Row != other.Row {
		return false
	}
	return p.LeftmostCol() <= other.RightmostCol() && other.LeftmostCol() <= p.RightmostCol()
}
