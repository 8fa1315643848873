package layout

import (
	"errors"
	"fmt"

	"github.com/atelo/atelo/internal/domain/entity"
)

// ErrGridFull is returned by Add when no free cell remains. The engine
// rejects the add rather than stacking a new window on an occupied cell,
// which would break the no-overlap invariant.
var ErrGridFull = errors.New("no free cell on the grid")

// ErrUnknownPlacement is returned when a command names an ID the engine
// does not hold.
var ErrUnknownPlacement = errors.New("unknown placement")

// ResizeDirection selects which edge of a placement grows.
type ResizeDirection int

const (
	GrowLeft ResizeDirection = iota
	GrowRight
)

// IDGenerator produces fresh placement IDs. IDs are never reused.
type IDGenerator func() entity.PlacementID

// ChangeFunc observes the placement collection after every mutating
// command. Callers use it to write-through the layout to storage.
type ChangeFunc func(placements []entity.WindowPlacement)

// Engine owns the placement collection of one dashboard workspace and
// applies user commands to it. All methods are synchronous and must be
// called from a single goroutine; the engine holds no locks.
type Engine struct {
	grid       Grid
	placements []entity.WindowPlacement
	newID      IDGenerator
	resizable  map[entity.WindowKind]bool
	onChange   ChangeFunc

	session sessionState
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator overrides the placement ID source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(e *Engine) { e.newID = gen }
}

// WithResizableKinds marks which window kinds accept resize commands.
func WithResizableKinds(kinds ...entity.WindowKind) Option {
	return func(e *Engine) {
		e.resizable = make(map[entity.WindowKind]bool, len(kinds))
		for _, k := range kinds {
			e.resizable[k] = true
		}
	}
}

// WithOnChange registers the write-through hook.
func WithOnChange(fn ChangeFunc) Option {
	return func(e *Engine) { e.onChange = fn }
}

// NewEngine creates an engine over the given grid, seeded with the loaded
// placement collection. Placements that violate the layout invariants
// (corrupt or truncated snapshots) are reconciled: anchors clamped into
// bounds, then overlapping or malformed entries dropped.
func NewEngine(grid Grid, loaded []entity.WindowPlacement, opts ...Option) *Engine {
	e := &Engine{
		grid:    grid,
		session: sessionState{mode: ModeIdle},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.newID == nil {
		e.newID = sequentialIDs()
	}
	e.placements = reconcile(grid, loaded)
	return e
}

// reconcile salvages what it can from a stored layout: widths snapped into
// range, anchors clamped, duplicate IDs and overlapping spans dropped.
func reconcile(grid Grid, loaded []entity.WindowPlacement) []entity.WindowPlacement {
	placements := make([]entity.WindowPlacement, 0, len(loaded))
	seen := make(map[entity.PlacementID]struct{}, len(loaded))

	for _, p := range loaded {
		if p.ID == "" {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		if p.Row < 0 || p.Row >= grid.Rows {
			continue
		}
		if p.Width < 1 {
			p.Width = 1
		}
		if p.Width > entity.MaxPlacementWidth {
			p.Width = entity.MaxPlacementWidth
		}
		if p.Height < 1 {
			p.Height = 1
		}
		if p.Row+p.Height > grid.Rows {
			p.Height = grid.Rows - p.Row
		}
		p.AnchorCol = grid.ClampAnchor(p.AnchorCol, p.Width)
		if collisionTarget(placements, p.Row, p.LeftmostCol(), p.RightmostCol(), p.ID) >= 0 {
			continue
		}
		seen[p.ID] = struct{}{}
		placements = append(placements, p)
	}

	return placements
}

// Grid returns the engine's cell arrangement.
func (e *Engine) Grid() Grid {
	return e.grid
}

// Placements returns a copy of the current placement collection.
func (e *Engine) Placements() []entity.WindowPlacement {
	out := make([]entity.WindowPlacement, len(e.placements))
	copy(out, e.placements)
	return out
}

// Placement returns the placement with the given ID, if present.
func (e *Engine) Placement(id entity.PlacementID) (entity.WindowPlacement, bool) {
	if i := e.indexOf(id); i >= 0 {
		return e.placements[i], true
	}
	return entity.WindowPlacement{}, false
}

func (e *Engine) indexOf(id entity.PlacementID) int {
	for i, p := range e.placements {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Add creates a unit-size placement of the given kind on the first free
// cell, scanning row-major from (0,0). Returns ErrGridFull when every cell
// is occupied.
func (e *Engine) Add(kind entity.WindowKind) (entity.WindowPlacement, error) {
	for row := 0; row < e.grid.Rows; row++ {
		for col := 0; col < e.grid.Cols; col++ {
			if IsCellOccupied(e.placements, row, col, "") {
				continue
			}
			p := entity.NewWindowPlacement(e.newID(), kind, row, col)
			e.placements = append(e.placements, p)
			e.changed()
			return p, nil
		}
	}
	return entity.WindowPlacement{}, ErrGridFull
}

// Remove deletes the placement with the given ID. Remaining placements
// stay where they are: removal never reflows neighbors. Unknown IDs are a
// no-op. Returns whether a placement was removed.
func (e *Engine) Remove(id entity.PlacementID) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	e.placements = append(e.placements[:i], e.placements[i+1:]...)
	e.session.placementRemoved(id)
	e.changed()
	return true
}

// MoveOrSwap drops the placement onto the target cell. The anchor is
// clamped so the span fits the grid; if the clamped span collides with
// another placement on the target row, the two placements exchange
// positions (each keeps its own width and height). Otherwise the dragged
// placement simply moves.
func (e *Engine) MoveOrSwap(id entity.PlacementID, targetRow, targetCol int) error {
	i := e.indexOf(id)
	if i < 0 {
		return ErrUnknownPlacement
	}
	if targetRow < 0 || targetRow >= e.grid.Rows {
		return nil
	}

	dragged := e.placements[i]
	anchor := e.grid.ClampAnchor(targetCol, dragged.Width)
	spanLo := anchor - (dragged.Width-1)/2
	spanHi := anchor + dragged.Width/2

	if j := collisionTarget(e.placements, targetRow, spanLo, spanHi, id); j >= 0 {
		// Position exchange, not a shape exchange: with fixed-capacity
		// rows and no reflow, swapping preserves the no-overlap invariant
		// without any cascading displacement.
		target := e.placements[j]
		e.placements[j].Row = dragged.Row
		e.placements[j].AnchorCol = e.grid.ClampAnchor(dragged.AnchorCol, target.Width)
		e.placements[i].Row = target.Row
		e.placements[i].AnchorCol = e.grid.ClampAnchor(target.AnchorCol, dragged.Width)

		// A swap between placements of different widths can brush against
		// a third placement once anchors are clamped. Such a drop is
		// rejected rather than left overlapping.
		if entity.ValidateLayout(e.placements, e.grid.Cols, e.grid.Rows) != nil {
			e.placements[i] = dragged
			e.placements[j] = target
			return nil
		}
	} else {
		e.placements[i].Row = targetRow
		e.placements[i].AnchorCol = anchor
	}

	e.changed()
	return nil
}

// CanResize reports whether the placement may grow one cell in the given
// direction: its kind must be resizable, its width below the cap, and the
// single cell just outside the grown edge must be inside the grid and free.
func (e *Engine) CanResize(id entity.PlacementID, dir ResizeDirection) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	p := e.placements[i]

	if !e.resizable[p.Kind] || p.Width >= entity.MaxPlacementWidth {
		return false
	}

	var adjacent int
	switch dir {
	case GrowLeft:
		adjacent = p.LeftmostCol() - 1
	case GrowRight:
		adjacent = p.RightmostCol() + 1
	default:
		return false
	}

	if !e.grid.Contains(p.Row, adjacent) {
		return false
	}
	return !IsCellOccupied(e.placements, p.Row, adjacent, id)
}

// resize grows the placement by one cell in the given direction, keeping
// the un-grown edge fixed. Ineligible requests are silent no-ops.
func (e *Engine) resize(id entity.PlacementID, dir ResizeDirection) {
	if !e.CanResize(id, dir) {
		return
	}

	i := e.indexOf(id)
	p := &e.placements[i]
	newWidth := p.Width + 1

	switch dir {
	case GrowLeft:
		newLeftmost := p.LeftmostCol() - 1
		p.AnchorCol = newLeftmost + (newWidth-1)/2
	case GrowRight:
		newRightmost := p.RightmostCol() + 1
		p.AnchorCol = newRightmost - newWidth/2
	}
	p.Width = newWidth

	// Safety net; a CanResize-approved grow already fits.
	p.AnchorCol = e.grid.ClampAnchor(p.AnchorCol, p.Width)

	e.changed()
}

func (e *Engine) changed() {
	if e.onChange != nil {
		e.onChange(e.Placements())
	}
}

// sequentialIDs is the fallback generator used when no IDGenerator option
// is supplied. Production wiring injects UUIDs.
func sequentialIDs() IDGenerator {
	next := 0
	return func() entity.PlacementID {
		next++
		return entity.PlacementID(fmt.Sprintf("w%d", next))
	}
}
