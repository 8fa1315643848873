package layout

import "github.com/atelo/atelo/internal/domain/entity"

// Mode is the interaction state of the dashboard session.
type Mode int

const (
	// ModeIdle: nothing selected.
	ModeIdle Mode = iota
	// ModeSelected: one placement selected, ready to drag, resize or delete.
	ModeSelected
	// ModeDragging: the selected placement is being dragged.
	ModeDragging
	// ModeResizing: a resize press is held, awaiting release or cancel.
	ModeResizing
)

// sessionState tracks which placement is selected and what gesture is in
// flight. There is no terminal state; the machine is re-entered every
// session.
type sessionState struct {
	mode       Mode
	selectedID entity.PlacementID
	resizeDir  ResizeDirection
}

// placementRemoved resets the session when the placement it refers to goes
// away (delete key or an external window-closed signal).
func (s *sessionState) placementRemoved(id entity.PlacementID) {
	if s.selectedID == id {
		s.mode = ModeIdle
		s.selectedID = ""
	}
}

// Mode returns the current interaction mode.
func (e *Engine) Mode() Mode {
	return e.session.mode
}

// SelectedID returns the selected placement ID, or "" in ModeIdle.
func (e *Engine) SelectedID() entity.PlacementID {
	return e.session.selectedID
}

// Select toggles selection of a placement. Selecting the placement that is
// already selected deselects it. Ignored while a drag or resize gesture is
// in flight, and for unknown IDs.
func (e *Engine) Select(id entity.PlacementID) {
	if e.session.mode == ModeDragging || e.session.mode == ModeResizing {
		return
	}
	if e.indexOf(id) < 0 {
		return
	}
	if e.session.mode == ModeSelected && e.session.selectedID == id {
		e.session.mode = ModeIdle
		e.session.selectedID = ""
		return
	}
	e.session.mode = ModeSelected
	e.session.selectedID = id
}

// Deselect returns the session to idle. An in-flight resize is discarded
// without mutation; an in-flight drag is abandoned.
func (e *Engine) Deselect() {
	e.session.mode = ModeIdle
	e.session.selectedID = ""
}

// BeginDrag starts dragging the selected placement. Dragging anything but
// the current selection is rejected.
func (e *Engine) BeginDrag(id entity.PlacementID) bool {
	if e.session.mode != ModeSelected || e.session.selectedID != id {
		return false
	}
	e.session.mode = ModeDragging
	return true
}

// Drop ends the drag on the target cell, applying MoveOrSwap, and returns
// to ModeSelected. A drop without a drag in flight is a no-op.
func (e *Engine) Drop(targetRow, targetCol int) {
	if e.session.mode != ModeDragging {
		return
	}
	_ = e.MoveOrSwap(e.session.selectedID, targetRow, targetCol)
	e.session.mode = ModeSelected
}

// CancelDrag abandons the drag with no mutation, returning to ModeSelected.
func (e *Engine) CancelDrag() {
	if e.session.mode != ModeDragging {
		return
	}
	e.session.mode = ModeSelected
}

// BeginResize starts a resize session on the selected placement. Only
// reachable from ModeSelected and only when the grow is eligible right now;
// eligibility is re-checked on commit, so a refused press is silent.
func (e *Engine) BeginResize(id entity.PlacementID, dir ResizeDirection) bool {
	if e.session.mode != ModeSelected || e.session.selectedID != id {
		return false
	}
	if !e.CanResize(id, dir) {
		return false
	}
	e.session.mode = ModeResizing
	e.session.resizeDir = dir
	return true
}

// CommitResize applies exactly one width increment in the recorded
// direction and returns to ModeSelected. Each further increment needs a
// fresh press/release cycle.
func (e *Engine) CommitResize() {
	if e.session.mode != ModeResizing {
		return
	}
	e.resize(e.session.selectedID, e.session.resizeDir)
	e.session.mode = ModeSelected
}

// CancelResize abandons the resize session with no mutation.
func (e *Engine) CancelResize() {
	if e.session.mode != ModeResizing {
		return
	}
	e.session.mode = ModeSelected
}

// DeleteSelected removes the selected placement and returns to ModeIdle.
// A no-op outside ModeSelected.
func (e *Engine) DeleteSelected() {
	if e.session.mode != ModeSelected {
		return
	}
	e.Remove(e.session.selectedID)
}
