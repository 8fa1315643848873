package entity

import (
	"errors"
	"testing"
)

func TestWindowPlacement_SpanBounds(t *testing.T) {
	tests := []struct {
		name          string
		anchor, width int
		leftmost      int
		rightmost     int
	}{
		{"unit width", 2, 1, 2, 2},
		{"width 2 leans right", 2, 2, 2, 3},
		{"width 3 centered", 2, 3, 1, 3},
		{"width 1 at origin", 0, 1, 0, 0},
		{"width 3 at anchor 1", 1, 3, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := WindowPlacement{AnchorCol: tt.anchor, Width: tt.width}
			if got := p.LeftmostCol(); got != tt.leftmost {
				t.Errorf("LeftmostCol() = %d, want %d", got, tt.leftmost)
			}
			if got := p.RightmostCol(); got != tt.rightmost {
				t.Errorf("RightmostCol() = %d, want %d", got, tt.rightmost)
			}
		})
	}
}

func TestWindowPlacement_Overlaps(t *testing.T) {
	wide := WindowPlacement{ID: "wide", Row: 0, AnchorCol: 1, Width: 3, Height: 1} // [0,2]

	tests := []struct {
		name     string
		other    WindowPlacement
		expected bool
	}{
		{"same row touching span", WindowPlacement{ID: "x", Row: 0, AnchorCol: 2, Width: 1}, true},
		{"same row disjoint", WindowPlacement{ID: "x", Row: 0, AnchorCol: 4, Width: 1}, false},
		{"different row same columns", WindowPlacement{ID: "x", Row: 1, AnchorCol: 1, Width: 3}, false},
		{"wide vs wide shifted", WindowPlacement{ID: "x", Row: 0, AnchorCol: 3, Width: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wide.Overlaps(tt.other); got != tt.expected {
				t.Errorf("Overlaps() = %v, want %v", got, tt.expected)
			}
			if got := tt.other.Overlaps(wide); got != tt.expected {
				t.Errorf("Overlaps() not symmetric: got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidateLayout(t *testing.T) {
	tests := []struct {
		name       string
		placements []WindowPlacement
		wantErr    error
	}{
		{
			name: "valid layout",
			placements: []WindowPlacement{
				{ID: "a", Row: 0, AnchorCol: 1, Width: 3, Height: 1},
				{ID: "b", Row: 0, AnchorCol: 4, Width: 1, Height: 1},
				{ID: "c", Row: 1, AnchorCol: 0, Width: 1, Height: 1},
			},
		},
		{
			name: "overlapping spans",
			placements: []WindowPlacement{
				{ID: "a", Row: 0, AnchorCol: 1, Width: 3, Height: 1},
				{ID: "b", Row: 0, AnchorCol: 2, Width: 1, Height: 1},
			},
			wantErr: ErrPlacementOverlap,
		},
		{
			name: "span past right edge",
			placements: []WindowPlacement{
				{ID: "a", Row: 0, AnchorCol: 4, Width: 3, Height: 1},
			},
			wantErr: ErrPlacementOutOfBounds,
		},
		{
			name: "span past left edge",
			placements: []WindowPlacement{
				{ID: "a", Row: 0, AnchorCol: 0, Width: 3, Height: 1},
			},
			wantErr: ErrPlacementOutOfBounds,
		},
		{
			name: "row out of range",
			placements: []WindowPlacement{
				{ID: "a", Row: 2, AnchorCol: 0, Width: 1, Height: 1},
			},
			wantErr: ErrPlacementOutOfBounds,
		},
		{
			name: "width above cap",
			placements: []WindowPlacement{
				{ID: "a", Row: 0, AnchorCol: 2, Width: 4, Height: 1},
			},
			wantErr: ErrInvalidWidth,
		},
		{
			name: "duplicate ids",
			placements: []WindowPlacement{
				{ID: "a", Row: 0, AnchorCol: 0, Width: 1, Height: 1},
				{ID: "a", Row: 1, AnchorCol: 0, Width: 1, Height: 1},
			},
			wantErr: ErrDuplicatePlacementID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayout(tt.placements, 5, 2)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateLayout() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateLayout() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
