package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconOffice     = "" //  building
	IconProject    = "" //  wrench
	IconRegulation = "" //  gavel
	IconNotes      = "" //  sticky note
	IconGrid       = "" //  grid
	IconCursor     = "" //  caret right
	IconCheck      = "" //  check
	IconX          = "" //  x
	IconWarning    = "" //  warning triangle
	IconClock      = "" //  clock
	IconVersion    = "" //  tag
	IconConfig     = "" //  gear
)
