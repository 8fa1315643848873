// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atelo/atelo/internal/application/usecase"
	"github.com/atelo/atelo/internal/cli/styles"
	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/layout"
	"github.com/atelo/atelo/internal/ui/dashboard"
)

// refreshInterval paces grid repaints so subscription-fed window content
// shows up without user input.
const refreshInterval = time.Second

// DashboardModel is the Bubble Tea model for the grid dashboard.
type DashboardModel struct {
	help    help.Model
	keys    dashboardKeyMap
	confirm *styles.ConfirmModel

	// State
	cursor        int // index into the row-major placement order
	addMenu       bool
	addMenuIdx    int
	dragRow       int
	dragCol       int
	width         int
	height        int
	statusMessage string

	// Config
	cellWidth  int
	cellHeight int

	// Dependencies
	session  *usecase.DashboardSession
	registry *dashboard.Registry
	theme    *styles.Theme
}

type dashboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Add       key.Binding
	Confirm   key.Binding
	Move      key.Binding
	GrowLeft  key.Binding
	GrowRight key.Binding
	Delete    key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Add, k.Move, k.GrowLeft, k.Delete, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Add, k.Move, k.Delete},
		{k.GrowLeft, k.GrowRight, k.Cancel},
		{k.Help, k.Quit},
	}
}

func defaultDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add window"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select/confirm"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		GrowLeft: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "grow left"),
		),
		GrowRight: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "grow right"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "remove"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/deselect"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DashboardModelConfig holds configuration for the dashboard model.
type DashboardModelConfig struct {
	Session    *usecase.DashboardSession
	Registry   *dashboard.Registry
	CellWidth  int
	CellHeight int
}

// NewDashboardModel creates the dashboard model over an open session.
func NewDashboardModel(theme *styles.Theme, cfg DashboardModelConfig) DashboardModel {
	return DashboardModel{
		help:       help.New(),
		keys:       defaultDashboardKeyMap(),
		width:      120,
		height:     36,
		cellWidth:  cfg.CellWidth,
		cellHeight: cfg.CellHeight,
		session:    cfg.Session,
		registry:   cfg.Registry,
		theme:      theme,
	}
}

type refreshMsg struct{}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return scheduleRefresh()
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirmModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		return m, scheduleRefresh()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m DashboardModel) handleConfirmModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	confirm, cmd := m.confirm.Update(msg)
	m.confirm = &confirm
	if m.confirm.Done() {
		if m.confirm.Result() {
			m.engine().DeleteSelected()
			m.clampCursor()
			m.statusMessage = "window removed"
		}
		m.confirm = nil
	}
	return m, cmd
}

func (m DashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.addMenu {
		return m.handleAddMenuKey(msg)
	}

	switch m.engine().Mode() {
	case layout.ModeDragging:
		return m.handleDraggingKey(msg)
	case layout.ModeResizing:
		return m.handleResizingKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m DashboardModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	eng := m.engine()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if eng.Mode() == layout.ModeSelected {
			eng.Deselect()
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Right):
		if m.cursor < len(eng.Placements())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.addMenu = true
		m.addMenuIdx = 0
		m.statusMessage = ""
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if p, ok := m.placementUnderCursor(); ok {
			eng.Select(p.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Move):
		if p, ok := m.selectedPlacement(); ok && eng.BeginDrag(p.ID) {
			m.dragRow = p.Row
			m.dragCol = p.AnchorCol
			m.statusMessage = "move with arrows, enter to drop, esc to cancel"
		}
		return m, nil

	case key.Matches(msg, m.keys.GrowLeft):
		return m.beginResize(layout.GrowLeft), nil

	case key.Matches(msg, m.keys.GrowRight):
		return m.beginResize(layout.GrowRight), nil

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.selectedPlacement(); ok {
			confirm := styles.NewConfirm(m.theme, fmt.Sprintf("Remove %s window?", p.Kind))
			m.confirm = &confirm
		} else {
			m.statusMessage = "select a window first"
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m DashboardModel) beginResize(dir layout.ResizeDirection) DashboardModel {
	eng := m.engine()
	p, ok := m.selectedPlacement()
	if !ok {
		m.statusMessage = "select a window first"
		return m
	}
	if !eng.BeginResize(p.ID, dir) {
		m.statusMessage = "window cannot grow that way"
		return m
	}
	m.statusMessage = "enter to grow, esc to cancel"
	return m
}

func (m DashboardModel) handleDraggingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	eng := m.engine()
	grid := eng.Grid()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.dragRow > 0 {
			m.dragRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.dragRow < grid.Rows-1 {
			m.dragRow++
		}
	case key.Matches(msg, m.keys.Left):
		if m.dragCol > 0 {
			m.dragCol--
		}
	case key.Matches(msg, m.keys.Right):
		if m.dragCol < grid.Cols-1 {
			m.dragCol++
		}
	case key.Matches(msg, m.keys.Confirm):
		eng.Drop(m.dragRow, m.dragCol)
		m.statusMessage = ""
	case key.Matches(msg, m.keys.Cancel):
		eng.CancelDrag()
		m.statusMessage = ""
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m DashboardModel) handleResizingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	eng := m.engine()

	switch {
	case key.Matches(msg, m.keys.Confirm):
		eng.CommitResize()
		m.statusMessage = ""
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	default:
		// Any other key abandons the pending resize.
		eng.CancelResize()
		m.statusMessage = ""
	}
	return m, nil
}

func (m DashboardModel) handleAddMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kinds := entity.AllWindowKinds()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.addMenuIdx > 0 {
			m.addMenuIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.addMenuIdx < len(kinds)-1 {
			m.addMenuIdx++
		}
	case key.Matches(msg, m.keys.Confirm):
		m.addMenu = false
		if _, err := m.engine().Add(kinds[m.addMenuIdx]); err != nil {
			if errors.Is(err, layout.ErrGridFull) {
				m.statusMessage = "grid is full"
			} else {
				m.statusMessage = fmt.Sprintf("Error: %v", err)
			}
		}
	case key.Matches(msg, m.keys.Cancel):
		m.addMenu = false
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *DashboardModel) engine() *layout.Engine {
	return m.session.Engine()
}

// orderedPlacements returns the placements in row-major reading order, the
// order the selection cursor walks.
func (m DashboardModel) orderedPlacements() []entity.WindowPlacement {
	placements := m.engine().Placements()
	sort.SliceStable(placements, func(i, j int) bool {
		if placements[i].Row != placements[j].Row {
			return placements[i].Row < placements[j].Row
		}
		return placements[i].LeftmostCol() < placements[j].LeftmostCol()
	})
	return placements
}

func (m DashboardModel) placementUnderCursor() (entity.WindowPlacement, bool) {
	ordered := m.orderedPlacements()
	if m.cursor < 0 || m.cursor >= len(ordered) {
		return entity.WindowPlacement{}, false
	}
	return ordered[m.cursor], true
}

func (m DashboardModel) selectedPlacement() (entity.WindowPlacement, bool) {
	return m.engine().Placement(m.engine().SelectedID())
}

func (m *DashboardModel) clampCursor() {
	if n := len(m.engine().Placements()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}

	t := m.theme
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.addMenu {
		b.WriteString(m.renderAddMenu())
		b.WriteString("\n")
	}

	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	if m.statusMessage != "" {
		b.WriteString(t.Subtle.Render(m.statusMessage))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m DashboardModel) renderHeader() string {
	t := m.theme

	icon := lipgloss.NewStyle().Foreground(t.Accent).Render(styles.IconGrid)
	title := t.Title.MarginLeft(1).Render("Dashboard")
	keyBadge := t.BadgeMuted.Render(string(m.session.Key()))

	var modeBadge string
	switch m.engine().Mode() {
	case layout.ModeSelected:
		modeBadge = t.Badge.Render("selected")
	case layout.ModeDragging:
		modeBadge = t.Badge.Render("moving")
	case layout.ModeResizing:
		modeBadge = t.Badge.Render("resizing")
	default:
		modeBadge = t.BadgeMuted.Render("idle")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, icon, title, "  ", keyBadge, " ", modeBadge)
}

func (m DashboardModel) renderAddMenu() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Subtitle.Render("Add window"))
	b.WriteString("\n")
	for i, kind := range entity.AllWindowKinds() {
		cursor := "  "
		style := t.Normal
		if i == m.addMenuIdx {
			cursor = t.Highlight.Render(styles.IconCursor + " ")
			style = t.Highlight
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(string(kind)))
		b.WriteString("\n")
	}
	return t.Box.Render(b.String())
}

func (m DashboardModel) renderGrid() string {
	grid := m.engine().Grid()
	rows := make([]string, 0, grid.Rows)
	for row := 0; row < grid.Rows; row++ {
		rows = append(rows, m.renderRow(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m DashboardModel) renderRow(row int) string {
	grid := m.engine().Grid()

	byCol := make(map[int]entity.WindowPlacement)
	for _, p := range m.engine().Placements() {
		if p.Row == row {
			byCol[p.LeftmostCol()] = p
		}
	}

	var cells []string
	for col := 0; col < grid.Cols; {
		if p, ok := byCol[col]; ok {
			cells = append(cells, m.renderWindow(p))
			col = p.RightmostCol() + 1
			continue
		}
		cells = append(cells, m.renderEmptyCell(row, col))
		col++
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m DashboardModel) renderWindow(p entity.WindowPlacement) string {
	t := m.theme
	eng := m.engine()

	style := t.Window
	switch {
	case eng.Mode() == layout.ModeDragging && p.ID == eng.SelectedID():
		style = t.WindowDragging
	case p.ID == eng.SelectedID():
		style = t.WindowSelected
	default:
		if cursorP, ok := m.placementUnderCursor(); ok && cursorP.ID == p.ID && eng.Mode() == layout.ModeIdle {
			style = t.Window.BorderForeground(t.Muted)
		}
	}

	innerWidth := p.Width*m.cellWidth - 2
	innerHeight := m.cellHeight - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 2 {
		innerHeight = 2
	}

	title := t.Subtitle.Render(truncate(string(p.Kind), innerWidth))
	body := m.registry.Render(p, innerWidth, innerHeight-1)
	return style.Width(innerWidth).Height(innerHeight).Render(title + "\n" + body)
}

func (m DashboardModel) renderEmptyCell(row, col int) string {
	t := m.theme
	eng := m.engine()

	style := t.EmptyCell
	if eng.Mode() == layout.ModeDragging && row == m.dragRow && col == m.dragCol {
		style = t.WindowDragging
	}

	innerWidth := m.cellWidth - 2
	innerHeight := m.cellHeight - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}
	return style.Width(innerWidth).Height(innerHeight).
		Render(lipgloss.PlaceVertical(innerHeight, lipgloss.Center,
			lipgloss.PlaceHorizontal(innerWidth, lipgloss.Center, "·")))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// Ensure interface compliance at compile time.
var _ tea.Model = (*DashboardModel)(nil)
