package styles

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is a yes/no confirmation dialog.
type ConfirmModel struct {
	Message   string
	Yes       bool // current selection
	Confirmed bool // user pressed enter
	Canceled  bool // user pressed escape
	theme     *Theme
}

type confirmKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultConfirmKeyMap() confirmKeyMap {
	return confirmKeyMap{
		Yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "no")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "yes")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// NewConfirm creates a confirmation dialog. The selection defaults to "No".
func NewConfirm(theme *Theme, message string) ConfirmModel {
	return ConfirmModel{Message: message, theme: theme}
}

// Update handles one message and returns the updated dialog.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	keys := defaultConfirmKeyMap()

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Yes), key.Matches(msg, keys.Right):
			m.Yes = true
		case key.Matches(msg, keys.No), key.Matches(msg, keys.Left):
			m.Yes = false
		case key.Matches(msg, keys.Confirm):
			m.Confirmed = true
		case key.Matches(msg, keys.Cancel):
			m.Canceled = true
		}
	}
	return m, nil
}

// View renders the dialog box.
func (m ConfirmModel) View() string {
	t := m.theme

	yesStyle, noStyle := t.InactiveTab, t.ActiveTab
	if m.Yes {
		yesStyle, noStyle = t.ActiveTab, t.InactiveTab
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		noStyle.Render(" No "), "  ", yesStyle.Render(" Yes "))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		t.Title.Render(m.Message),
		"",
		buttons,
		"",
		t.Subtle.Render("y/n or ←/→ to select • enter to confirm • esc to cancel"),
	)
	return t.Box.Render(content)
}

// Done reports whether the dialog completed.
func (m ConfirmModel) Done() bool {
	return m.Confirmed || m.Canceled
}

// Result reports whether the user confirmed "Yes".
func (m ConfirmModel) Result() bool {
	return m.Confirmed && m.Yes
}
