package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/erikgeiser/promptkit"
)

// MultiSelectItem is one checkbox entry.
type MultiSelectItem struct {
	Label    string
	Selected bool
}

var multiSelectKeys = []key.Binding{
	key.NewBinding(
		key.WithKeys("up", "k", "ctrl+p"),
		key.WithHelp("↑/k", "move up"),
	),
	key.NewBinding(
		key.WithKeys("down", "j", "ctrl+n"),
		key.WithHelp("↓/j", "move down"),
	),
	key.NewBinding(
		key.WithKeys("space"),
		key.WithHelp("space", "toggle"),
	),
	key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "cancel"),
	),
}

var (
	multiSelectTitleStyle  = lipgloss.NewStyle().Bold(true)
	multiSelectCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	multiSelectDoneStyle   = lipgloss.NewStyle().Faint(true)
)

type multiSelectModel struct {
	title   string
	items   []MultiSelectItem
	cursor  int
	help    help.Model
	done    bool
	aborted bool
}

func newMultiSelectModel(title string, items []MultiSelectItem) *multiSelectModel {
	return &multiSelectModel{
		title: title,
		items: items,
		help:  help.New(),
	}
}

func (m *multiSelectModel) Init() tea.Cmd {
	return nil
}

func (m *multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j", "ctrl+n":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			m.items[m.cursor].Selected = !m.items[m.cursor].Selected
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *multiSelectModel) View() string {
	var sb strings.Builder
	sb.WriteString(multiSelectTitleStyle.Render(m.title))
	sb.WriteString("\n")
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor && !m.done {
			cursor = multiSelectCursorStyle.Render("❯ ")
		}
		check := "[ ]"
		if item.Selected {
			check = "[x]"
		}
		line := cursor + check + " " + item.Label
		if m.done {
			line = multiSelectDoneStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if !m.done && !m.aborted {
		sb.WriteString(m.help.ShortHelpView(multiSelectKeys))
	}
	return sb.String()
}

func (m *multiSelectModel) ExitError() error {
	if m.aborted {
		return promptkit.ErrAborted
	}
	return nil
}

// MultiSelect presents a checkbox list and returns the indices of the
// checked items (in item order) once the user confirms.
func MultiSelect(title string, items []MultiSelectItem) ([]int, error) {
	model := newMultiSelectModel(title, items)
	if err := RunBubbleTea(model); err != nil {
		return nil, err
	}
	var selected []int
	for i, item := range model.items {
		if item.Selected {
			selected = append(selected, i)
		}
	}
	return selected, nil
}
