package milestonelist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type OpenMilestoneMsg struct {
	ID string
}

type ToggleMilestoneMsg struct {
	ID        string
	Completed bool
}

type DeleteMilestoneMsg struct {
	ID    string
	Title string
}

// Item carries a milestone plus the task-derived progress value computed by
// the parent model; the list itself never touches the store.
type Item struct {
	Milestone models.Milestone
	Progress  int
}

func (i Item) Title() string {
	marker := "○"
	if i.Milestone.Completed {
		marker = "✓"
	}
	return fmt.Sprintf("%s %s (weight %d%%)", marker, i.Milestone.Title, i.Milestone.Percentage)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d%% done", i.Progress)
	if i.Milestone.Deadline != "" {
		desc += "  " + utils.FormatDeadline(i.Milestone.Deadline)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Milestone.Title }

type KeyMap struct {
	Open   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Back   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "tasks"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}

	l := list.New(listItems, list.NewDefaultDelegate(), width, height)
	l.Title = "Milestones"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Toggle, keys.Delete, keys.Back}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Toggle, keys.Delete, keys.Back}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetItems(items []Item) {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	m.list.SetItems(listItems)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenMilestoneMsg{ID: i.Milestone.ID} }
			}
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return ToggleMilestoneMsg{ID: i.Milestone.ID, Completed: !i.Milestone.Completed}
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return DeleteMilestoneMsg{ID: i.Milestone.ID, Title: i.Milestone.Title}
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No milestones for this goal."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
