package goallist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type AddGoalMsg struct{}

type OpenGoalMsg struct {
	ID string
}

type DeleteGoalMsg struct {
	ID    string
	Title string
}

type Item struct {
	Goal models.Goal
	bar  string
}

func (i Item) Title() string {
	marker := "○"
	switch i.Goal.Status {
	case models.StatusCompleted:
		marker = "✓"
	case models.StatusInProgress:
		marker = "●"
	case models.StatusCancelled:
		marker = "✗"
	}
	return fmt.Sprintf("%s %s", marker, i.Goal.Title)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s %3d%%", i.bar, i.Goal.OverallProgress)
	if i.Goal.TargetEndDate != "" {
		desc += "  " + utils.FormatDeadline(i.Goal.TargetEndDate)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Goal.Title }

type KeyMap struct {
	Add    key.Binding
	Open   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add goal"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "milestones"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	bar  progress.Model
	keys KeyMap
}

func New(goals []models.Goal, width, height int) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 20
	bar.ShowPercentage = false

	l := list.New(toItems(goals, bar), list.NewDefaultDelegate(), width, height)
	l.Title = "Goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Open, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Open, keys.Delete}
	}

	return Model{list: l, bar: bar, keys: keys}
}

func toItems(goals []models.Goal, bar progress.Model) []list.Item {
	items := make([]list.Item, len(goals))
	for i, g := range goals {
		items[i] = Item{
			Goal: g,
			bar:  bar.ViewAs(float64(g.OverallProgress) / 100),
		}
	}
	return items
}

func (m *Model) SetGoals(goals []models.Goal) {
	m.list.SetItems(toItems(goals, m.bar))
}

func (m Model) Selected() (models.Goal, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Goal, true
	}
	return models.Goal{}, false
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
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddGoalMsg{} }
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenGoalMsg{ID: i.Goal.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteGoalMsg{ID: i.Goal.ID, Title: i.Goal.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No goals yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
