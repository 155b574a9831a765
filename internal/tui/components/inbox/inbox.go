package inbox

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type ReadNotificationMsg struct {
	ID string
}

type DeleteNotificationMsg struct {
	ID string
}

type ClearNotificationsMsg struct{}

type Item struct {
	Notification models.Notification
}

func (i Item) Title() string {
	if i.Notification.Read {
		return "  " + i.Notification.Title
	}
	return "• " + i.Notification.Title
}

func (i Item) Description() string {
	return utils.Truncate(i.Notification.Message, 72)
}

func (i Item) FilterValue() string { return i.Notification.Title }

type KeyMap struct {
	Read   key.Binding
	Delete key.Binding
	Clear  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Read: key.NewBinding(
			key.WithKeys("enter", "m"),
			key.WithHelp("enter", "mark read"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(notifications []models.Notification, width, height int) Model {
	l := list.New(toItems(notifications), list.NewDefaultDelegate(), width, height)
	l.Title = "Inbox"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Read, keys.Delete, keys.Clear}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Read, keys.Delete, keys.Clear}
	}

	return Model{list: l, keys: keys}
}

func toItems(notifications []models.Notification) []list.Item {
	items := make([]list.Item, len(notifications))
	for i, n := range notifications {
		items[i] = Item{Notification: n}
	}
	return items
}

func (m *Model) SetNotifications(notifications []models.Notification) {
	m.list.SetItems(toItems(notifications))
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
		case key.Matches(msg, m.keys.Read):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if !i.Notification.Read {
					return m, func() tea.Msg { return ReadNotificationMsg{ID: i.Notification.ID} }
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteNotificationMsg{ID: i.Notification.ID} }
			}
		case key.Matches(msg, m.keys.Clear):
			if len(m.list.Items()) > 0 {
				return m, func() tea.Msg { return ClearNotificationsMsg{} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Inbox is empty."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
