package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateGoals:
		content = docStyle.Render(m.goalList.View())
	case StateMilestones:
		content = docStyle.Render(m.milestoneList.View())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateInbox:
		content = docStyle.Render(m.inboxModel.View())
	case StateAddGoal:
		content = m.viewAddGoal()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewBreadcrumb(),
		content,
		m.help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	goalTab := inactiveTabStyle
	inboxTab := inactiveTabStyle
	switch m.state {
	case StateInbox:
		inboxTab = activeTabStyle
	default:
		goalTab = activeTabStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		goalTab.Render("Goals"),
		inboxTab.Render("Inbox"),
	)
}

func (m Model) viewBreadcrumb() string {
	switch m.state {
	case StateMilestones:
		return breadcrumbStyle.Render(m.currentGoal.Title)
	case StateTasks:
		return breadcrumbStyle.Render(m.currentGoal.Title + " › " + m.currentMilestone.Title)
	}
	return ""
}

func (m Model) viewAddGoal() string {
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left,
			errStyle.Render("✗ "+m.formError),
			view,
		)
	}
	return docStyle.Render(view)
}

func (m Model) viewConfirmDelete() string {
	prompt := fmt.Sprintf("Delete %s %q?", m.toDelete.kind, m.toDelete.title)
	var detail string
	switch m.toDelete.kind {
	case "goal":
		detail = "All of its milestones, tasks, notifications and calendar events go with it."
	case "milestone":
		detail = "All of its tasks, notifications and calendar events go with it."
	case "task":
		detail = "Its notifications and calendar events go with it."
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			detail,
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
