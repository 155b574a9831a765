package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/storage"
	"github.com/kestrelapps/lodestar/internal/tui/components/goallist"
	"github.com/kestrelapps/lodestar/internal/tui/components/inbox"
	"github.com/kestrelapps/lodestar/internal/tui/components/milestonelist"
	"github.com/kestrelapps/lodestar/internal/tui/components/tasklist"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type storeChangeMsg storage.Change

func (m Model) watchStore() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		return storeChangeMsg(<-ch)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - 6
		m.goalList.SetSize(msg.Width-4, h)
		m.milestoneList.SetSize(msg.Width-4, h)
		m.taskList.SetSize(msg.Width-4, h)
		m.inboxModel.SetSize(msg.Width-4, h)
		return m, nil

	case storeChangeMsg:
		// Another process (or our own command) mutated the store; reload
		// whatever the current screens show and keep listening.
		m.refreshAll()
		return m, m.watchStore()

	case goallist.AddGoalMsg:
		return m.startAddGoal(), nil

	case goallist.OpenGoalMsg:
		goal, err := m.goals.Get(msg.ID)
		if err != nil {
			return m, nil
		}
		m.currentGoal = goal
		m.refreshMilestones()
		m.state = StateMilestones
		return m, nil

	case goallist.DeleteGoalMsg:
		m.toDelete = pendingDelete{kind: "goal", id: msg.ID, title: msg.Title}
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case milestonelist.OpenMilestoneMsg:
		ms, err := m.store.GetMilestone(msg.ID)
		if err != nil {
			return m, nil
		}
		m.currentMilestone = ms
		m.refreshTasks()
		m.state = StateTasks
		return m, nil

	case milestonelist.ToggleMilestoneMsg:
		completed := msg.Completed
		status := models.StatusInProgress
		if completed {
			status = models.StatusCompleted
		}
		if err := m.store.UpdateMilestone(models.MilestonePatch{
			ID:        msg.ID,
			Completed: &completed,
			Status:    &status,
		}); err == nil {
			m.refreshMilestones()
			m.refreshGoals()
		}
		return m, nil

	case milestonelist.DeleteMilestoneMsg:
		m.toDelete = pendingDelete{kind: "milestone", id: msg.ID, title: msg.Title}
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case tasklist.ToggleTaskMsg:
		completed := msg.Completed
		if err := m.store.UpdateTask(models.TaskPatch{ID: msg.ID, Completed: &completed}); err == nil {
			m.refreshTasks()
			m.refreshMilestones()
			m.refreshGoals()
		}
		return m, nil

	case tasklist.DeleteTaskMsg:
		m.toDelete = pendingDelete{kind: "task", id: msg.ID, title: msg.Title}
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case inbox.ReadNotificationMsg:
		read := true
		if err := m.store.UpdateNotification(models.NotificationPatch{ID: msg.ID, Read: &read}); err == nil {
			m.refreshInbox()
		}
		return m, nil

	case inbox.DeleteNotificationMsg:
		if err := m.store.DeleteNotification(msg.ID); err == nil {
			m.refreshInbox()
		}
		return m, nil

	case inbox.ClearNotificationsMsg:
		notifications, err := m.store.GetAllNotifications(m.owner)
		if err != nil || len(notifications) == 0 {
			return m, nil
		}
		ops := make([]storage.Op, len(notifications))
		for i, n := range notifications {
			ops[i] = storage.Op{Kind: storage.OpDelete, Entity: storage.EntityNotification, ID: n.ID}
		}
		if err := m.store.Transact(ops); err == nil {
			m.refreshInbox()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateAddGoal:
			return m.updateAddGoal(msg)
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			return m.nextTab(), nil
		case key.Matches(msg, m.keys.ShiftTab):
			return m.prevTab(), nil
		case key.Matches(msg, m.keys.Back):
			return m.goBack(), nil
		}
	}

	return m.updateActiveList(msg)
}

func (m Model) updateActiveList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateGoals:
		m.goalList, cmd = m.goalList.Update(msg)
	case StateMilestones:
		m.milestoneList, cmd = m.milestoneList.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case StateInbox:
		m.inboxModel, cmd = m.inboxModel.Update(msg)
	}
	return m, cmd
}

func (m Model) nextTab() Model {
	switch m.state {
	case StateGoals, StateMilestones, StateTasks:
		m.refreshInbox()
		m.state = StateInbox
	case StateInbox:
		m.refreshGoals()
		m.state = StateGoals
	}
	return m
}

func (m Model) prevTab() Model {
	return m.nextTab()
}

func (m Model) goBack() Model {
	switch m.state {
	case StateTasks:
		m.currentMilestone = models.Milestone{}
		m.refreshMilestones()
		m.state = StateMilestones
	case StateMilestones:
		m.currentGoal = models.Goal{}
		m.refreshGoals()
		m.state = StateGoals
	case StateInbox:
		m.refreshGoals()
		m.state = StateGoals
	}
	return m
}

func (m Model) startAddGoal() Model {
	m.goalForm = &GoalFormModel{
		TargetEndDate: utils.Today(),
		Priority:      string(models.PriorityMedium),
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&m.goalForm.Title),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&m.goalForm.Description),
			huh.NewInput().
				Title("Target date (YYYY-MM-DD)").
				Value(&m.goalForm.TargetEndDate),
			huh.NewSelect[string]().
				Title("Priority").
				Options(huh.NewOptions(
					string(models.PriorityLow),
					string(models.PriorityMedium),
					string(models.PriorityHigh),
				)...).
				Value(&m.goalForm.Priority),
		),
	)
	m.formError = ""
	m.previousState = m.state
	m.state = StateAddGoal
	return m
}

func (m Model) updateAddGoal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if !utils.ValidateDateFormat(m.goalForm.TargetEndDate) {
			m.formError = "target date must be YYYY-MM-DD"
			return m.startAddGoalKeepValues(), nil
		}
		_, err := m.goals.Create(models.Goal{
			Title:         m.goalForm.Title,
			Description:   m.goalForm.Description,
			Priority:      models.Priority(m.goalForm.Priority),
			StartDate:     utils.Today(),
			TargetEndDate: m.goalForm.TargetEndDate,
			Owner:         m.owner,
		})
		if err != nil {
			m.formError = err.Error()
			return m.startAddGoalKeepValues(), nil
		}
		m.refreshGoals()
		m.form = nil
		m.state = m.previousState
		return m, nil
	}

	if m.form.State == huh.StateAborted {
		m.form = nil
		m.state = m.previousState
		return m, nil
	}

	return m, cmd
}

// startAddGoalKeepValues rebuilds the form after a failed submit so the user
// can fix the rejected field without retyping everything.
func (m Model) startAddGoalKeepValues() Model {
	saved := *m.goalForm
	formError := m.formError
	prev := m.previousState
	m = m.startAddGoal()
	*m.goalForm = saved
	m.formError = formError
	m.previousState = prev
	return m
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		var err error
		switch m.toDelete.kind {
		case "goal":
			err = m.cascade.DeleteGoal(m.toDelete.id)
			if err == nil {
				m.currentGoal = models.Goal{}
			}
		case "milestone":
			err = m.cascade.DeleteMilestone(m.toDelete.id)
			if err == nil && m.currentMilestone.ID == m.toDelete.id {
				m.currentMilestone = models.Milestone{}
				m.previousState = StateMilestones
			}
		case "task":
			err = m.cascade.DeleteTask(m.toDelete.id)
		}
		if err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
		}
		m.refreshAll()
		m.state = m.previousState
		m.toDelete = pendingDelete{}
		return m, nil
	case "n", "N", "esc", "q":
		m.state = m.previousState
		m.toDelete = pendingDelete{}
		return m, nil
	}
	return m, nil
}
