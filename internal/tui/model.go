package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kestrelapps/lodestar/internal/actions"
	"github.com/kestrelapps/lodestar/internal/cascade"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/progress"
	"github.com/kestrelapps/lodestar/internal/storage"
	"github.com/kestrelapps/lodestar/internal/tui/components/goallist"
	"github.com/kestrelapps/lodestar/internal/tui/components/inbox"
	"github.com/kestrelapps/lodestar/internal/tui/components/milestonelist"
	"github.com/kestrelapps/lodestar/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateGoals SessionState = iota
	StateMilestones
	StateTasks
	StateInbox
	StateAddGoal
	StateConfirmDelete
)

type GoalFormModel struct {
	Title         string
	Description   string
	TargetEndDate string
	Priority      string
}

// pendingDelete remembers what the confirmation screen is about.
type pendingDelete struct {
	kind  string // "goal", "milestone" or "task"
	id    string
	title string
}

type Model struct {
	store   storage.Provider
	goals   *actions.GoalActions
	cascade *cascade.Orchestrator
	owner   string

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	goalList      goallist.Model
	milestoneList milestonelist.Model
	taskList      tasklist.Model
	inboxModel    inbox.Model

	// Drill-down context: which goal/milestone the lists below are scoped to.
	currentGoal      models.Goal
	currentMilestone models.Milestone

	form      *huh.Form
	goalForm  *GoalFormModel
	toDelete  pendingDelete
	formError string
	quitting  bool
	width     int
	height    int

	changes <-chan storage.Change
}

func NewModel(store storage.Provider, goals *actions.GoalActions, casc *cascade.Orchestrator, owner string) Model {
	goalData, err := goals.GetAll()
	if err != nil {
		goalData = []models.Goal{}
	}
	notifications, err := store.GetAllNotifications(owner)
	if err != nil {
		notifications = []models.Notification{}
	}

	return Model{
		store:         store,
		goals:         goals,
		cascade:       casc,
		owner:         owner,
		state:         StateGoals,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		goalList:      goallist.New(goalData, 0, 0),
		milestoneList: milestonelist.New(nil, 0, 0),
		taskList:      tasklist.New(nil, 0, 0),
		inboxModel:    inbox.New(notifications, 0, 0),
		changes:       store.Watch(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.watchStore()
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back},
	}
}

func (m *Model) refreshGoals() {
	goalData, err := m.goals.GetAll()
	if err != nil {
		return
	}
	m.goalList.SetGoals(goalData)
}

func (m *Model) refreshMilestones() {
	milestones, err := m.store.GetMilestonesForGoal(m.currentGoal.ID)
	if err != nil {
		return
	}
	items := make([]milestonelist.Item, len(milestones))
	for i, ms := range milestones {
		tasks, err := m.store.GetTasksForMilestone(ms.ID)
		if err != nil {
			tasks = nil
		}
		items[i] = milestonelist.Item{
			Milestone: ms,
			Progress:  progress.MilestoneProgress(tasks, ms.ID, ms.Completed),
		}
	}
	m.milestoneList.SetItems(items)
}

func (m *Model) refreshTasks() {
	tasks, err := m.store.GetTasksForMilestone(m.currentMilestone.ID)
	if err != nil {
		return
	}
	m.taskList.SetTasks(tasks)
}

func (m *Model) refreshInbox() {
	notifications, err := m.store.GetAllNotifications(m.owner)
	if err != nil {
		return
	}
	m.inboxModel.SetNotifications(notifications)
}

func (m *Model) refreshAll() {
	m.refreshGoals()
	if m.currentGoal.ID != "" {
		m.refreshMilestones()
	}
	if m.currentMilestone.ID != "" {
		m.refreshTasks()
	}
	m.refreshInbox()
}
