package cli

import (
	"github.com/kestrelapps/lodestar/internal/actions"
	"github.com/kestrelapps/lodestar/internal/calendar"
	"github.com/kestrelapps/lodestar/internal/cascade"
	"github.com/kestrelapps/lodestar/internal/notify"
	"github.com/kestrelapps/lodestar/internal/outcome"
	"github.com/kestrelapps/lodestar/internal/storage"
)

// Context carries the wired application services into every command's Run.
type Context struct {
	Store         storage.Provider
	Goals         *actions.GoalActions
	Milestones    *actions.MilestoneActions
	Tasks         *actions.TaskActions
	Notifications *actions.NotificationActions
	Events        *actions.EventActions
	Chats         *actions.ChatActions
	Cascade       *cascade.Orchestrator
	Reporter      *outcome.Reporter

	// Owner scopes notifications and chats to the local user.
	Owner string
}

// NewContext wires the action layer and cascade orchestrator over a store.
func NewContext(store storage.Provider, cal calendar.Service, sched notify.Scheduler, owner string) *Context {
	goals := actions.NewGoalActions(store)
	milestones := actions.NewMilestoneActions(store, cal)
	tasks := actions.NewTaskActions(store)
	notifications := actions.NewNotificationActions(store, sched)
	events := actions.NewEventActions(store, cal)
	chats := actions.NewChatActions(store)
	return &Context{
		Store:         store,
		Goals:         goals,
		Milestones:    milestones,
		Tasks:         tasks,
		Notifications: notifications,
		Events:        events,
		Chats:         chats,
		Cascade:       cascade.New(store, goals, milestones, tasks, notifications, events),
		Reporter:      outcome.NewReporter(nil),
		Owner:         owner,
	}
}
