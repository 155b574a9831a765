// Package cascade deletes entity trees in dependency order. Children go
// before parents so a crash mid-cascade never leaves records pointing at a
// deleted parent. Already-issued deletes are not rolled back; the first
// failure aborts and propagates.
package cascade

import (
	"github.com/kestrelapps/lodestar/internal/actions"
	"github.com/kestrelapps/lodestar/internal/logger"
	"github.com/kestrelapps/lodestar/internal/storage"
)

// Orchestrator walks an entity's dependents through the action layer, which
// handles external-resource cleanup and atomic batching per level.
type Orchestrator struct {
	store         storage.Provider
	goals         *actions.GoalActions
	milestones    *actions.MilestoneActions
	tasks         *actions.TaskActions
	notifications *actions.NotificationActions
	events        *actions.EventActions
}

func New(
	store storage.Provider,
	goals *actions.GoalActions,
	milestones *actions.MilestoneActions,
	tasks *actions.TaskActions,
	notifications *actions.NotificationActions,
	events *actions.EventActions,
) *Orchestrator {
	return &Orchestrator{
		store:         store,
		goals:         goals,
		milestones:    milestones,
		tasks:         tasks,
		notifications: notifications,
		events:        events,
	}
}

// DeleteGoal removes a goal, its milestones, their tasks and every
// notification or calendar event referencing any of them.
func (o *Orchestrator) DeleteGoal(id string) error {
	milestones, err := o.store.GetMilestonesForGoal(id)
	if err != nil {
		return err
	}
	for _, m := range milestones {
		if err := o.deleteMilestoneTree(m.ID); err != nil {
			return err
		}
	}
	if err := o.deleteDependents(storage.EntityGoal, id); err != nil {
		return err
	}
	if err := o.goals.Delete(id); err != nil {
		return err
	}
	logger.Info("cascade deleted goal", "id", id, "milestones", len(milestones))
	return nil
}

// DeleteMilestone removes a milestone, its tasks and their dependents.
func (o *Orchestrator) DeleteMilestone(id string) error {
	if err := o.deleteMilestoneChildren(id); err != nil {
		return err
	}
	return o.milestones.Delete(id)
}

// DeleteTask removes a task and the notifications and calendar events that
// reference it.
func (o *Orchestrator) DeleteTask(id string) error {
	if err := o.deleteDependents(storage.EntityTask, id); err != nil {
		return err
	}
	return o.tasks.Delete(id)
}

// deleteMilestoneTree is DeleteMilestone with the milestone itself removed
// through the bulk path, used inside a goal cascade.
func (o *Orchestrator) deleteMilestoneTree(id string) error {
	if err := o.deleteMilestoneChildren(id); err != nil {
		return err
	}
	return o.milestones.DeleteBulk([]string{id})
}

func (o *Orchestrator) deleteMilestoneChildren(id string) error {
	tasks, err := o.store.GetTasksForMilestone(id)
	if err != nil {
		return err
	}
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if err := o.deleteDependents(storage.EntityTask, t.ID); err != nil {
			return err
		}
		taskIDs = append(taskIDs, t.ID)
	}
	if err := o.tasks.DeleteBulk(taskIDs); err != nil {
		return err
	}
	return o.deleteDependents(storage.EntityMilestone, id)
}

// deleteDependents removes the notifications and calendar events referencing
// one entity. The two sets have no ordering between them.
func (o *Orchestrator) deleteDependents(target storage.EntityType, id string) error {
	notifications, err := o.store.GetNotificationsForTarget(target, id)
	if err != nil {
		return err
	}
	notificationIDs := make([]string, 0, len(notifications))
	for _, n := range notifications {
		notificationIDs = append(notificationIDs, n.ID)
	}
	if err := o.notifications.DeleteBulk(notificationIDs); err != nil {
		return err
	}

	events, err := o.store.GetEventsForTarget(target, id)
	if err != nil {
		return err
	}
	eventIDs := make([]string, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
	}
	return o.events.DeleteBulk(eventIDs)
}
