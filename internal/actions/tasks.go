package actions

import (
	errs "github.com/kestrelapps/lodestar/internal/errors"
	"github.com/kestrelapps/lodestar/internal/logger"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/storage"
)

type TaskActions struct {
	store storage.Provider
}

func NewTaskActions(store storage.Provider) *TaskActions {
	return &TaskActions{store: store}
}

func (a *TaskActions) Create(task models.Task) (models.Task, error) {
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, validationErr("task", err)
	}
	if task.ID == "" {
		task.ID = newID()
	}
	task.CreatedAt = nowFunc()
	task.UpdatedAt = nil
	if err := a.store.AddTask(task); err != nil {
		return models.Task{}, storeErr("add task", err)
	}
	logger.Info("created task", "id", task.ID, "milestone", task.MilestoneID)
	return task, nil
}

func (a *TaskActions) Update(patch models.TaskPatch) error {
	if patch.ID == "" {
		return &errs.MissingIDError{Entity: "task"}
	}
	if err := patch.Validate(); err != nil {
		return validationErr("task", err)
	}
	if err := a.store.UpdateTask(patch); err != nil {
		return storeErr("update task", err)
	}
	logger.Debug("updated task", "id", patch.ID)
	return nil
}

// Complete flips a task's completed flag. Progress values derived from the
// task pick the change up on the next read.
func (a *TaskActions) Complete(id string, completed bool) error {
	patch := models.TaskPatch{ID: id, Completed: &completed}
	return a.Update(patch)
}

func (a *TaskActions) Delete(id string) error {
	if id == "" {
		return &errs.MissingIDError{Entity: "task"}
	}
	if err := a.store.DeleteTask(id); err != nil {
		return storeErr("delete task", err)
	}
	logger.Info("deleted task", "id", id)
	return nil
}

// DeleteBulk removes a set of tasks as one atomic store batch. Tasks hold no
// external resources themselves; their calendar events and notifications are
// separate records handled by the cascade orchestrator.
func (a *TaskActions) DeleteBulk(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return deleteBatch(a.store, storage.EntityTask, ids)
}
