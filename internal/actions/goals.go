package actions

import (
	errs "github.com/kestrelapps/lodestar/internal/errors"
	"github.com/kestrelapps/lodestar/internal/logger"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/progress"
	"github.com/kestrelapps/lodestar/internal/storage"
)

type GoalActions struct {
	store storage.Provider
}

func NewGoalActions(store storage.Provider) *GoalActions {
	return &GoalActions{store: store}
}

// Create validates and persists a new goal. OverallProgress is forced to zero
// here; it is a derived value recomputed on read.
func (a *GoalActions) Create(goal models.Goal) (models.Goal, error) {
	if goal.Status == "" {
		goal.Status = models.StatusNotStarted
	}
	if goal.Priority == "" {
		goal.Priority = models.PriorityMedium
	}
	goal.OverallProgress = 0
	if err := goal.Validate(); err != nil {
		return models.Goal{}, validationErr("goal", err)
	}
	if goal.ID == "" {
		goal.ID = newID()
	}
	goal.CreatedAt = nowFunc()
	goal.UpdatedAt = nil
	if err := a.store.AddGoal(goal); err != nil {
		return models.Goal{}, storeErr("add goal", err)
	}
	logger.Info("created goal", "id", goal.ID, "title", goal.Title)
	return goal, nil
}

// Get fetches a goal and recomputes its overall progress from the goal's
// milestones and their tasks.
func (a *GoalActions) Get(id string) (models.Goal, error) {
	if id == "" {
		return models.Goal{}, &errs.MissingIDError{Entity: "goal"}
	}
	goal, err := a.store.GetGoal(id)
	if err != nil {
		return models.Goal{}, storeErr("get goal", err)
	}
	milestones, err := a.store.GetMilestonesForGoal(id)
	if err != nil {
		return models.Goal{}, storeErr("get milestones", err)
	}
	tasks, err := a.store.GetAllTasks()
	if err != nil {
		return models.Goal{}, storeErr("get tasks", err)
	}
	goal.OverallProgress = progress.ForGoal(milestones, tasks, id)
	return goal, nil
}

// GetAll fetches every goal with recomputed progress.
func (a *GoalActions) GetAll() ([]models.Goal, error) {
	goals, err := a.store.GetAllGoals()
	if err != nil {
		return nil, storeErr("get goals", err)
	}
	milestones, err := a.store.GetAllMilestones()
	if err != nil {
		return nil, storeErr("get milestones", err)
	}
	tasks, err := a.store.GetAllTasks()
	if err != nil {
		return nil, storeErr("get tasks", err)
	}
	for i := range goals {
		goals[i].OverallProgress = progress.ForGoal(milestones, tasks, goals[i].ID)
	}
	return goals, nil
}

func (a *GoalActions) Update(patch models.GoalPatch) error {
	if patch.ID == "" {
		return &errs.MissingIDError{Entity: "goal"}
	}
	if err := patch.Validate(); err != nil {
		return validationErr("goal", err)
	}
	if err := a.store.UpdateGoal(patch); err != nil {
		return storeErr("update goal", err)
	}
	logger.Debug("updated goal", "id", patch.ID)
	return nil
}

// Delete removes the goal record only. Use cascade.Orchestrator to also
// remove the goal's milestones, tasks and their dependents.
func (a *GoalActions) Delete(id string) error {
	if id == "" {
		return &errs.MissingIDError{Entity: "goal"}
	}
	if err := a.store.DeleteGoal(id); err != nil {
		return storeErr("delete goal", err)
	}
	logger.Info("deleted goal", "id", id)
	return nil
}

// DeleteBulk removes a set of goal records as one atomic store batch. As with
// Delete, children are the cascade orchestrator's concern.
func (a *GoalActions) DeleteBulk(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return deleteBatch(a.store, storage.EntityGoal, ids)
}
