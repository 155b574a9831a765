package actions

import (
	"github.com/kestrelapps/lodestar/internal/calendar"
	errs "github.com/kestrelapps/lodestar/internal/errors"
	"github.com/kestrelapps/lodestar/internal/logger"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/storage"
)

type MilestoneActions struct {
	store    storage.Provider
	calendar calendar.Service
}

func NewMilestoneActions(store storage.Provider, cal calendar.Service) *MilestoneActions {
	return &MilestoneActions{store: store, calendar: cal}
}

func (a *MilestoneActions) Create(milestone models.Milestone) (models.Milestone, error) {
	if milestone.Status == "" {
		milestone.Status = models.StatusNotStarted
	}
	if milestone.Priority == "" {
		milestone.Priority = models.PriorityMedium
	}
	if err := milestone.Validate(); err != nil {
		return models.Milestone{}, validationErr("milestone", err)
	}
	if milestone.ID == "" {
		milestone.ID = newID()
	}
	milestone.CreatedAt = nowFunc()
	milestone.UpdatedAt = nil
	if err := a.store.AddMilestone(milestone); err != nil {
		return models.Milestone{}, storeErr("add milestone", err)
	}
	logger.Info("created milestone", "id", milestone.ID, "goal", milestone.GoalID)
	return milestone, nil
}

func (a *MilestoneActions) Update(patch models.MilestonePatch) error {
	if patch.ID == "" {
		return &errs.MissingIDError{Entity: "milestone"}
	}
	if err := patch.Validate(); err != nil {
		return validationErr("milestone", err)
	}
	if err := a.store.UpdateMilestone(patch); err != nil {
		return storeErr("update milestone", err)
	}
	logger.Debug("updated milestone", "id", patch.ID)
	return nil
}

// Delete removes a milestone and its deadline event in the external calendar.
// A calendar failure aborts the deletion so the milestone is not orphaned
// from an event that still exists.
func (a *MilestoneActions) Delete(id string) error {
	if id == "" {
		return &errs.MissingIDError{Entity: "milestone"}
	}
	milestone, err := a.store.GetMilestone(id)
	if err != nil {
		return storeErr("get milestone", err)
	}
	if milestone.CalendarEventID != "" {
		if err := a.calendar.DeleteEvent(milestone.CalendarEventID); err != nil {
			return externalErr("calendar", err)
		}
	}
	if err := a.store.DeleteMilestone(id); err != nil {
		return storeErr("delete milestone", err)
	}
	logger.Info("deleted milestone", "id", id)
	return nil
}

// DeleteBulk removes a set of milestones as one atomic store batch. External
// calendar cleanup runs first, concurrently, and failures there are logged
// rather than raised.
func (a *MilestoneActions) DeleteBulk(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var cleanups []cleanupFunc
	for _, id := range ids {
		milestone, err := a.store.GetMilestone(id)
		if err != nil {
			continue
		}
		if eventID := milestone.CalendarEventID; eventID != "" {
			cleanups = append(cleanups, func() error {
				return a.calendar.DeleteEvent(eventID)
			})
		}
	}
	runCleanups("milestone", cleanups)
	return deleteBatch(a.store, storage.EntityMilestone, ids)
}
