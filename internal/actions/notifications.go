package actions

import (
	errs "github.com/kestrelapps/lodestar/internal/errors"
	"github.com/kestrelapps/lodestar/internal/logger"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/notify"
	"github.com/kestrelapps/lodestar/internal/storage"
)

type NotificationActions struct {
	store     storage.Provider
	scheduler notify.Scheduler
}

func NewNotificationActions(store storage.Provider, scheduler notify.Scheduler) *NotificationActions {
	return &NotificationActions{store: store, scheduler: scheduler}
}

// Create validates and persists a notification. When ScheduledFor is set the
// OS delivery is scheduled first so the stored record carries the scheduler's
// handle; a scheduler failure aborts before anything is persisted.
func (a *NotificationActions) Create(notification models.Notification) (models.Notification, error) {
	if err := notification.Validate(); err != nil {
		return models.Notification{}, validationErr("notification", err)
	}
	if notification.ID == "" {
		notification.ID = newID()
	}
	notification.CreatedAt = nowFunc()
	if notification.ScheduledFor != nil && notification.ScheduledID == "" {
		scheduledID, err := a.scheduler.Schedule(notification)
		if err != nil {
			return models.Notification{}, externalErr("scheduler", err)
		}
		notification.ScheduledID = scheduledID
	}
	if err := a.store.AddNotification(notification); err != nil {
		return models.Notification{}, storeErr("add notification", err)
	}
	logger.Info("created notification", "id", notification.ID, "type", notification.Type)
	return notification, nil
}

func (a *NotificationActions) Update(patch models.NotificationPatch) error {
	if patch.ID == "" {
		return &errs.MissingIDError{Entity: "notification"}
	}
	if err := patch.Validate(); err != nil {
		return validationErr("notification", err)
	}
	if err := a.store.UpdateNotification(patch); err != nil {
		return storeErr("update notification", err)
	}
	logger.Debug("updated notification", "id", patch.ID)
	return nil
}

// MarkRead marks a notification as read.
func (a *NotificationActions) MarkRead(id string) error {
	read := true
	return a.Update(models.NotificationPatch{ID: id, Read: &read})
}

// Delete removes a notification and cancels its pending OS delivery. A
// scheduler failure aborts the deletion.
func (a *NotificationActions) Delete(id string) error {
	if id == "" {
		return &errs.MissingIDError{Entity: "notification"}
	}
	notification, err := a.store.GetNotification(id)
	if err != nil {
		return storeErr("get notification", err)
	}
	if notification.ScheduledID != "" {
		if err := a.scheduler.Cancel(notification.ScheduledID); err != nil {
			return externalErr("scheduler", err)
		}
	}
	if err := a.store.DeleteNotification(id); err != nil {
		return storeErr("delete notification", err)
	}
	logger.Info("deleted notification", "id", id)
	return nil
}

// DeleteBulk removes a set of notifications as one atomic store batch.
// Pending OS deliveries are cancelled first, concurrently; cancellation
// failures are logged rather than raised.
func (a *NotificationActions) DeleteBulk(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var cleanups []cleanupFunc
	for _, id := range ids {
		notification, err := a.store.GetNotification(id)
		if err != nil {
			continue
		}
		if scheduledID := notification.ScheduledID; scheduledID != "" {
			cleanups = append(cleanups, func() error {
				return a.scheduler.Cancel(scheduledID)
			})
		}
	}
	runCleanups("notification", cleanups)
	return deleteBatch(a.store, storage.EntityNotification, ids)
}
