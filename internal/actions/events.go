package actions

import (
	"github.com/kestrelapps/lodestar/internal/calendar"
	"github.com/kestrelapps/lodestar/internal/constants"
	errs "github.com/kestrelapps/lodestar/internal/errors"
	"github.com/kestrelapps/lodestar/internal/logger"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/storage"
)

type EventActions struct {
	store    storage.Provider
	calendar calendar.Service
}

func NewEventActions(store storage.Provider, cal calendar.Service) *EventActions {
	return &EventActions{store: store, calendar: cal}
}

// Create mirrors the event into the external calendar first so the stored
// record carries the external event id. A calendar failure aborts before
// anything is persisted.
func (a *EventActions) Create(event models.CalendarEvent) (models.CalendarEvent, error) {
	if event.CalendarID == "" {
		event.CalendarID = constants.DefaultCalendarID
	}
	if err := event.Validate(); err != nil {
		return models.CalendarEvent{}, validationErr("calendar event", err)
	}
	if event.ID == "" {
		event.ID = newID()
	}
	event.CreatedAt = nowFunc()
	event.UpdatedAt = nil
	if event.EventID == "" {
		eventID, err := a.calendar.CreateEvent(event)
		if err != nil {
			return models.CalendarEvent{}, externalErr("calendar", err)
		}
		event.EventID = eventID
	}
	if err := a.store.AddCalendarEvent(event); err != nil {
		return models.CalendarEvent{}, storeErr("add calendar event", err)
	}
	logger.Info("created calendar event", "id", event.ID, "event_id", event.EventID)
	return event, nil
}

// Update applies the patch to the stored record, then pushes the merged state
// to the external calendar.
func (a *EventActions) Update(patch models.CalendarEventPatch) error {
	if patch.ID == "" {
		return &errs.MissingIDError{Entity: "calendar event"}
	}
	if err := patch.Validate(); err != nil {
		return validationErr("calendar event", err)
	}
	if err := a.store.UpdateCalendarEvent(patch); err != nil {
		return storeErr("update calendar event", err)
	}
	event, err := a.store.GetCalendarEvent(patch.ID)
	if err != nil {
		return storeErr("get calendar event", err)
	}
	if event.EventID != "" {
		if err := a.calendar.UpdateEvent(event.EventID, event); err != nil {
			return externalErr("calendar", err)
		}
	}
	logger.Debug("updated calendar event", "id", patch.ID)
	return nil
}

// Delete removes the record and the event in the external calendar. A
// calendar failure aborts the deletion.
func (a *EventActions) Delete(id string) error {
	if id == "" {
		return &errs.MissingIDError{Entity: "calendar event"}
	}
	event, err := a.store.GetCalendarEvent(id)
	if err != nil {
		return storeErr("get calendar event", err)
	}
	if event.EventID != "" {
		if err := a.calendar.DeleteEvent(event.EventID); err != nil {
			return externalErr("calendar", err)
		}
	}
	if err := a.store.DeleteCalendarEvent(id); err != nil {
		return storeErr("delete calendar event", err)
	}
	logger.Info("deleted calendar event", "id", id)
	return nil
}

// DeleteBulk removes a set of calendar event records as one atomic store
// batch. External calendar cleanup runs first, concurrently, and failures
// there are logged rather than raised.
func (a *EventActions) DeleteBulk(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var cleanups []cleanupFunc
	for _, id := range ids {
		event, err := a.store.GetCalendarEvent(id)
		if err != nil {
			continue
		}
		if eventID := event.EventID; eventID != "" {
			cleanups = append(cleanups, func() error {
				return a.calendar.DeleteEvent(eventID)
			})
		}
	}
	runCleanups("calendar event", cleanups)
	return deleteBatch(a.store, storage.EntityCalendarEvent, ids)
}
