// Package outcome maps action results to display events. The mapping
// functions are pure: an action's result (the returned error, or nil) goes
// in, a list of events to show the user comes out, and the error itself is
// untouched for the caller to handle.
package outcome

import (
	"errors"
	"fmt"

	"github.com/kestrelapps/lodestar/internal/constants"
	errs "github.com/kestrelapps/lodestar/internal/errors"
	"github.com/kestrelapps/lodestar/internal/models"
)

type EventType string

const (
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event is one user-facing result of an operation. NavigateTo, when set, is a
// route hint for interactive surfaces ("chat/<id>", "goal/<id>").
type Event struct {
	Type       EventType
	Title      string
	Message    string
	NavigateTo string
}

// errorEvent translates a taxonomy error into a display event. Every error
// surfaces its own message; the generic fallback is reserved for errors that
// carry no message at all.
func errorEvent(entity string, err error) Event {
	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		return Event{
			Type:    EventError,
			Title:   fmt.Sprintf("Invalid %s", verr.Entity),
			Message: verr.Detail.Error(),
		}
	}
	var merr *errs.MissingIDError
	if errors.As(err, &merr) {
		return Event{
			Type:    EventError,
			Title:   fmt.Sprintf("Missing %s id", merr.Entity),
			Message: err.Error(),
		}
	}
	var berr *errs.BulkDeleteError
	if errors.As(err, &berr) {
		return Event{
			Type:    EventError,
			Title:   "Bulk delete failed",
			Message: fmt.Sprintf("%d %s(s) could not be deleted", berr.Count, berr.Entity),
		}
	}
	var xerr *errs.ExternalResourceError
	if errors.As(err, &xerr) {
		return Event{
			Type:    EventError,
			Title:   fmt.Sprintf("%s unavailable", xerr.Resource),
			Message: err.Error(),
		}
	}
	var serr *errs.StoreError
	if errors.As(err, &serr) {
		return Event{
			Type:    EventError,
			Title:   fmt.Sprintf("Could not save %s", entity),
			Message: serr.Error(),
		}
	}
	msg := err.Error()
	if msg == "" {
		msg = constants.GenericFailureMessage
	}
	return Event{
		Type:    EventError,
		Title:   fmt.Sprintf("%s operation failed", entity),
		Message: msg,
	}
}

// ForCreate maps the result of a create action.
func ForCreate(entity, title string, err error) []Event {
	if err != nil {
		return []Event{errorEvent(entity, err)}
	}
	return []Event{{
		Type:    EventSuccess,
		Title:   fmt.Sprintf("Created %s", entity),
		Message: title,
	}}
}

// ForUpdate maps the result of an update action.
func ForUpdate(entity, id string, err error) []Event {
	if err != nil {
		return []Event{errorEvent(entity, err)}
	}
	return []Event{{
		Type:    EventSuccess,
		Title:   fmt.Sprintf("Updated %s", entity),
		Message: id,
	}}
}

// ForDelete maps the result of a delete or cascade delete.
func ForDelete(entity, id string, err error) []Event {
	if err != nil {
		return []Event{errorEvent(entity, err)}
	}
	return []Event{{
		Type:    EventSuccess,
		Title:   fmt.Sprintf("Deleted %s", entity),
		Message: id,
	}}
}

// ForBulkDelete maps the result of a bulk delete. A successful empty batch
// produces no events at all.
func ForBulkDelete(entity string, count int, err error) []Event {
	if err != nil {
		return []Event{errorEvent(entity, err)}
	}
	if count == 0 {
		return nil
	}
	return []Event{{
		Type:    EventSuccess,
		Title:   fmt.Sprintf("Deleted %d %s(s)", count, entity),
	}}
}

// ForChatCreated maps the result of creating a chat. Success carries a
// navigation hint to the new thread.
func ForChatCreated(chat models.Chat, err error) []Event {
	if err != nil {
		return []Event{errorEvent("chat", err)}
	}
	return []Event{{
		Type:       EventSuccess,
		Title:      "Chat created",
		Message:    chat.Title,
		NavigateTo: "chat/" + chat.ID,
	}}
}
