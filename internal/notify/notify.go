// Package notify schedules and cancels OS-level notifications through the
// scheduler bridge companion app.
package notify

import (
	"time"

	"github.com/kestrelapps/lodestar/internal/bridge"
	"github.com/kestrelapps/lodestar/internal/constants"
	"github.com/kestrelapps/lodestar/internal/models"
)

// Scheduler manages pending OS notification deliveries. Schedule returns the
// handle issued by the OS scheduler, which Cancel needs to revoke the
// delivery.
type Scheduler interface {
	Schedule(notification models.Notification) (string, error)
	Cancel(scheduledID string) error
	CancelAll() error
}

type schedulePayload struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	Type         string `json:"type"`
	ScheduledFor string `json:"scheduled_for"`
	DurationMs   int    `json:"duration_ms"`
}

type scheduleResponse struct {
	ScheduledID string `json:"scheduled_id"`
}

// BridgeScheduler talks to the scheduler bridge over its loopback webhook.
type BridgeScheduler struct{}

func NewBridgeScheduler() *BridgeScheduler {
	return &BridgeScheduler{}
}

func (s *BridgeScheduler) connect() (*bridge.Endpoint, error) {
	return bridge.Connect(constants.SchedulerLockfileName, constants.SchedulerBridgeProcess)
}

func (s *BridgeScheduler) Schedule(notification models.Notification) (string, error) {
	ep, err := s.connect()
	if err != nil {
		return "", err
	}
	payload := schedulePayload{
		Title:      notification.Title,
		Message:    notification.Message,
		Type:       string(notification.Type),
		DurationMs: constants.NotificationDurationMs,
	}
	if notification.ScheduledFor != nil {
		payload.ScheduledFor = notification.ScheduledFor.UTC().Format(time.RFC3339)
	}
	var res scheduleResponse
	if err := ep.Post("/notifications/schedule", payload, &res); err != nil {
		return "", err
	}
	return res.ScheduledID, nil
}

func (s *BridgeScheduler) Cancel(scheduledID string) error {
	ep, err := s.connect()
	if err != nil {
		return err
	}
	payload := struct {
		ScheduledID string `json:"scheduled_id"`
	}{ScheduledID: scheduledID}
	return ep.Post("/notifications/cancel", payload, nil)
}

func (s *BridgeScheduler) CancelAll() error {
	ep, err := s.connect()
	if err != nil {
		return err
	}
	return ep.Post("/notifications/cancel-all", struct{}{}, nil)
}

// Disabled is a no-op Scheduler used when OS notifications are turned off.
type Disabled struct{}

func (Disabled) Schedule(models.Notification) (string, error) { return "", nil }
func (Disabled) Cancel(string) error { return nil }
func (Disabled) CancelAll() error { return nil }

var (
	_ Scheduler = (*BridgeScheduler)(nil)
	_ Scheduler = Disabled{}
)
