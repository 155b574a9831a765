// Package calendar mirrors goal and milestone deadlines into the user's
// system calendar through the calendar bridge companion app.
package calendar

import (
	"time"

	"github.com/kestrelapps/lodestar/internal/bridge"
	"github.com/kestrelapps/lodestar/internal/constants"
	"github.com/kestrelapps/lodestar/internal/models"
)

// Service manages externally stored calendar events. Event IDs are the
// identifiers assigned by the external calendar, not lodestar record IDs.
type Service interface {
	CreateEvent(event models.CalendarEvent) (string, error)
	UpdateEvent(eventID string, event models.CalendarEvent) error
	DeleteEvent(eventID string) error
}

type eventPayload struct {
	CalendarID string `json:"calendar_id"`
	Title      string `json:"title"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	AllDay     bool   `json:"all_day"`
	EventType  string `json:"event_type"`
}

type eventResponse struct {
	EventID string `json:"event_id"`
}

// BridgeService talks to the calendar bridge over its loopback webhook. Each
// call re-reads the lockfile so a restarted bridge is picked up without
// re-creating the service.
type BridgeService struct{}

func NewBridgeService() *BridgeService {
	return &BridgeService{}
}

func (s *BridgeService) connect() (*bridge.Endpoint, error) {
	return bridge.Connect(constants.CalendarLockfileName, constants.CalendarBridgeProcess)
}

func payloadFor(event models.CalendarEvent) eventPayload {
	calendarID := event.CalendarID
	if calendarID == "" {
		calendarID = constants.DefaultCalendarID
	}
	return eventPayload{
		CalendarID: calendarID,
		Title:      event.Title,
		StartDate:  event.StartDate.UTC().Format(time.RFC3339),
		EndDate:    event.EndDate.UTC().Format(time.RFC3339),
		AllDay:     event.AllDay,
		EventType:  string(event.EventType),
	}
}

func (s *BridgeService) CreateEvent(event models.CalendarEvent) (string, error) {
	ep, err := s.connect()
	if err != nil {
		return "", err
	}
	var res eventResponse
	if err := ep.Post("/calendar/events", payloadFor(event), &res); err != nil {
		return "", err
	}
	return res.EventID, nil
}

func (s *BridgeService) UpdateEvent(eventID string, event models.CalendarEvent) error {
	ep, err := s.connect()
	if err != nil {
		return err
	}
	payload := struct {
		EventID string `json:"event_id"`
		eventPayload
	}{EventID: eventID, eventPayload: payloadFor(event)}
	return ep.Post("/calendar/events/update", payload, nil)
}

func (s *BridgeService) DeleteEvent(eventID string) error {
	ep, err := s.connect()
	if err != nil {
		return err
	}
	payload := struct {
		EventID string `json:"event_id"`
	}{EventID: eventID}
	return ep.Post("/calendar/events/delete", payload, nil)
}

// Disabled is a no-op Service used when calendar sync is turned off.
type Disabled struct{}

func (Disabled) CreateEvent(models.CalendarEvent) (string, error) { return "", nil }
func (Disabled) UpdateEvent(string, models.CalendarEvent) error { return nil }
func (Disabled) DeleteEvent(string) error { return nil }

var (
	_ Service = (*BridgeService)(nil)
	_ Service = Disabled{}
)
