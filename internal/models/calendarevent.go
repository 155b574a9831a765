package models

import (
	"fmt"
	"time"
)

type EventType string

const (
	EventGoalDeadline      EventType = "goal_deadline"
	EventMilestoneDeadline EventType = "milestone_deadline"
	EventTaskDue           EventType = "task_due"
	EventWorkSession       EventType = "work_session"
)

// CalendarEvent mirrors an event in an external calendar. EventID is the id
// issued by the external calendar system, which is the key for updating or
// removing the event there.
type CalendarEvent struct {
	ID          string     `json:"id"`
	GoalID      string     `json:"goal_id,omitempty"`
	MilestoneID string     `json:"milestone_id,omitempty"`
	TaskID      string     `json:"task_id,omitempty"`
	EventType   EventType  `json:"event_type"`
	CalendarID  string     `json:"calendar_id"`
	EventID     string     `json:"event_id"`
	Title       string     `json:"title"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	AllDay      bool       `json:"all_day"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type CalendarEventPatch struct {
	ID        string     `json:"id"`
	EventType *EventType `json:"event_type,omitempty"`
	Title     *string    `json:"title,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	AllDay    *bool      `json:"all_day,omitempty"`
}

func (t EventType) Valid() bool {
	switch t {
	case EventGoalDeadline, EventMilestoneDeadline, EventTaskDue, EventWorkSession:
		return true
	}
	return false
}

func (e CalendarEvent) Validate() error {
	if !e.EventType.Valid() {
		return fmt.Errorf("invalid event type: %q", e.EventType)
	}
	if e.CalendarID == "" {
		return fmt.Errorf("calendar id is required")
	}
	if e.Title == "" {
		return fmt.Errorf("title is required")
	}
	if e.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if e.EndDate.IsZero() {
		return fmt.Errorf("end date is required")
	}
	if e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("end date cannot be before start date")
	}
	refs := 0
	for _, id := range []string{e.GoalID, e.MilestoneID, e.TaskID} {
		if id != "" {
			refs++
		}
	}
	if refs > 1 {
		return fmt.Errorf("calendar event may reference at most one of goal, milestone, task")
	}
	return nil
}

func (p CalendarEventPatch) Validate() error {
	if p.EventType != nil && !p.EventType.Valid() {
		return fmt.Errorf("invalid event type: %q", *p.EventType)
	}
	if p.Title != nil && *p.Title == "" {
		return fmt.Errorf("title cannot be cleared")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return fmt.Errorf("end date cannot be before start date")
	}
	return nil
}
