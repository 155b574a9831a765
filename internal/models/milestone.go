package models

import (
	"fmt"
	"time"
)

// Milestone is a weighted sub-objective of a Goal. Percentage is the weight
// this milestone contributes toward its goal's overall progress; the weights
// of a goal's milestones are expected to approximate 100 but this is not
// enforced (see progress.GoalProgress for how over/under-allocation behaves).
type Milestone struct {
	ID              string     `json:"id"`
	GoalID          string     `json:"goal_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Percentage      int        `json:"percentage"`
	Completed       bool       `json:"completed"`
	Status          GoalStatus `json:"status"`
	Priority        Priority   `json:"priority"`
	Deadline        string     `json:"deadline"` // YYYY-MM-DD format
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	DependsOn       []string   `json:"depends_on,omitempty"` // ordering hint, not enforced
	EstimatedHours  float64    `json:"estimated_hours,omitempty"`
	ActualHours     float64    `json:"actual_hours,omitempty"`
	CalendarEventID string     `json:"calendar_event_id,omitempty"`
	Reminders       []string   `json:"reminders,omitempty"` // RFC3339 timestamps
}

type MilestonePatch struct {
	ID              string      `json:"id"`
	GoalID          *string     `json:"goal_id,omitempty"`
	Title           *string     `json:"title,omitempty"`
	Description     *string     `json:"description,omitempty"`
	Percentage      *int        `json:"percentage,omitempty"`
	Completed       *bool       `json:"completed,omitempty"`
	Status          *GoalStatus `json:"status,omitempty"`
	Priority        *Priority   `json:"priority,omitempty"`
	Deadline        *string     `json:"deadline,omitempty"`
	DependsOn       *[]string   `json:"depends_on,omitempty"`
	EstimatedHours  *float64    `json:"estimated_hours,omitempty"`
	ActualHours     *float64    `json:"actual_hours,omitempty"`
	CalendarEventID *string     `json:"calendar_event_id,omitempty"`
	Reminders       *[]string   `json:"reminders,omitempty"`
}

func (m Milestone) Validate() error {
	if err := validateTitle(m.Title); err != nil {
		return err
	}
	if m.GoalID == "" {
		return fmt.Errorf("goal id is required")
	}
	if m.Percentage < 0 || m.Percentage > 100 {
		return fmt.Errorf("percentage must be between 0 and 100")
	}
	if !m.Status.Valid() {
		return fmt.Errorf("invalid status: %q", m.Status)
	}
	if !m.Priority.Valid() {
		return fmt.Errorf("invalid priority: %q", m.Priority)
	}
	if m.Deadline == "" {
		return fmt.Errorf("deadline is required")
	}
	if err := validateDate(m.Deadline); err != nil {
		return fmt.Errorf("invalid deadline: %w", err)
	}
	return nil
}

func (p MilestonePatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.GoalID != nil && *p.GoalID == "" {
		return fmt.Errorf("goal id cannot be cleared")
	}
	if p.Percentage != nil && (*p.Percentage < 0 || *p.Percentage > 100) {
		return fmt.Errorf("percentage must be between 0 and 100")
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("invalid status: %q", *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("invalid priority: %q", *p.Priority)
	}
	if p.Deadline != nil {
		if err := validateDate(*p.Deadline); err != nil {
			return fmt.Errorf("invalid deadline: %w", err)
		}
	}
	return nil
}
