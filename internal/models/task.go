package models

import (
	"fmt"
	"time"
)

// Task is an atomic unit of work. MilestoneID is empty for standalone tasks
// that belong to no milestone.
type Task struct {
	ID             string     `json:"id"`
	MilestoneID    string     `json:"milestone_id,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Completed      bool       `json:"completed"`
	Priority       Priority   `json:"priority"`
	DueDate        string     `json:"due_date,omitempty"` // YYYY-MM-DD format
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
	EstimatedHours float64    `json:"estimated_hours,omitempty"`
	ActualHours    float64    `json:"actual_hours,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
}

type TaskPatch struct {
	ID             string    `json:"id"`
	MilestoneID    *string   `json:"milestone_id,omitempty"`
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Completed      *bool     `json:"completed,omitempty"`
	Priority       *Priority `json:"priority,omitempty"`
	DueDate        *string   `json:"due_date,omitempty"`
	EstimatedHours *float64  `json:"estimated_hours,omitempty"`
	ActualHours    *float64  `json:"actual_hours,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
}

func (t Task) Validate() error {
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("invalid priority: %q", t.Priority)
	}
	if t.DueDate != "" {
		if err := validateDate(t.DueDate); err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
	}
	return nil
}

func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("invalid priority: %q", *p.Priority)
	}
	if p.DueDate != nil && *p.DueDate != "" {
		if err := validateDate(*p.DueDate); err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
	}
	return nil
}
