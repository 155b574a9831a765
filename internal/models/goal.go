package models

import (
	"fmt"
	"time"
)

type GoalStatus string

const (
	StatusNotStarted GoalStatus = "not_started"
	StatusInProgress GoalStatus = "in_progress"
	StatusCompleted  GoalStatus = "completed"
	StatusOnHold     GoalStatus = "on_hold"
	StatusCancelled  GoalStatus = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Goal is the top-level user objective. OverallProgress is derived from the
// goal's milestones and is only ever hand-set to 0 at creation time.
type Goal struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Status              GoalStatus `json:"status"`
	Priority            Priority   `json:"priority"`
	Category            string     `json:"category,omitempty"`
	Tags                []string   `json:"tags"`
	StartDate           string     `json:"start_date"`      // YYYY-MM-DD format
	TargetEndDate       string     `json:"target_end_date"` // YYYY-MM-DD format
	ActualEndDate       string     `json:"actual_end_date,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
	OverallProgress     int        `json:"overall_progress"`
	Owner               string     `json:"owner"`
	Budget              float64    `json:"budget,omitempty"`
	EstimatedTotalHours float64    `json:"estimated_total_hours,omitempty"`
	ActualTotalHours    float64    `json:"actual_total_hours,omitempty"`
	CalendarID          string     `json:"calendar_id,omitempty"`
}

// GoalPatch is a sparse update for a Goal. Nil fields are left untouched by the
// store's merge semantics.
type GoalPatch struct {
	ID                  string      `json:"id"`
	Title               *string     `json:"title,omitempty"`
	Description         *string     `json:"description,omitempty"`
	Status              *GoalStatus `json:"status,omitempty"`
	Priority            *Priority   `json:"priority,omitempty"`
	Category            *string     `json:"category,omitempty"`
	Tags                *[]string   `json:"tags,omitempty"`
	StartDate           *string     `json:"start_date,omitempty"`
	TargetEndDate       *string     `json:"target_end_date,omitempty"`
	ActualEndDate       *string     `json:"actual_end_date,omitempty"`
	OverallProgress     *int        `json:"overall_progress,omitempty"`
	Budget              *float64    `json:"budget,omitempty"`
	EstimatedTotalHours *float64    `json:"estimated_total_hours,omitempty"`
	ActualTotalHours    *float64    `json:"actual_total_hours,omitempty"`
	CalendarID          *string     `json:"calendar_id,omitempty"`
}

func (s GoalStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Validate checks the full goal schema. It does not check the derived
// OverallProgress against the goal's milestones; that value is recomputed on
// read and never trusted from input.
func (g Goal) Validate() error {
	if err := validateTitle(g.Title); err != nil {
		return err
	}
	if !g.Status.Valid() {
		return fmt.Errorf("invalid status: %q", g.Status)
	}
	if !g.Priority.Valid() {
		return fmt.Errorf("invalid priority: %q", g.Priority)
	}
	if g.StartDate == "" {
		return fmt.Errorf("start date is required")
	}
	if err := validateDate(g.StartDate); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	if g.TargetEndDate == "" {
		return fmt.Errorf("target end date is required")
	}
	if err := validateDate(g.TargetEndDate); err != nil {
		return fmt.Errorf("invalid target end date: %w", err)
	}
	if g.ActualEndDate != "" {
		if err := validateDate(g.ActualEndDate); err != nil {
			return fmt.Errorf("invalid actual end date: %w", err)
		}
	}
	if g.OverallProgress < 0 || g.OverallProgress > 100 {
		return fmt.Errorf("overall progress must be between 0 and 100")
	}
	if g.Owner == "" {
		return fmt.Errorf("owner is required")
	}
	if g.Budget < 0 {
		return fmt.Errorf("budget cannot be negative")
	}
	return nil
}

// Validate checks the set fields of a partial goal update. The id requirement
// is enforced by the action layer, not here.
func (p GoalPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("invalid status: %q", *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("invalid priority: %q", *p.Priority)
	}
	if p.StartDate != nil {
		if err := validateDate(*p.StartDate); err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
	}
	if p.TargetEndDate != nil {
		if err := validateDate(*p.TargetEndDate); err != nil {
			return fmt.Errorf("invalid target end date: %w", err)
		}
	}
	if p.ActualEndDate != nil && *p.ActualEndDate != "" {
		if err := validateDate(*p.ActualEndDate); err != nil {
			return fmt.Errorf("invalid actual end date: %w", err)
		}
	}
	if p.OverallProgress != nil && (*p.OverallProgress < 0 || *p.OverallProgress > 100) {
		return fmt.Errorf("overall progress must be between 0 and 100")
	}
	if p.Budget != nil && *p.Budget < 0 {
		return fmt.Errorf("budget cannot be negative")
	}
	return nil
}
