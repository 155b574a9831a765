package models

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationMilestoneDue   NotificationType = "milestone_due"
	NotificationGoalOverdue    NotificationType = "goal_overdue"
	NotificationTaskAssigned   NotificationType = "task_assigned"
	NotificationProgressUpdate NotificationType = "progress_update"
)

// Notification is a user-facing alert. At most one of GoalID, MilestoneID and
// TaskID is set, identifying the entity the notification refers to.
// ScheduledFor, when set, drives OS-level scheduling; ScheduledID is the handle
// the OS scheduler issued and is needed to cancel the scheduled delivery.
type Notification struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	Type         NotificationType `json:"type"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	GoalID       string           `json:"goal_id,omitempty"`
	MilestoneID  string           `json:"milestone_id,omitempty"`
	TaskID       string           `json:"task_id,omitempty"`
	Read         bool             `json:"read"`
	CreatedAt    time.Time        `json:"created_at"`
	ScheduledFor *time.Time       `json:"scheduled_for,omitempty"`
	ScheduledID  string           `json:"scheduled_id,omitempty"`
}

type NotificationPatch struct {
	ID           string            `json:"id"`
	Type         *NotificationType `json:"type,omitempty"`
	Title        *string           `json:"title,omitempty"`
	Message      *string           `json:"message,omitempty"`
	Read         *bool             `json:"read,omitempty"`
	ScheduledFor *time.Time        `json:"scheduled_for,omitempty"`
	ScheduledID  *string           `json:"scheduled_id,omitempty"`
}

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationMilestoneDue, NotificationGoalOverdue, NotificationTaskAssigned, NotificationProgressUpdate:
		return true
	}
	return false
}

func (n Notification) Validate() error {
	if n.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if !n.Type.Valid() {
		return fmt.Errorf("invalid notification type: %q", n.Type)
	}
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	if n.Message == "" {
		return fmt.Errorf("message is required")
	}
	refs := 0
	for _, id := range []string{n.GoalID, n.MilestoneID, n.TaskID} {
		if id != "" {
			refs++
		}
	}
	if refs > 1 {
		return fmt.Errorf("notification may reference at most one of goal, milestone, task")
	}
	return nil
}

func (p NotificationPatch) Validate() error {
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("invalid notification type: %q", *p.Type)
	}
	if p.Title != nil && *p.Title == "" {
		return fmt.Errorf("title cannot be cleared")
	}
	if p.Message != nil && *p.Message == "" {
		return fmt.Errorf("message cannot be cleared")
	}
	return nil
}
