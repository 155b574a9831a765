package notifications

import (
	"fmt"
	"sort"
	"time"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/outcome"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type NotificationAddCmd struct {
	Title     string `arg:"" help:"Notification title."`
	Message   string `arg:"" help:"Notification message."`
	Type      string `short:"t" help:"Type (milestone_due|goal_overdue|task_assigned|progress_update)." default:"progress_update"`
	Goal      string `help:"Goal ID this notification refers to."`
	Milestone string `help:"Milestone ID this notification refers to."`
	Task      string `help:"Task ID this notification refers to."`
	At        string `help:"Schedule OS delivery at this time (RFC3339)."`
}

func (c *NotificationAddCmd) Validate() error {
	if c.At != "" {
		if _, err := time.Parse(time.RFC3339, c.At); err != nil {
			return fmt.Errorf("invalid schedule time (expected RFC3339): %s", c.At)
		}
	}
	return nil
}

func (c *NotificationAddCmd) Run(ctx *cli.Context) error {
	n := models.Notification{
		UserID:      ctx.Owner,
		Type:        models.NotificationType(c.Type),
		Title:       c.Title,
		Message:     c.Message,
		GoalID:      c.Goal,
		MilestoneID: c.Milestone,
		TaskID:      c.Task,
	}
	if c.At != "" {
		at, err := time.Parse(time.RFC3339, c.At)
		if err != nil {
			return err
		}
		n.ScheduledFor = &at
	}

	created, err := ctx.Notifications.Create(n)
	ctx.Reporter.Report(outcome.ForCreate("notification", created.Title, err)...)
	if err != nil {
		return err
	}
	fmt.Printf("ID: %s\n", created.ID)
	return nil
}

type NotificationListCmd struct {
	Unread bool `short:"u" help:"Only unread notifications."`
}

func (c *NotificationListCmd) Run(ctx *cli.Context) error {
	notifications, err := ctx.Store.GetAllNotifications(ctx.Owner)
	if err != nil {
		return err
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	shown := 0
	for _, n := range notifications {
		if c.Unread && n.Read {
			continue
		}
		marker := "•"
		if n.Read {
			marker = " "
		}
		fmt.Printf("%-36s  %s %-16s  %s\n", n.ID, marker, n.Type, utils.Truncate(n.Title, 48))
		shown++
	}
	if shown == 0 {
		fmt.Println("No notifications.")
	}
	return nil
}

type NotificationReadCmd struct {
	ID string `arg:"" help:"Notification ID to mark read."`
}

func (c *NotificationReadCmd) Run(ctx *cli.Context) error {
	err := ctx.Notifications.MarkRead(c.ID)
	ctx.Reporter.Report(outcome.ForUpdate("notification", c.ID, err)...)
	return err
}

type NotificationDeleteCmd struct {
	ID string `arg:"" help:"Notification ID to delete."`
}

func (c *NotificationDeleteCmd) Run(ctx *cli.Context) error {
	err := ctx.Notifications.Delete(c.ID)
	ctx.Reporter.Report(outcome.ForDelete("notification", c.ID, err)...)
	return err
}

type NotificationClearCmd struct{}

// Run removes every notification for the local user in one batch.
func (c *NotificationClearCmd) Run(ctx *cli.Context) error {
	notifications, err := ctx.Store.GetAllNotifications(ctx.Owner)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	err = ctx.Notifications.DeleteBulk(ids)
	ctx.Reporter.Report(outcome.ForBulkDelete("notification", len(ids), err)...)
	return err
}
