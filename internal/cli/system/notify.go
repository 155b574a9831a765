package system

import (
	"fmt"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/storage"
	"github.com/kestrelapps/lodestar/internal/utils"
)

// NotifyCmd scans for approaching deadlines and creates notifications for
// them. It is meant to run from a cron job or the scheduler bridge, so it is
// hidden from the help output.
type NotifyCmd struct {
	Lead   int  `help:"Days of lead time before a deadline counts as due." default:"3"`
	DryRun bool `help:"Print notifications to stdout instead of creating them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	milestones, err := ctx.Store.GetAllMilestones()
	if err != nil {
		return err
	}
	for _, m := range milestones {
		if m.Completed {
			continue
		}
		days, err := utils.DaysUntil(m.Deadline)
		if err != nil || days > c.Lead {
			continue
		}
		if already, err := c.hasNotification(ctx, storage.EntityMilestone, m.ID); err != nil || already {
			continue
		}
		msg := fmt.Sprintf("%q is %s", m.Title, utils.FormatDeadline(m.Deadline))
		if c.DryRun {
			fmt.Println("[DryRun] " + msg)
			continue
		}
		_, err = ctx.Notifications.Create(models.Notification{
			UserID:      ctx.Owner,
			Type:        models.NotificationMilestoneDue,
			Title:       "Milestone deadline",
			Message:     msg,
			MilestoneID: m.ID,
		})
		if err != nil {
			fmt.Printf("Failed to create notification: %v\n", err)
		}
	}

	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return err
	}
	for _, g := range goals {
		if g.Status == models.StatusCompleted || g.Status == models.StatusCancelled {
			continue
		}
		days, err := utils.DaysUntil(g.TargetEndDate)
		if err != nil || days >= 0 {
			continue
		}
		if already, err := c.hasNotification(ctx, storage.EntityGoal, g.ID); err != nil || already {
			continue
		}
		msg := fmt.Sprintf("%q is %s", g.Title, utils.FormatDeadline(g.TargetEndDate))
		if c.DryRun {
			fmt.Println("[DryRun] " + msg)
			continue
		}
		_, err = ctx.Notifications.Create(models.Notification{
			UserID:  ctx.Owner,
			Type:    models.NotificationGoalOverdue,
			Title:   "Goal overdue",
			Message: msg,
			GoalID:  g.ID,
		})
		if err != nil {
			fmt.Printf("Failed to create notification: %v\n", err)
		}
	}

	return nil
}

func (c *NotifyCmd) hasNotification(ctx *cli.Context, target storage.EntityType, id string) (bool, error) {
	existing, err := ctx.Store.GetNotificationsForTarget(target, id)
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}
