package milestones

import (
	"fmt"
	"strings"
	"time"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/outcome"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type MilestoneAddCmd struct {
	Goal        string  `arg:"" help:"Goal ID this milestone belongs to."`
	Title       string  `arg:"" help:"Milestone title."`
	Weight      int     `short:"w" help:"Weight toward goal progress (0-100)." required:""`
	Deadline    string  `short:"e" help:"Deadline (YYYY-MM-DD)." required:""`
	Description string  `short:"d" help:"Longer description."`
	Priority    string  `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	DependsOn   string  `help:"Comma-separated milestone IDs this one depends on."`
	Reminders   string  `help:"Comma-separated reminder timestamps (RFC3339)."`
	Hours       float64 `help:"Estimated hours."`
	Sync        bool    `help:"Mirror the deadline into the external calendar."`
}

func (c *MilestoneAddCmd) Validate() error {
	if !utils.ValidateDateFormat(c.Deadline) {
		return fmt.Errorf("invalid deadline (expected YYYY-MM-DD): %s", c.Deadline)
	}
	if c.Reminders != "" {
		for _, r := range strings.Split(c.Reminders, ",") {
			if _, err := time.Parse(time.RFC3339, strings.TrimSpace(r)); err != nil {
				return fmt.Errorf("invalid reminder timestamp (expected RFC3339): %s", r)
			}
		}
	}
	return nil
}

func (c *MilestoneAddCmd) Run(ctx *cli.Context) error {
	// The parent must exist before the child references it.
	if _, err := ctx.Store.GetGoal(c.Goal); err != nil {
		return fmt.Errorf("failed to find goal with ID %s: %w", c.Goal, err)
	}

	splitList := func(s string) []string {
		if s == "" {
			return nil
		}
		var out []string
		for _, part := range strings.Split(s, ",") {
			out = append(out, strings.TrimSpace(part))
		}
		return out
	}

	milestone, err := ctx.Milestones.Create(models.Milestone{
		GoalID:         c.Goal,
		Title:          c.Title,
		Description:    c.Description,
		Percentage:     c.Weight,
		Priority:       models.Priority(c.Priority),
		Deadline:       c.Deadline,
		DependsOn:      splitList(c.DependsOn),
		Reminders:      splitList(c.Reminders),
		EstimatedHours: c.Hours,
	})
	ctx.Reporter.Report(outcome.ForCreate("milestone", milestone.Title, err)...)
	if err != nil {
		return err
	}

	if c.Sync {
		if err := c.syncCalendar(ctx, milestone); err != nil {
			return err
		}
	}
	fmt.Printf("ID: %s\n", milestone.ID)
	return nil
}

func (c *MilestoneAddCmd) syncCalendar(ctx *cli.Context, milestone models.Milestone) error {
	deadline, err := utils.ParseDate(milestone.Deadline)
	if err != nil {
		return err
	}
	event, err := ctx.Events.Create(models.CalendarEvent{
		MilestoneID: milestone.ID,
		EventType:   models.EventMilestoneDeadline,
		Title:       milestone.Title,
		StartDate:   deadline,
		EndDate:     deadline.Add(24 * time.Hour),
		AllDay:      true,
	})
	if err != nil {
		return err
	}
	return ctx.Milestones.Update(models.MilestonePatch{
		ID:              milestone.ID,
		CalendarEventID: &event.EventID,
	})
}
