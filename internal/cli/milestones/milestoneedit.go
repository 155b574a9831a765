package milestones

import (
	"fmt"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/outcome"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type MilestoneEditCmd struct {
	ID          string  `arg:"" help:"Milestone ID to edit."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
	Weight      *int    `help:"New weight toward goal progress (0-100)."`
	Status      *string `help:"New status (not_started|in_progress|completed|on_hold|cancelled)."`
	Priority    *string `help:"New priority (low|medium|high)."`
	Deadline    *string `help:"New deadline (YYYY-MM-DD)."`
}

func (c *MilestoneEditCmd) Validate() error {
	if c.Deadline != nil && !utils.ValidateDateFormat(*c.Deadline) {
		return fmt.Errorf("invalid deadline (expected YYYY-MM-DD): %s", *c.Deadline)
	}
	return nil
}

func (c *MilestoneEditCmd) Run(ctx *cli.Context) error {
	patch := models.MilestonePatch{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Percentage:  c.Weight,
		Deadline:    c.Deadline,
	}
	if c.Status != nil {
		status := models.GoalStatus(*c.Status)
		patch.Status = &status
	}
	if c.Priority != nil {
		priority := models.Priority(*c.Priority)
		patch.Priority = &priority
	}

	err := ctx.Milestones.Update(patch)
	ctx.Reporter.Report(outcome.ForUpdate("milestone", c.ID, err)...)
	return err
}

type MilestoneCompleteCmd struct {
	ID   string `arg:"" help:"Milestone ID to complete."`
	Undo bool   `help:"Mark as not completed instead."`
}

func (c *MilestoneCompleteCmd) Run(ctx *cli.Context) error {
	completed := !c.Undo
	patch := models.MilestonePatch{ID: c.ID, Completed: &completed}
	if completed {
		status := models.StatusCompleted
		patch.Status = &status
	}
	err := ctx.Milestones.Update(patch)
	ctx.Reporter.Report(outcome.ForUpdate("milestone", c.ID, err)...)
	return err
}
