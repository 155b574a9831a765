package goals

import (
	"fmt"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/outcome"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type GoalEditCmd struct {
	ID          string  `arg:"" help:"Goal ID to edit."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
	Status      *string `help:"New status (not_started|in_progress|completed|on_hold|cancelled)."`
	Priority    *string `help:"New priority (low|medium|high)."`
	Category    *string `help:"New category."`
	Target      *string `help:"New target end date (YYYY-MM-DD)."`
	Done        *string `help:"Actual end date (YYYY-MM-DD)."`
}

func (c *GoalEditCmd) Validate() error {
	if c.Target != nil && !utils.ValidateDateFormat(*c.Target) {
		return fmt.Errorf("invalid target end date (expected YYYY-MM-DD): %s", *c.Target)
	}
	if c.Done != nil && !utils.ValidateDateFormat(*c.Done) {
		return fmt.Errorf("invalid actual end date (expected YYYY-MM-DD): %s", *c.Done)
	}
	return nil
}

func (c *GoalEditCmd) Run(ctx *cli.Context) error {
	patch := models.GoalPatch{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Category:      c.Category,
		TargetEndDate: c.Target,
		ActualEndDate: c.Done,
	}
	if c.Status != nil {
		status := models.GoalStatus(*c.Status)
		patch.Status = &status
	}
	if c.Priority != nil {
		priority := models.Priority(*c.Priority)
		patch.Priority = &priority
	}

	err := ctx.Goals.Update(patch)
	ctx.Reporter.Report(outcome.ForUpdate("goal", c.ID, err)...)
	return err
}
