package tasks

import (
	"fmt"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/outcome"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type TaskEditCmd struct {
	ID          string   `arg:"" help:"Task ID to edit."`
	Title       *string  `help:"New title."`
	Description *string  `help:"New description."`
	Milestone   *string  `help:"Move to another milestone."`
	Priority    *string  `help:"New priority (low|medium|high)."`
	Due         *string  `help:"New due date (YYYY-MM-DD)."`
	Hours       *float64 `help:"Actual hours spent."`
}

func (c *TaskEditCmd) Validate() error {
	if c.Due != nil && !utils.ValidateDateFormat(*c.Due) {
		return fmt.Errorf("invalid due date (expected YYYY-MM-DD): %s", *c.Due)
	}
	return nil
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	patch := models.TaskPatch{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		MilestoneID: c.Milestone,
		DueDate:     c.Due,
		ActualHours: c.Hours,
	}
	if c.Priority != nil {
		priority := models.Priority(*c.Priority)
		patch.Priority = &priority
	}

	err := ctx.Tasks.Update(patch)
	ctx.Reporter.Report(outcome.ForUpdate("task", c.ID, err)...)
	return err
}

type TaskCompleteCmd struct {
	ID   string `arg:"" help:"Task ID to complete."`
	Undo bool   `help:"Mark as not completed instead."`
}

func (c *TaskCompleteCmd) Run(ctx *cli.Context) error {
	err := ctx.Tasks.Complete(c.ID, !c.Undo)
	ctx.Reporter.Report(outcome.ForUpdate("task", c.ID, err)...)
	return err
}
