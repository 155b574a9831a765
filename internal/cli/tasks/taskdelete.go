package tasks

import (
	"fmt"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/outcome"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID to delete."`
}

// Run cascades: notifications and calendar events referencing the task are
// removed first.
func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	err = ctx.Cascade.DeleteTask(c.ID)
	ctx.Reporter.Report(outcome.ForDelete("task", task.Title, err)...)
	return err
}
