package milestones

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/outcome"
)

type MilestoneDeleteCmd struct {
	ID  string `arg:"" help:"Milestone ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

// Run cascades: the milestone's tasks and their dependents go first.
func (c *MilestoneDeleteCmd) Run(ctx *cli.Context) error {
	milestone, err := ctx.Store.GetMilestone(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find milestone with ID %s: %w", c.ID, err)
	}

	if !c.Yes {
		tasks, err := ctx.Store.GetTasksForMilestone(c.ID)
		if err != nil {
			return err
		}
		var confirmed bool
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and its %d task(s)?", milestone.Title, len(tasks))).
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	err = ctx.Cascade.DeleteMilestone(c.ID)
	ctx.Reporter.Report(outcome.ForDelete("milestone", milestone.Title, err)...)
	return err
}
