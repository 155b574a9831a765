package goals

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/outcome"
)

type GoalDeleteCmd struct {
	ID  string `arg:"" help:"Goal ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

// Run cascades: the goal's milestones, their tasks and every notification or
// calendar event referencing any of them go first.
func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Store.GetGoal(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find goal with ID %s: %w", c.ID, err)
	}

	if !c.Yes {
		milestones, err := ctx.Store.GetMilestonesForGoal(c.ID)
		if err != nil {
			return err
		}
		var confirmed bool
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and its %d milestone(s)?", goal.Title, len(milestones))).
			Description("Tasks, notifications and calendar events under this goal are removed too.").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	err = ctx.Cascade.DeleteGoal(c.ID)
	ctx.Reporter.Report(outcome.ForDelete("goal", goal.Title, err)...)
	return err
}
