package milestones

import (
	"fmt"
	"sort"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/progress"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type MilestoneListCmd struct {
	Goal string `short:"g" help:"Only milestones of this goal."`
}

func (c *MilestoneListCmd) Run(ctx *cli.Context) error {
	milestones, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	if len(milestones) == 0 {
		fmt.Println("No milestones found.")
		return nil
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}

	sort.Slice(milestones, func(i, j int) bool {
		return milestones[i].Deadline < milestones[j].Deadline
	})
	for _, m := range milestones {
		pct := progress.MilestoneProgress(tasks, m.ID, m.Completed)
		marker := " "
		if m.Completed {
			marker = "x"
		}
		fmt.Printf("%-36s  [%s] %3d%%  w%-3d  %s (%s)\n",
			m.ID, marker, pct, m.Percentage,
			utils.Truncate(m.Title, 40), utils.FormatDeadline(m.Deadline))
	}
	return nil
}

func (c *MilestoneListCmd) fetch(ctx *cli.Context) ([]models.Milestone, error) {
	if c.Goal != "" {
		return ctx.Store.GetMilestonesForGoal(c.Goal)
	}
	return ctx.Store.GetAllMilestones()
}
