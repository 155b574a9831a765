package goals

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/progress"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type GoalShowCmd struct {
	ID string `arg:"" help:"Goal ID to show."`
}

func (c *GoalShowCmd) Run(ctx *cli.Context) error {
	goal, err := ctx.Goals.Get(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", goal.Title)
	if goal.Description != "" {
		fmt.Printf("%s\n", goal.Description)
	}
	fmt.Println()
	fmt.Printf("Status:    %s (%s priority)\n", goal.Status, goal.Priority)
	fmt.Printf("Progress:  %d%%\n", goal.OverallProgress)
	fmt.Printf("Timeline:  %s to %s (%s)\n", goal.StartDate, goal.TargetEndDate, utils.FormatDeadline(goal.TargetEndDate))
	if len(goal.Tags) > 0 {
		fmt.Printf("Tags:      %s\n", strings.Join(goal.Tags, ", "))
	}

	milestones, err := ctx.Store.GetMilestonesForGoal(c.ID)
	if err != nil {
		return err
	}
	if len(milestones) == 0 {
		return nil
	}
	sort.Slice(milestones, func(i, j int) bool {
		return milestones[i].Deadline < milestones[j].Deadline
	})

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}

	fmt.Println("\nMilestones:")
	for _, m := range milestones {
		pct := progress.MilestoneProgress(tasks, m.ID, m.Completed)
		marker := " "
		if m.Completed {
			marker = "x"
		}
		fmt.Printf("  [%s] %3d%%  (weight %d)  %s - %s\n",
			marker, pct, m.Percentage, utils.Truncate(m.Title, 40), utils.FormatDeadline(m.Deadline))
	}
	return nil
}
