package goals

import (
	"fmt"
	"sort"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type GoalListCmd struct {
	Status string `short:"s" help:"Filter by status (not_started|in_progress|completed|on_hold|cancelled)."`
	All    bool   `short:"a" help:"Include completed and cancelled goals."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals, err := ctx.Goals.GetAll()
	if err != nil {
		return err
	}

	sort.Slice(goals, func(i, j int) bool {
		return goals[i].TargetEndDate < goals[j].TargetEndDate
	})

	shown := 0
	for _, g := range goals {
		if c.Status != "" && string(g.Status) != c.Status {
			continue
		}
		if !c.All && c.Status == "" && (g.Status == "completed" || g.Status == "cancelled") {
			continue
		}
		fmt.Printf("%-36s  %3d%%  %-12s  %-6s  %s (%s)\n",
			g.ID, g.OverallProgress, g.Status, g.Priority,
			utils.Truncate(g.Title, 40), utils.FormatDeadline(g.TargetEndDate))
		shown++
	}
	if shown == 0 {
		fmt.Println("No goals found. Create one with 'lodestar goal add'.")
	}
	return nil
}
