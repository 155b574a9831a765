package tasks

import (
	"fmt"
	"sort"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type TaskListCmd struct {
	Milestone  string `short:"m" help:"Only tasks of this milestone."`
	Standalone bool   `help:"Only tasks that belong to no milestone."`
	Open       bool   `short:"o" help:"Only tasks not yet completed."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	var tasks []models.Task
	var err error
	if c.Milestone != "" {
		tasks, err = ctx.Store.GetTasksForMilestone(c.Milestone)
	} else {
		tasks, err = ctx.Store.GetAllTasks()
	}
	if err != nil {
		return err
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].DueDate != tasks[j].DueDate {
			return tasks[i].DueDate < tasks[j].DueDate
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	shown := 0
	for _, t := range tasks {
		if c.Standalone && t.MilestoneID != "" {
			continue
		}
		if c.Open && t.Completed {
			continue
		}
		marker := " "
		if t.Completed {
			marker = "x"
		}
		due := ""
		if t.DueDate != "" {
			due = " (" + utils.FormatDeadline(t.DueDate) + ")"
		}
		fmt.Printf("%-36s  [%s]  %-6s  %s%s\n",
			t.ID, marker, t.Priority, utils.Truncate(t.Title, 48), due)
		shown++
	}
	if shown == 0 {
		fmt.Println("No tasks found.")
	}
	return nil
}
