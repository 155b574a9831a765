package tasks

import (
	"fmt"
	"strings"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/outcome"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type TaskAddCmd struct {
	Title       string  `arg:"" help:"Task title."`
	Milestone   string  `short:"m" help:"Milestone ID this task belongs to. Omit for a standalone task."`
	Description string  `short:"d" help:"Longer description."`
	Priority    string  `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	Due         string  `short:"e" help:"Due date (YYYY-MM-DD)."`
	Hours       float64 `help:"Estimated hours."`
	Tags        string  `short:"t" help:"Comma-separated tags."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Due != "" && !utils.ValidateDateFormat(c.Due) {
		return fmt.Errorf("invalid due date (expected YYYY-MM-DD): %s", c.Due)
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if c.Milestone != "" {
		if _, err := ctx.Store.GetMilestone(c.Milestone); err != nil {
			return fmt.Errorf("failed to find milestone with ID %s: %w", c.Milestone, err)
		}
	}

	var tags []string
	if c.Tags != "" {
		for _, tag := range strings.Split(c.Tags, ",") {
			tags = append(tags, strings.TrimSpace(tag))
		}
	}

	task, err := ctx.Tasks.Create(models.Task{
		MilestoneID:    c.Milestone,
		Title:          c.Title,
		Description:    c.Description,
		Priority:       models.Priority(c.Priority),
		DueDate:        c.Due,
		EstimatedHours: c.Hours,
		Tags:           tags,
	})
	ctx.Reporter.Report(outcome.ForCreate("task", task.Title, err)...)
	if err != nil {
		return err
	}
	fmt.Printf("ID: %s\n", task.ID)
	return nil
}
