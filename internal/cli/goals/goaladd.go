package goals

import (
	"fmt"
	"strings"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/outcome"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Description string `short:"d" help:"Longer description."`
	Priority    string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	Category    string `short:"c" help:"Category label."`
	Tags        string `short:"t" help:"Comma-separated tags."`
	Start       string `short:"s" help:"Start date (YYYY-MM-DD). Defaults to today."`
	Target      string `short:"e" help:"Target end date (YYYY-MM-DD)." required:""`
	Budget      float64 `help:"Budget for the goal."`
	Hours       float64 `help:"Estimated total hours."`
}

func (c *GoalAddCmd) Validate() error {
	if c.Start != "" && !utils.ValidateDateFormat(c.Start) {
		return fmt.Errorf("invalid start date (expected YYYY-MM-DD): %s", c.Start)
	}
	if !utils.ValidateDateFormat(c.Target) {
		return fmt.Errorf("invalid target end date (expected YYYY-MM-DD): %s", c.Target)
	}
	return nil
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	start := c.Start
	if start == "" {
		start = utils.Today()
	}
	var tags []string
	if c.Tags != "" {
		for _, tag := range strings.Split(c.Tags, ",") {
			tags = append(tags, strings.TrimSpace(tag))
		}
	}

	goal, err := ctx.Goals.Create(models.Goal{
		Title:               c.Title,
		Description:         c.Description,
		Priority:            models.Priority(c.Priority),
		Category:            c.Category,
		Tags:                tags,
		StartDate:           start,
		TargetEndDate:       c.Target,
		Owner:               ctx.Owner,
		Budget:              c.Budget,
		EstimatedTotalHours: c.Hours,
	})
	ctx.Reporter.Report(outcome.ForCreate("goal", goal.Title, err)...)
	if err != nil {
		return err
	}
	fmt.Printf("ID: %s\n", goal.ID)
	return nil
}
