// Package transfer moves the full data set in and out of the store as YAML,
// for backups and for moving between machines or backends.
package transfer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
)

// archive is the on-disk export format.
type archive struct {
	Version       int                    `yaml:"version"`
	Goals         []models.Goal          `yaml:"goals,omitempty"`
	Milestones    []models.Milestone     `yaml:"milestones,omitempty"`
	Tasks         []models.Task          `yaml:"tasks,omitempty"`
	Notifications []models.Notification  `yaml:"notifications,omitempty"`
	Events        []models.CalendarEvent `yaml:"calendar_events,omitempty"`
	Chats         []models.Chat          `yaml:"chats,omitempty"`
}

const archiveVersion = 1

type ExportCmd struct {
	Output string `arg:"" optional:"" help:"Output file. Defaults to stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	var a archive
	a.Version = archiveVersion

	var err error
	if a.Goals, err = ctx.Store.GetAllGoals(); err != nil {
		return err
	}
	if a.Milestones, err = ctx.Store.GetAllMilestones(); err != nil {
		return err
	}
	if a.Tasks, err = ctx.Store.GetAllTasks(); err != nil {
		return err
	}
	if a.Notifications, err = ctx.Store.GetAllNotifications(ctx.Owner); err != nil {
		return err
	}
	if a.Events, err = ctx.Store.GetAllCalendarEvents(); err != nil {
		return err
	}
	if a.Chats, err = ctx.Store.GetAllChats(ctx.Owner); err != nil {
		return err
	}

	out := os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(&a); err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if c.Output != "" {
		fmt.Printf("Exported %d goal(s), %d milestone(s), %d task(s) to %s\n",
			len(a.Goals), len(a.Milestones), len(a.Tasks), c.Output)
	}
	return nil
}

type ImportCmd struct {
	Input string `arg:"" help:"Archive file to import."`
}

// Run inserts the archive's records, parents before children. Records whose
// IDs already exist in the store make the import fail; import into a fresh
// database.
func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	var a archive
	if err := yaml.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("failed to parse archive: %w", err)
	}
	if a.Version != archiveVersion {
		return fmt.Errorf("unsupported archive version %d (expected %d)", a.Version, archiveVersion)
	}

	for _, g := range a.Goals {
		if err := ctx.Store.AddGoal(g); err != nil {
			return fmt.Errorf("failed to import goal %s: %w", g.ID, err)
		}
	}
	for _, m := range a.Milestones {
		if err := ctx.Store.AddMilestone(m); err != nil {
			return fmt.Errorf("failed to import milestone %s: %w", m.ID, err)
		}
	}
	for _, t := range a.Tasks {
		if err := ctx.Store.AddTask(t); err != nil {
			return fmt.Errorf("failed to import task %s: %w", t.ID, err)
		}
	}
	for _, n := range a.Notifications {
		if err := ctx.Store.AddNotification(n); err != nil {
			return fmt.Errorf("failed to import notification %s: %w", n.ID, err)
		}
	}
	for _, e := range a.Events {
		if err := ctx.Store.AddCalendarEvent(e); err != nil {
			return fmt.Errorf("failed to import calendar event %s: %w", e.ID, err)
		}
	}
	for _, chat := range a.Chats {
		if err := ctx.Store.AddChat(chat); err != nil {
			return fmt.Errorf("failed to import chat %s: %w", chat.ID, err)
		}
	}

	fmt.Printf("Imported %d goal(s), %d milestone(s), %d task(s), %d notification(s), %d event(s), %d chat(s)\n",
		len(a.Goals), len(a.Milestones), len(a.Tasks), len(a.Notifications), len(a.Events), len(a.Chats))
	return nil
}
