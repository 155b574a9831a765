package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized lodestar storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("data copy failed: %w", err)
		}
		fmt.Println("Data copy completed successfully!")
	}

	return nil
}

// copyData pulls every record out of the source store and writes it into the
// freshly initialized destination, parents before children.
func (c *InitCmd) copyData(ctx *cli.Context, sourcePath string) error {
	var source storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if valid, err := storage.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, storage.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return fmt.Errorf("invalid source connection string: %w", err)
		}
		source = storage.NewPostgresStore(sourcePath)
	} else {
		source = storage.NewSQLiteStore(sourcePath)
	}

	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source: %w", err)
	}
	defer source.Close()

	goals, err := source.GetAllGoals()
	if err != nil {
		return err
	}
	for _, g := range goals {
		if err := ctx.Store.AddGoal(g); err != nil {
			return fmt.Errorf("failed to copy goal %s: %w", g.ID, err)
		}
	}

	milestones, err := source.GetAllMilestones()
	if err != nil {
		return err
	}
	for _, m := range milestones {
		if err := ctx.Store.AddMilestone(m); err != nil {
			return fmt.Errorf("failed to copy milestone %s: %w", m.ID, err)
		}
	}

	tasks, err := source.GetAllTasks()
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if err := ctx.Store.AddTask(t); err != nil {
			return fmt.Errorf("failed to copy task %s: %w", t.ID, err)
		}
	}

	notifications, err := source.GetAllNotifications(ctx.Owner)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if err := ctx.Store.AddNotification(n); err != nil {
			return fmt.Errorf("failed to copy notification %s: %w", n.ID, err)
		}
	}

	events, err := source.GetAllCalendarEvents()
	if err != nil {
		return err
	}
	for _, e := range events {
		if err := ctx.Store.AddCalendarEvent(e); err != nil {
			return fmt.Errorf("failed to copy calendar event %s: %w", e.ID, err)
		}
	}

	chats, err := source.GetAllChats(ctx.Owner)
	if err != nil {
		return err
	}
	for _, chat := range chats {
		if err := ctx.Store.AddChat(chat); err != nil {
			return fmt.Errorf("failed to copy chat %s: %w", chat.ID, err)
		}
	}

	fmt.Printf("Copied %d goal(s), %d milestone(s), %d task(s), %d notification(s), %d event(s), %d chat(s)\n",
		len(goals), len(milestones), len(tasks), len(notifications), len(events), len(chats))
	return nil
}
