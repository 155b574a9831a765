package transfer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kestrelapps/lodestar/internal/calendar"
	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/notify"
	"github.com/kestrelapps/lodestar/internal/storage"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return cli.NewContext(store, calendar.Disabled{}, notify.Disabled{}, "tester")
}

func seedArchiveData(t *testing.T, ctx *cli.Context) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)

	goal := models.Goal{
		ID:            "g1",
		Title:         "Read twelve books",
		Status:        models.StatusInProgress,
		Priority:      models.PriorityMedium,
		Tags:          []string{"reading", "habit"},
		StartDate:     "2026-01-01",
		TargetEndDate: "2026-12-31",
		CreatedAt:     now,
		Owner:         "tester",
	}
	if err := ctx.Store.AddGoal(goal); err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}

	milestone := models.Milestone{
		ID:         "m1",
		GoalID:     "g1",
		Title:      "Six books by June",
		Percentage: 50,
		Status:     models.StatusInProgress,
		Priority:   models.PriorityMedium,
		Deadline:   "2026-06-30",
		CreatedAt:  now,
	}
	if err := ctx.Store.AddMilestone(milestone); err != nil {
		t.Fatalf("failed to seed milestone: %v", err)
	}

	task := models.Task{
		ID:          "t1",
		MilestoneID: "m1",
		Title:       "Finish current novel",
		Priority:    models.PriorityLow,
		DueDate:     "2026-02-15",
		CreatedAt:   now,
	}
	if err := ctx.Store.AddTask(task); err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}

	notification := models.Notification{
		ID:          "n1",
		UserID:      "tester",
		Type:        models.NotificationMilestoneDue,
		Title:       "Milestone deadline",
		Message:     "Six books by June is due soon",
		MilestoneID: "m1",
		CreatedAt:   now,
	}
	if err := ctx.Store.AddNotification(notification); err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := setupTestContext(t)
	seedArchiveData(t, src)

	archivePath := filepath.Join(t.TempDir(), "archive.yaml")
	export := &ExportCmd{Output: archivePath}
	if err := export.Run(src); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dst := setupTestContext(t)
	imp := &ImportCmd{Input: archivePath}
	if err := imp.Run(dst); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	goal, err := dst.Store.GetGoal("g1")
	if err != nil {
		t.Fatalf("imported goal missing: %v", err)
	}
	if goal.Title != "Read twelve books" {
		t.Errorf("goal title mismatch: %q", goal.Title)
	}
	if len(goal.Tags) != 2 {
		t.Errorf("goal tags lost in round trip: %v", goal.Tags)
	}

	milestones, err := dst.Store.GetMilestonesForGoal("g1")
	if err != nil {
		t.Fatalf("failed to query milestones: %v", err)
	}
	if len(milestones) != 1 || milestones[0].ID != "m1" {
		t.Errorf("expected imported milestone m1, got %v", milestones)
	}

	tasks, err := dst.Store.GetTasksForMilestone("m1")
	if err != nil {
		t.Fatalf("failed to query tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Finish current novel" {
		t.Errorf("expected imported task, got %v", tasks)
	}

	notifications, err := dst.Store.GetAllNotifications("tester")
	if err != nil {
		t.Fatalf("failed to query notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Errorf("expected 1 imported notification, got %d", len(notifications))
	}
}

func TestImportRejectsWrongVersion(t *testing.T) {
	ctx := setupTestContext(t)

	archivePath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(archivePath, []byte("version: 99\n"), 0600); err != nil {
		t.Fatal(err)
	}

	imp := &ImportCmd{Input: archivePath}
	if err := imp.Run(ctx); err == nil {
		t.Error("expected error for unsupported archive version")
	}
}

func TestImportFailsOnDuplicateIDs(t *testing.T) {
	ctx := setupTestContext(t)
	seedArchiveData(t, ctx)

	archivePath := filepath.Join(t.TempDir(), "archive.yaml")
	if err := (&ExportCmd{Output: archivePath}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// Importing back into the same store collides on every ID
	imp := &ImportCmd{Input: archivePath}
	if err := imp.Run(ctx); err == nil {
		t.Error("expected duplicate-id import to fail")
	}
}
