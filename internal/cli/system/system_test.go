package system

import (
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
	ctx := cli.NewContext(store, calendar.Disabled{}, notify.Disabled{}, "tester")
	t.Cleanup(func() { store.Close() })

	return ctx
}

func TestInitCmd(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// The store should be usable immediately after init
	if _, err := ctx.Store.GetAllGoals(); err != nil {
		t.Errorf("store not usable after init: %v", err)
	}
}

func TestInitCmdForceResets(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	goal := models.Goal{
		ID:            "g1",
		Title:         "Learn woodworking",
		Status:        models.StatusInProgress,
		Priority:      models.PriorityMedium,
		StartDate:     "2026-01-01",
		TargetEndDate: "2026-12-31",
		CreatedAt:     time.Now().UTC(),
		Owner:         "tester",
	}
	if err := ctx.Store.AddGoal(goal); err != nil {
		t.Fatalf("failed to add goal: %v", err)
	}

	force := &InitCmd{Force: true}
	if err := force.Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}

	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		t.Fatalf("failed to list goals: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("expected empty store after forced init, got %d goals", len(goals))
	}
}

func TestInitCmdCopiesFromSource(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "source.db")
	srcStore := storage.NewSQLiteStore(srcPath)
	srcCtx := cli.NewContext(srcStore, calendar.Disabled{}, notify.Disabled{}, "tester")
	if err := (&InitCmd{}).Run(srcCtx); err != nil {
		t.Fatalf("source init failed: %v", err)
	}

	goal := models.Goal{
		ID:            "g1",
		Title:         "Ship side project",
		Status:        models.StatusInProgress,
		Priority:      models.PriorityHigh,
		StartDate:     "2026-01-01",
		TargetEndDate: "2026-06-30",
		CreatedAt:     time.Now().UTC(),
		Owner:         "tester",
	}
	if err := srcStore.AddGoal(goal); err != nil {
		t.Fatalf("failed to seed source: %v", err)
	}
	milestone := models.Milestone{
		ID:         "m1",
		GoalID:     "g1",
		Title:      "First public release",
		Percentage: 50,
		Status:     models.StatusNotStarted,
		Priority:   models.PriorityMedium,
		Deadline:   "2026-03-31",
		CreatedAt:  time.Now().UTC(),
	}
	if err := srcStore.AddMilestone(milestone); err != nil {
		t.Fatalf("failed to seed source: %v", err)
	}
	srcStore.Close()

	ctx := setupTestContext(t)
	cmd := &InitCmd{Source: srcPath}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	got, err := ctx.Store.GetGoal("g1")
	if err != nil {
		t.Fatalf("copied goal missing: %v", err)
	}
	if got.Title != "Ship side project" {
		t.Errorf("expected copied goal title, got %q", got.Title)
	}
	if _, err := ctx.Store.GetMilestone("m1"); err != nil {
		t.Errorf("copied milestone missing: %v", err)
	}
}

func TestInitCmdForceRejectsSameSource(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cmd := &InitCmd{Force: true, Source: ctx.Store.GetConfigPath()}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error when source equals destination")
	}
}

func TestMigrateCmdUpToDate(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// Init already ran all migrations, so a second run applies nothing
	cmd := &MigrateCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("migrate failed: %v", err)
	}
}

func TestDoctorCmdHealthyStore(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor reported problems on a healthy store: %v", err)
	}
}

func TestDoctorCmdUninitializedStore(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected doctor to fail on an uninitialized store")
	}
}

func seedDeadlineFixtures(t *testing.T, ctx *cli.Context) {
	t.Helper()
	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	soon := now.AddDate(0, 0, 2).Format("2006-01-02")
	farOff := now.AddDate(0, 0, 60).Format("2006-01-02")
	past := now.AddDate(0, 0, -5).Format("2006-01-02")

	overdue := models.Goal{
		ID:            "g-overdue",
		Title:         "Finish thesis draft",
		Status:        models.StatusInProgress,
		Priority:      models.PriorityHigh,
		StartDate:     today,
		TargetEndDate: past,
		CreatedAt:     now,
		Owner:         "tester",
	}
	onTrack := models.Goal{
		ID:            "g-ok",
		Title:         "Run a marathon",
		Status:        models.StatusInProgress,
		Priority:      models.PriorityMedium,
		StartDate:     today,
		TargetEndDate: farOff,
		CreatedAt:     now,
		Owner:         "tester",
	}
	for _, g := range []models.Goal{overdue, onTrack} {
		if err := ctx.Store.AddGoal(g); err != nil {
			t.Fatalf("failed to seed goal: %v", err)
		}
	}

	due := models.Milestone{
		ID:         "m-due",
		GoalID:     "g-ok",
		Title:      "Complete first half-marathon",
		Percentage: 40,
		Status:     models.StatusInProgress,
		Priority:   models.PriorityMedium,
		Deadline:   soon,
		CreatedAt:  now,
	}
	distant := models.Milestone{
		ID:         "m-distant",
		GoalID:     "g-ok",
		Title:      "Complete full distance",
		Percentage: 60,
		Status:     models.StatusNotStarted,
		Priority:   models.PriorityMedium,
		Deadline:   farOff,
		CreatedAt:  now,
	}
	for _, m := range []models.Milestone{due, distant} {
		if err := ctx.Store.AddMilestone(m); err != nil {
			t.Fatalf("failed to seed milestone: %v", err)
		}
	}
}

func TestNotifyCmdCreatesDeadlineNotifications(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	seedDeadlineFixtures(t, ctx)

	cmd := &NotifyCmd{Lead: 3}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	forMilestone, err := ctx.Store.GetNotificationsForTarget(storage.EntityMilestone, "m-due")
	if err != nil {
		t.Fatalf("failed to query notifications: %v", err)
	}
	if len(forMilestone) != 1 {
		t.Errorf("expected 1 notification for due milestone, got %d", len(forMilestone))
	}

	forGoal, err := ctx.Store.GetNotificationsForTarget(storage.EntityGoal, "g-overdue")
	if err != nil {
		t.Fatalf("failed to query notifications: %v", err)
	}
	if len(forGoal) != 1 {
		t.Errorf("expected 1 notification for overdue goal, got %d", len(forGoal))
	}

	forDistant, err := ctx.Store.GetNotificationsForTarget(storage.EntityMilestone, "m-distant")
	if err != nil {
		t.Fatalf("failed to query notifications: %v", err)
	}
	if len(forDistant) != 0 {
		t.Errorf("expected no notification for distant milestone, got %d", len(forDistant))
	}
}

func TestNotifyCmdDoesNotDuplicate(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	seedDeadlineFixtures(t, ctx)

	cmd := &NotifyCmd{Lead: 3}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first notify failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second notify failed: %v", err)
	}

	all, err := ctx.Store.GetAllNotifications("tester")
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 notifications after repeated runs, got %d", len(all))
	}
}

func TestNotifyCmdDryRun(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	seedDeadlineFixtures(t, ctx)

	cmd := &NotifyCmd{Lead: 3, DryRun: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("dry-run notify failed: %v", err)
	}

	all, err := ctx.Store.GetAllNotifications("tester")
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("dry run should not create notifications, got %d", len(all))
	}
}
