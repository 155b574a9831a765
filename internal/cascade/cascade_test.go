package cascade

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kestrelapps/lodestar/internal/actions"
	"github.com/kestrelapps/lodestar/internal/calendar"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/notify"
	"github.com/kestrelapps/lodestar/internal/storage"
)

type fixture struct {
	store *storage.SQLiteStore
	orch  *Orchestrator
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "lodestar.db")
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cal := calendar.Disabled{}
	sched := notify.Disabled{}
	orch := New(
		store,
		actions.NewGoalActions(store),
		actions.NewMilestoneActions(store, cal),
		actions.NewTaskActions(store),
		actions.NewNotificationActions(store, sched),
		actions.NewEventActions(store, cal),
	)
	return &fixture{store: store, orch: orch}
}

func (f *fixture) seedGoal(t *testing.T, id string) {
	t.Helper()
	err := f.store.AddGoal(models.Goal{
		ID:            id,
		Title:         "Run a marathon",
		Status:        models.StatusInProgress,
		Priority:      models.PriorityHigh,
		Owner:         "user-1",
		StartDate:     "2026-01-01",
		TargetEndDate: "2026-12-31",
		CreatedAt:     time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) seedMilestone(t *testing.T, id, goalID string) {
	t.Helper()
	err := f.store.AddMilestone(models.Milestone{
		ID:         id,
		GoalID:     goalID,
		Title:      "Base training",
		Percentage: 50,
		Status:     models.StatusInProgress,
		Priority:   models.PriorityMedium,
		Deadline:   "2026-06-01",
		CreatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) seedTask(t *testing.T, id, milestoneID string) {
	t.Helper()
	err := f.store.AddTask(models.Task{
		ID:          id,
		MilestoneID: milestoneID,
		Title:       "Long run",
		Priority:    models.PriorityMedium,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) seedNotification(t *testing.T, id string, mut func(*models.Notification)) {
	t.Helper()
	n := models.Notification{
		ID:        id,
		UserID:    "user-1",
		Type:      models.NotificationMilestoneDue,
		Title:     "Due soon",
		Message:   "Base training is due",
		CreatedAt: time.Now(),
	}
	if mut != nil {
		mut(&n)
	}
	if err := f.store.AddNotification(n); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) seedEvent(t *testing.T, id string, mut func(*models.CalendarEvent)) {
	t.Helper()
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	e := models.CalendarEvent{
		ID:         id,
		EventType:  models.EventMilestoneDeadline,
		CalendarID: "primary",
		EventID:    "ext-" + id,
		Title:      "Deadline",
		StartDate:  start,
		EndDate:    start.Add(time.Hour),
		CreatedAt:  time.Now(),
	}
	if mut != nil {
		mut(&e)
	}
	if err := f.store.AddCalendarEvent(e); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteGoalCascades(t *testing.T) {
	f := setup(t)

	f.seedGoal(t, "g1")
	f.seedMilestone(t, "m1", "g1")
	f.seedMilestone(t, "m2", "g1")
	f.seedTask(t, "t1", "m1")
	f.seedTask(t, "t2", "m1")
	f.seedTask(t, "t3", "m2")
	f.seedNotification(t, "n-goal", func(n *models.Notification) { n.GoalID = "g1" })
	f.seedNotification(t, "n-milestone", func(n *models.Notification) { n.MilestoneID = "m1" })
	f.seedNotification(t, "n-task", func(n *models.Notification) { n.TaskID = "t1" })
	f.seedEvent(t, "e-milestone", func(e *models.CalendarEvent) { e.MilestoneID = "m2" })
	f.seedEvent(t, "e-task", func(e *models.CalendarEvent) { e.TaskID = "t3" })

	// Unrelated records must survive.
	f.seedGoal(t, "g2")
	f.seedMilestone(t, "m-other", "g2")
	f.seedNotification(t, "n-other", func(n *models.Notification) { n.GoalID = "g2" })

	if err := f.orch.DeleteGoal("g1"); err != nil {
		t.Fatalf("cascade failed: %v", err)
	}

	if _, err := f.store.GetGoal("g1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("goal should be gone, got %v", err)
	}
	for _, id := range []string{"m1", "m2"} {
		if _, err := f.store.GetMilestone(id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("milestone %s should be gone, got %v", id, err)
		}
	}
	for _, id := range []string{"t1", "t2", "t3"} {
		if _, err := f.store.GetTask(id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("task %s should be gone, got %v", id, err)
		}
	}
	for _, id := range []string{"n-goal", "n-milestone", "n-task"} {
		if _, err := f.store.GetNotification(id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("notification %s should be gone, got %v", id, err)
		}
	}
	for _, id := range []string{"e-milestone", "e-task"} {
		if _, err := f.store.GetCalendarEvent(id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("event %s should be gone, got %v", id, err)
		}
	}

	// The other goal's tree is intact.
	if _, err := f.store.GetGoal("g2"); err != nil {
		t.Errorf("unrelated goal should survive: %v", err)
	}
	if _, err := f.store.GetMilestone("m-other"); err != nil {
		t.Errorf("unrelated milestone should survive: %v", err)
	}
	if _, err := f.store.GetNotification("n-other"); err != nil {
		t.Errorf("unrelated notification should survive: %v", err)
	}
}

func TestDeleteMilestoneCascades(t *testing.T) {
	f := setup(t)

	f.seedGoal(t, "g1")
	f.seedMilestone(t, "m1", "g1")
	f.seedTask(t, "t1", "m1")
	f.seedNotification(t, "n-task", func(n *models.Notification) { n.TaskID = "t1" })
	f.seedEvent(t, "e-m", func(e *models.CalendarEvent) { e.MilestoneID = "m1" })

	if err := f.orch.DeleteMilestone("m1"); err != nil {
		t.Fatalf("cascade failed: %v", err)
	}

	if _, err := f.store.GetMilestone("m1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("milestone should be gone, got %v", err)
	}
	if _, err := f.store.GetTask("t1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("task should be gone, got %v", err)
	}
	if _, err := f.store.GetNotification("n-task"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("task notification should be gone, got %v", err)
	}
	if _, err := f.store.GetCalendarEvent("e-m"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("milestone event should be gone, got %v", err)
	}
	// Parent goal survives a milestone cascade.
	if _, err := f.store.GetGoal("g1"); err != nil {
		t.Errorf("goal should survive: %v", err)
	}
}

func TestDeleteTaskCascades(t *testing.T) {
	f := setup(t)

	f.seedGoal(t, "g1")
	f.seedMilestone(t, "m1", "g1")
	f.seedTask(t, "t1", "m1")
	f.seedNotification(t, "n1", func(n *models.Notification) { n.TaskID = "t1" })
	f.seedEvent(t, "e1", func(e *models.CalendarEvent) { e.TaskID = "t1" })

	if err := f.orch.DeleteTask("t1"); err != nil {
		t.Fatalf("cascade failed: %v", err)
	}

	if _, err := f.store.GetTask("t1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("task should be gone, got %v", err)
	}
	if _, err := f.store.GetNotification("n1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("notification should be gone, got %v", err)
	}
	if _, err := f.store.GetCalendarEvent("e1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("event should be gone, got %v", err)
	}
	if _, err := f.store.GetMilestone("m1"); err != nil {
		t.Errorf("milestone should survive: %v", err)
	}
}

func TestDeleteGoalWithNoChildren(t *testing.T) {
	f := setup(t)
	f.seedGoal(t, "g1")

	if err := f.orch.DeleteGoal("g1"); err != nil {
		t.Fatalf("cascade failed: %v", err)
	}
	if _, err := f.store.GetGoal("g1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("goal should be gone, got %v", err)
	}
}
