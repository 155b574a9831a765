package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kestrelapps/lodestar/internal/models"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "lodestar.db")
	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testGoal(id string) models.Goal {
	return models.Goal{
		ID:            id,
		Title:         "Run 5k",
		Status:        models.StatusNotStarted,
		Priority:      models.PriorityMedium,
		Tags:          []string{"health", "running"},
		StartDate:     "2026-01-01",
		TargetEndDate: "2026-06-01",
		CreatedAt:     time.Now(),
		Owner:         "user-1",
	}
}

func TestGoalRoundTrip(t *testing.T) {
	store := setupStore(t)

	g := testGoal("g1")
	if err := store.AddGoal(g); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	got, err := store.GetGoal("g1")
	if err != nil {
		t.Fatalf("GetGoal failed: %v", err)
	}
	if got.Title != g.Title || got.Status != g.Status || got.Owner != g.Owner {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "health" {
		t.Errorf("tags not preserved: %v", got.Tags)
	}
	if got.UpdatedAt != nil {
		t.Error("fresh goal should have nil UpdatedAt")
	}
}

func TestGetGoal_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetGoal("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateGoal_MergeSemantics(t *testing.T) {
	store := setupStore(t)

	if err := store.AddGoal(testGoal("g1")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	status := models.StatusInProgress
	if err := store.UpdateGoal(models.GoalPatch{ID: "g1", Status: &status}); err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}

	got, err := store.GetGoal("g1")
	if err != nil {
		t.Fatalf("GetGoal failed: %v", err)
	}
	if got.Status != models.StatusInProgress {
		t.Errorf("status not updated: %v", got.Status)
	}
	// Untouched fields survive the patch
	if got.Title != "Run 5k" {
		t.Errorf("title should be unchanged, got %q", got.Title)
	}
	if got.UpdatedAt == nil {
		t.Error("UpdatedAt should be stamped after patch")
	}
}

func TestUpdateGoal_NotFound(t *testing.T) {
	store := setupStore(t)

	title := "New title"
	err := store.UpdateGoal(models.GoalPatch{ID: "missing", Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMilestonesForGoal(t *testing.T) {
	store := setupStore(t)

	if err := store.AddGoal(testGoal("g1")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	for i, id := range []string{"m1", "m2"} {
		m := models.Milestone{
			ID:         id,
			GoalID:     "g1",
			Title:      "Milestone " + id,
			Percentage: 50,
			Status:     models.StatusNotStarted,
			Priority:   models.PriorityMedium,
			Deadline:   "2026-03-0" + string(rune('1'+i)),
			CreatedAt:  time.Now(),
		}
		if err := store.AddMilestone(m); err != nil {
			t.Fatalf("AddMilestone failed: %v", err)
		}
	}
	// Milestone under a different goal must not appear
	other := models.Milestone{
		ID: "m3", GoalID: "g2", Title: "Other goal milestone", Percentage: 100,
		Status: models.StatusNotStarted, Priority: models.PriorityLow,
		Deadline: "2026-04-01", CreatedAt: time.Now(),
	}
	if err := store.AddMilestone(other); err != nil {
		t.Fatalf("AddMilestone failed: %v", err)
	}

	milestones, err := store.GetMilestonesForGoal("g1")
	if err != nil {
		t.Fatalf("GetMilestonesForGoal failed: %v", err)
	}
	if len(milestones) != 2 {
		t.Errorf("expected 2 milestones for g1, got %d", len(milestones))
	}
}

func TestTasksForMilestone(t *testing.T) {
	store := setupStore(t)

	for _, id := range []string{"t1", "t2"} {
		task := models.Task{
			ID: id, MilestoneID: "m1", Title: "Task " + id,
			Priority: models.PriorityMedium, CreatedAt: time.Now(),
		}
		if err := store.AddTask(task); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}
	standalone := models.Task{
		ID: "t3", Title: "Standalone task",
		Priority: models.PriorityLow, CreatedAt: time.Now(),
	}
	if err := store.AddTask(standalone); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	tasks, err := store.GetTasksForMilestone("m1")
	if err != nil {
		t.Fatalf("GetTasksForMilestone failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks for m1, got %d", len(tasks))
	}
}

func TestNotificationsForTarget(t *testing.T) {
	store := setupStore(t)

	n := models.Notification{
		ID: "n1", UserID: "user-1", Type: models.NotificationMilestoneDue,
		Title: "Milestone due", Message: "Base training due tomorrow",
		MilestoneID: "m1", CreatedAt: time.Now(),
	}
	if err := store.AddNotification(n); err != nil {
		t.Fatalf("AddNotification failed: %v", err)
	}

	got, err := store.GetNotificationsForTarget(EntityMilestone, "m1")
	if err != nil {
		t.Fatalf("GetNotificationsForTarget failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "n1" {
		t.Errorf("unexpected notifications: %+v", got)
	}

	if _, err := store.GetNotificationsForTarget(EntityChat, "c1"); err == nil {
		t.Error("expected error for non-target entity type")
	}
}

func TestCalendarEventRoundTrip(t *testing.T) {
	store := setupStore(t)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	e := models.CalendarEvent{
		ID: "e1", TaskID: "t1", EventType: models.EventTaskDue,
		CalendarID: "primary", EventID: "ext-123", Title: "Interval session",
		StartDate: start, EndDate: start.Add(time.Hour), CreatedAt: time.Now(),
	}
	if err := store.AddCalendarEvent(e); err != nil {
		t.Fatalf("AddCalendarEvent failed: %v", err)
	}

	got, err := store.GetCalendarEvent("e1")
	if err != nil {
		t.Fatalf("GetCalendarEvent failed: %v", err)
	}
	if !got.StartDate.Equal(start) {
		t.Errorf("start date not preserved: %v", got.StartDate)
	}
	if got.EventID != "ext-123" {
		t.Errorf("external event id not preserved: %q", got.EventID)
	}
}

func TestTransact_AtomicBatchDelete(t *testing.T) {
	store := setupStore(t)

	if err := store.AddGoal(testGoal("g1")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	task := models.Task{ID: "t1", Title: "Some task", Priority: models.PriorityLow, CreatedAt: time.Now()}
	if err := store.AddTask(task); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	err := store.Transact([]Op{
		{Kind: OpDelete, Entity: EntityGoal, ID: "g1"},
		{Kind: OpDelete, Entity: EntityTask, ID: "t1"},
	})
	if err != nil {
		t.Fatalf("Transact failed: %v", err)
	}

	if _, err := store.GetGoal("g1"); !errors.Is(err, ErrNotFound) {
		t.Error("goal should be deleted")
	}
	if _, err := store.GetTask("t1"); !errors.Is(err, ErrNotFound) {
		t.Error("task should be deleted")
	}
}

func TestTransact_EmptyBatchIsNoop(t *testing.T) {
	store := setupStore(t)
	if err := store.Transact(nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
}

func TestTransact_RejectsUnknownEntity(t *testing.T) {
	store := setupStore(t)
	err := store.Transact([]Op{{Kind: OpDelete, Entity: EntityType("widget"), ID: "x"}})
	if err == nil {
		t.Error("expected error for unknown entity type")
	}
}

func TestWatch_ReceivesChanges(t *testing.T) {
	store := setupStore(t)

	ch := store.Watch()
	if err := store.AddGoal(testGoal("g1")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	select {
	case c := <-ch:
		if c.Entity != EntityGoal || c.ID != "g1" || c.Kind != "create" {
			t.Errorf("unexpected change: %+v", c)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestChatRoundTrip(t *testing.T) {
	store := setupStore(t)

	c := models.Chat{
		ID: "c1", Owner: "user-1", Title: "Training plan ideas",
		Messages: []models.ChatMessage{
			{Role: "user", Content: "How should I structure week one?", CreatedAt: time.Now()},
		},
		CreatedAt: time.Now(),
	}
	if err := store.AddChat(c); err != nil {
		t.Fatalf("AddChat failed: %v", err)
	}

	got, err := store.GetChat("c1")
	if err != nil {
		t.Fatalf("GetChat failed: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" {
		t.Errorf("messages not preserved: %+v", got.Messages)
	}
}
