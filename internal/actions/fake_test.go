package actions

import (
	"fmt"
	"sync"

	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/storage"
)

// fakeStore is an in-memory Provider that records every call, for asserting
// how many (and which) store operations an action performed.
type fakeStore struct {
	mu sync.Mutex

	goals         map[string]models.Goal
	milestones    map[string]models.Milestone
	tasks         map[string]models.Task
	notifications map[string]models.Notification
	events        map[string]models.CalendarEvent
	chats         map[string]models.Chat

	calls       []string
	batches     [][]storage.Op
	transactErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		goals:         map[string]models.Goal{},
		milestones:    map[string]models.Milestone{},
		tasks:         map[string]models.Task{},
		notifications: map[string]models.Notification{},
		events:        map[string]models.CalendarEvent{},
		chats:         map[string]models.Chat{},
	}
}

func (f *fakeStore) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeStore) Init() error  { return nil }
func (f *fakeStore) Load() error  { return nil }
func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) AddGoal(g models.Goal) error {
	f.record("AddGoal")
	f.goals[g.ID] = g
	return nil
}

func (f *fakeStore) GetGoal(id string) (models.Goal, error) {
	f.record("GetGoal")
	g, ok := f.goals[id]
	if !ok {
		return models.Goal{}, storage.ErrNotFound
	}
	return g, nil
}

func (f *fakeStore) GetAllGoals() ([]models.Goal, error) {
	f.record("GetAllGoals")
	out := make([]models.Goal, 0, len(f.goals))
	for _, g := range f.goals {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeStore) UpdateGoal(p models.GoalPatch) error {
	f.record("UpdateGoal")
	g, ok := f.goals[p.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
	f.goals[p.ID] = g
	return nil
}

func (f *fakeStore) DeleteGoal(id string) error {
	f.record("DeleteGoal")
	if _, ok := f.goals[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.goals, id)
	return nil
}

func (f *fakeStore) AddMilestone(m models.Milestone) error {
	f.record("AddMilestone")
	f.milestones[m.ID] = m
	return nil
}

func (f *fakeStore) GetMilestone(id string) (models.Milestone, error) {
	f.record("GetMilestone")
	m, ok := f.milestones[id]
	if !ok {
		return models.Milestone{}, storage.ErrNotFound
	}
	return m, nil
}

func (f *fakeStore) GetAllMilestones() ([]models.Milestone, error) {
	f.record("GetAllMilestones")
	out := make([]models.Milestone, 0, len(f.milestones))
	for _, m := range f.milestones {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeStore) GetMilestonesForGoal(goalID string) ([]models.Milestone, error) {
	f.record("GetMilestonesForGoal")
	var out []models.Milestone
	for _, m := range f.milestones {
		if m.GoalID == goalID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateMilestone(p models.MilestonePatch) error {
	f.record("UpdateMilestone")
	m, ok := f.milestones[p.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Completed != nil {
		m.Completed = *p.Completed
	}
	f.milestones[p.ID] = m
	return nil
}

func (f *fakeStore) DeleteMilestone(id string) error {
	f.record("DeleteMilestone")
	if _, ok := f.milestones[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.milestones, id)
	return nil
}

func (f *fakeStore) AddTask(t models.Task) error {
	f.record("AddTask")
	f.tasks[t.ID] = t
	return nil
}

func (f *fakeStore) GetTask(id string) (models.Task, error) {
	f.record("GetTask")
	t, ok := f.tasks[id]
	if !ok {
		return models.Task{}, storage.ErrNotFound
	}
	return t, nil
}

func (f *fakeStore) GetAllTasks() ([]models.Task, error) {
	f.record("GetAllTasks")
	out := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) GetTasksForMilestone(milestoneID string) ([]models.Task, error) {
	f.record("GetTasksForMilestone")
	var out []models.Task
	for _, t := range f.tasks {
		if t.MilestoneID == milestoneID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateTask(p models.TaskPatch) error {
	f.record("UpdateTask")
	t, ok := f.tasks[p.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	f.tasks[p.ID] = t
	return nil
}

func (f *fakeStore) DeleteTask(id string) error {
	f.record("DeleteTask")
	if _, ok := f.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeStore) AddNotification(n models.Notification) error {
	f.record("AddNotification")
	f.notifications[n.ID] = n
	return nil
}

func (f *fakeStore) GetNotification(id string) (models.Notification, error) {
	f.record("GetNotification")
	n, ok := f.notifications[id]
	if !ok {
		return models.Notification{}, storage.ErrNotFound
	}
	return n, nil
}

func (f *fakeStore) GetAllNotifications(userID string) ([]models.Notification, error) {
	f.record("GetAllNotifications")
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeStore) GetNotificationsForTarget(target storage.EntityType, id string) ([]models.Notification, error) {
	f.record("GetNotificationsForTarget")
	var out []models.Notification
	for _, n := range f.notifications {
		switch target {
		case storage.EntityGoal:
			if n.GoalID == id {
				out = append(out, n)
			}
		case storage.EntityMilestone:
			if n.MilestoneID == id {
				out = append(out, n)
			}
		case storage.EntityTask:
			if n.TaskID == id {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateNotification(p models.NotificationPatch) error {
	f.record("UpdateNotification")
	n, ok := f.notifications[p.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if p.Read != nil {
		n.Read = *p.Read
	}
	f.notifications[p.ID] = n
	return nil
}

func (f *fakeStore) DeleteNotification(id string) error {
	f.record("DeleteNotification")
	if _, ok := f.notifications[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.notifications, id)
	return nil
}

func (f *fakeStore) AddCalendarEvent(e models.CalendarEvent) error {
	f.record("AddCalendarEvent")
	f.events[e.ID] = e
	return nil
}

func (f *fakeStore) GetCalendarEvent(id string) (models.CalendarEvent, error) {
	f.record("GetCalendarEvent")
	e, ok := f.events[id]
	if !ok {
		return models.CalendarEvent{}, storage.ErrNotFound
	}
	return e, nil
}

func (f *fakeStore) GetAllCalendarEvents() ([]models.CalendarEvent, error) {
	f.record("GetAllCalendarEvents")
	out := make([]models.CalendarEvent, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) GetEventsForTarget(target storage.EntityType, id string) ([]models.CalendarEvent, error) {
	f.record("GetEventsForTarget")
	var out []models.CalendarEvent
	for _, e := range f.events {
		switch target {
		case storage.EntityGoal:
			if e.GoalID == id {
				out = append(out, e)
			}
		case storage.EntityMilestone:
			if e.MilestoneID == id {
				out = append(out, e)
			}
		case storage.EntityTask:
			if e.TaskID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateCalendarEvent(p models.CalendarEventPatch) error {
	f.record("UpdateCalendarEvent")
	e, ok := f.events[p.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	f.events[p.ID] = e
	return nil
}

func (f *fakeStore) DeleteCalendarEvent(id string) error {
	f.record("DeleteCalendarEvent")
	if _, ok := f.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeStore) AddChat(c models.Chat) error {
	f.record("AddChat")
	f.chats[c.ID] = c
	return nil
}

func (f *fakeStore) GetChat(id string) (models.Chat, error) {
	f.record("GetChat")
	c, ok := f.chats[id]
	if !ok {
		return models.Chat{}, storage.ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) GetAllChats(owner string) ([]models.Chat, error) {
	f.record("GetAllChats")
	var out []models.Chat
	for _, c := range f.chats {
		if c.Owner == owner {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateChat(p models.ChatPatch) error {
	f.record("UpdateChat")
	c, ok := f.chats[p.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Messages != nil {
		c.Messages = *p.Messages
	}
	f.chats[p.ID] = c
	return nil
}

func (f *fakeStore) DeleteChat(id string) error {
	f.record("DeleteChat")
	if _, ok := f.chats[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.chats, id)
	return nil
}

func (f *fakeStore) Transact(ops []storage.Op) error {
	f.record("Transact")
	f.mu.Lock()
	f.batches = append(f.batches, ops)
	err := f.transactErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	for _, op := range ops {
		switch op.Entity {
		case storage.EntityGoal:
			delete(f.goals, op.ID)
		case storage.EntityMilestone:
			delete(f.milestones, op.ID)
		case storage.EntityTask:
			delete(f.tasks, op.ID)
		case storage.EntityNotification:
			delete(f.notifications, op.ID)
		case storage.EntityCalendarEvent:
			delete(f.events, op.ID)
		case storage.EntityChat:
			delete(f.chats, op.ID)
		}
	}
	return nil
}

func (f *fakeStore) Watch() <-chan storage.Change {
	return make(chan storage.Change)
}

func (f *fakeStore) GetConfigPath() string { return "fake" }

var _ storage.Provider = (*fakeStore)(nil)

// fakeCalendar records external calendar calls and can be made to fail.
type fakeCalendar struct {
	mu      sync.Mutex
	created []string
	updated []string
	deleted []string
	err     error
	nextID  int
}

func (f *fakeCalendar) CreateEvent(event models.CalendarEvent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.nextID++
	id := fmt.Sprintf("ext-%d", f.nextID)
	f.created = append(f.created, id)
	return id, nil
}

func (f *fakeCalendar) UpdateEvent(eventID string, event models.CalendarEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, eventID)
	return nil
}

func (f *fakeCalendar) DeleteEvent(eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

func (f *fakeCalendar) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// fakeScheduler records scheduler calls and can be made to fail.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []string
	cancelled []string
	err       error
	nextID    int
}

func (f *fakeScheduler) Schedule(n models.Notification) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.nextID++
	id := fmt.Sprintf("sched-%d", f.nextID)
	f.scheduled = append(f.scheduled, id)
	return id, nil
}

func (f *fakeScheduler) Cancel(scheduledID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, scheduledID)
	return nil
}

func (f *fakeScheduler) CancelAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, "*")
	return nil
}

func (f *fakeScheduler) cancelledIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cancelled...)
}
