package storage

import "github.com/kestrelapps/lodestar/internal/models"

// EntityType identifies one of the flat per-entity tables in the store.
type EntityType string

const (
	EntityGoal          EntityType = "goal"
	EntityMilestone     EntityType = "milestone"
	EntityTask          EntityType = "task"
	EntityNotification  EntityType = "notification"
	EntityCalendarEvent EntityType = "calendar_event"
	EntityChat          EntityType = "chat"
)

// OpKind is the kind of operation inside a Transact batch.
type OpKind string

const (
	OpDelete OpKind = "delete"
)

// Op is a single operation inside an atomic batch.
type Op struct {
	Kind   OpKind
	Entity EntityType
	ID     string
}

// Change describes a mutation that subscribers observe through Watch.
type Change struct {
	Entity EntityType
	ID     string
	Kind   string // "create", "update" or "delete"
}

// Provider is the persistence boundary. Relationships between entities are by
// foreign-key id over flat tables; the relationship queries below are the only
// joins this module needs. Transact applies all operations in one database
// transaction or none of them.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	GetAllGoals() ([]models.Goal, error)
	UpdateGoal(models.GoalPatch) error
	DeleteGoal(id string) error

	// Milestones
	AddMilestone(models.Milestone) error
	GetMilestone(id string) (models.Milestone, error)
	GetAllMilestones() ([]models.Milestone, error)
	GetMilestonesForGoal(goalID string) ([]models.Milestone, error)
	UpdateMilestone(models.MilestonePatch) error
	DeleteMilestone(id string) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	GetTasksForMilestone(milestoneID string) ([]models.Task, error)
	UpdateTask(models.TaskPatch) error
	DeleteTask(id string) error

	// Notifications
	AddNotification(models.Notification) error
	GetNotification(id string) (models.Notification, error)
	GetAllNotifications(userID string) ([]models.Notification, error)
	GetNotificationsForTarget(target EntityType, id string) ([]models.Notification, error)
	UpdateNotification(models.NotificationPatch) error
	DeleteNotification(id string) error

	// Calendar events
	AddCalendarEvent(models.CalendarEvent) error
	GetCalendarEvent(id string) (models.CalendarEvent, error)
	GetAllCalendarEvents() ([]models.CalendarEvent, error)
	GetEventsForTarget(target EntityType, id string) ([]models.CalendarEvent, error)
	UpdateCalendarEvent(models.CalendarEventPatch) error
	DeleteCalendarEvent(id string) error

	// Chats
	AddChat(models.Chat) error
	GetChat(id string) (models.Chat, error)
	GetAllChats(owner string) ([]models.Chat, error)
	UpdateChat(models.ChatPatch) error
	DeleteChat(id string) error

	// Transact applies the batch atomically.
	Transact(ops []Op) error

	// Watch returns a stream of change notifications. The channel is never
	// closed by the store; sends are best-effort and dropped when the
	// subscriber falls behind.
	Watch() <-chan Change

	// Utils
	GetConfigPath() string
}
