package constants

const (
	AppName            = "lodestar"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/lodestar/lodestar.db"
	Version            = "v0.3.0"

	// Title length bounds enforced by entity validation
	MinTitleLength = 3
	MaxTitleLength = 200

	// Bridge constants for the calendar/notification webhook apps
	CalendarLockfileName    = "lodestar-calendar.lock"
	SchedulerLockfileName   = "lodestar-scheduler.lock"
	BridgeAppIdentifier     = "com.kestrelapps.lodestar"
	NotificationDurationMs  = 5000
	CalendarBridgeProcess   = "lodestar-calendar"
	SchedulerBridgeProcess  = "lodestar-scheduler"
	DefaultCalendarID       = "primary"
	GenericFailureMessage   = "Something went wrong. Please try again."
)
