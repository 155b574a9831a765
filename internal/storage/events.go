package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kestrelapps/lodestar/internal/models"
)

const eventColumns = `id, goal_id, milestone_id, task_id, event_type,
	calendar_id, event_id, title, start_date, end_date, all_day, created_at, updated_at`

func (s *sqlStore) AddCalendarEvent(e models.CalendarEvent) error {
	_, err := s.exec(`
		INSERT INTO calendar_events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.GoalID, e.MilestoneID, e.TaskID, string(e.EventType),
		e.CalendarID, e.EventID, e.Title, fmtTime(e.StartDate), fmtTime(e.EndDate),
		e.AllDay, fmtTime(e.CreatedAt), nil,
	)
	if err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}
	s.hub.notify(Change{Entity: EntityCalendarEvent, ID: e.ID, Kind: "create"})
	return nil
}

func scanEvent(row interface{ Scan(...any) error }) (models.CalendarEvent, error) {
	var e models.CalendarEvent
	var eventType, startDate, endDate, createdAt string
	var updatedAt sql.NullString

	err := row.Scan(
		&e.ID, &e.GoalID, &e.MilestoneID, &e.TaskID, &eventType,
		&e.CalendarID, &e.EventID, &e.Title, &startDate, &endDate,
		&e.AllDay, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.CalendarEvent{}, err
	}

	e.EventType = models.EventType(eventType)
	e.StartDate = parseTime(startDate)
	e.EndDate = parseTime(endDate)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = nullableTime(updatedAt)
	return e, nil
}

func (s *sqlStore) GetCalendarEvent(id string) (models.CalendarEvent, error) {
	e, err := scanEvent(s.queryRow("SELECT "+eventColumns+" FROM calendar_events WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CalendarEvent{}, fmt.Errorf("calendar event %s: %w", id, ErrNotFound)
		}
		return models.CalendarEvent{}, fmt.Errorf("failed to get calendar event: %w", err)
	}
	return e, nil
}

func (s *sqlStore) eventList(query string, args ...any) ([]models.CalendarEvent, error) {
	rows, err := s.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar events: %w", err)
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *sqlStore) GetAllCalendarEvents() ([]models.CalendarEvent, error) {
	return s.eventList("SELECT " + eventColumns + " FROM calendar_events ORDER BY start_date")
}

func (s *sqlStore) GetEventsForTarget(target EntityType, id string) ([]models.CalendarEvent, error) {
	col, err := targetColumn(target)
	if err != nil {
		return nil, err
	}
	return s.eventList("SELECT "+eventColumns+" FROM calendar_events WHERE "+col+" = ?", id)
}

func (s *sqlStore) UpdateCalendarEvent(p models.CalendarEventPatch) error {
	var set patchSet
	if p.EventType != nil {
		set.set("event_type", string(*p.EventType))
	}
	if p.Title != nil {
		set.set("title", *p.Title)
	}
	if p.StartDate != nil {
		set.set("start_date", fmtTime(*p.StartDate))
	}
	if p.EndDate != nil {
		set.set("end_date", fmtTime(*p.EndDate))
	}
	if p.AllDay != nil {
		set.set("all_day", *p.AllDay)
	}
	return s.applyPatch(EntityCalendarEvent, "calendar_events", &set, p.ID)
}

func (s *sqlStore) DeleteCalendarEvent(id string) error {
	return s.execDelete(EntityCalendarEvent, "calendar_events", id)
}
