package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kestrelapps/lodestar/internal/models"
)

const notificationColumns = `id, user_id, type, title, message, goal_id,
	milestone_id, task_id, read, created_at, scheduled_for, scheduled_id`

func (s *sqlStore) AddNotification(n models.Notification) error {
	var scheduledFor any
	if n.ScheduledFor != nil {
		scheduledFor = fmtTime(*n.ScheduledFor)
	}
	_, err := s.exec(`
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, string(n.Type), n.Title, n.Message, n.GoalID,
		n.MilestoneID, n.TaskID, n.Read, fmtTime(n.CreatedAt), scheduledFor,
		n.ScheduledID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	s.hub.notify(Change{Entity: EntityNotification, ID: n.ID, Kind: "create"})
	return nil
}

func scanNotification(row interface{ Scan(...any) error }) (models.Notification, error) {
	var n models.Notification
	var typ, createdAt string
	var scheduledFor sql.NullString

	err := row.Scan(
		&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &n.GoalID,
		&n.MilestoneID, &n.TaskID, &n.Read, &createdAt, &scheduledFor, &n.ScheduledID,
	)
	if err != nil {
		return models.Notification{}, err
	}

	n.Type = models.NotificationType(typ)
	n.CreatedAt = parseTime(createdAt)
	n.ScheduledFor = nullableTime(scheduledFor)
	return n, nil
}

func (s *sqlStore) GetNotification(id string) (models.Notification, error) {
	n, err := scanNotification(s.queryRow("SELECT "+notificationColumns+" FROM notifications WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Notification{}, fmt.Errorf("notification %s: %w", id, ErrNotFound)
		}
		return models.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

func (s *sqlStore) notificationList(query string, args ...any) ([]models.Notification, error) {
	rows, err := s.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *sqlStore) GetAllNotifications(userID string) ([]models.Notification, error) {
	if userID == "" {
		return s.notificationList("SELECT " + notificationColumns + " FROM notifications ORDER BY created_at DESC")
	}
	return s.notificationList("SELECT "+notificationColumns+" FROM notifications WHERE user_id = ? ORDER BY created_at DESC", userID)
}

func (s *sqlStore) GetNotificationsForTarget(target EntityType, id string) ([]models.Notification, error) {
	col, err := targetColumn(target)
	if err != nil {
		return nil, err
	}
	return s.notificationList("SELECT "+notificationColumns+" FROM notifications WHERE "+col+" = ?", id)
}

func (s *sqlStore) UpdateNotification(p models.NotificationPatch) error {
	var set patchSet
	if p.Type != nil {
		set.set("type", string(*p.Type))
	}
	if p.Title != nil {
		set.set("title", *p.Title)
	}
	if p.Message != nil {
		set.set("message", *p.Message)
	}
	if p.Read != nil {
		set.set("read", *p.Read)
	}
	if p.ScheduledFor != nil {
		set.set("scheduled_for", fmtTime(*p.ScheduledFor))
	}
	if p.ScheduledID != nil {
		set.set("scheduled_id", *p.ScheduledID)
	}
	return s.applyPatch(EntityNotification, "notifications", &set, p.ID)
}

func (s *sqlStore) DeleteNotification(id string) error {
	return s.execDelete(EntityNotification, "notifications", id)
}
