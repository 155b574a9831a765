package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kestrelapps/lodestar/internal/models"
)

const milestoneColumns = `id, goal_id, title, description, percentage, completed,
	status, priority, deadline, created_at, updated_at, depends_on,
	estimated_hours, actual_hours, calendar_event_id, reminders`

func (s *sqlStore) AddMilestone(m models.Milestone) error {
	_, err := s.exec(`
		INSERT INTO milestones (`+milestoneColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.GoalID, m.Title, m.Description, m.Percentage, m.Completed,
		string(m.Status), string(m.Priority), m.Deadline, fmtTime(m.CreatedAt), nil,
		marshalJSON(m.DependsOn), m.EstimatedHours, m.ActualHours,
		m.CalendarEventID, marshalJSON(m.Reminders),
	)
	if err != nil {
		return fmt.Errorf("failed to insert milestone: %w", err)
	}
	s.hub.notify(Change{Entity: EntityMilestone, ID: m.ID, Kind: "create"})
	return nil
}

func scanMilestone(row interface{ Scan(...any) error }) (models.Milestone, error) {
	var m models.Milestone
	var status, priority, dependsOn, reminders, createdAt string
	var updatedAt sql.NullString

	err := row.Scan(
		&m.ID, &m.GoalID, &m.Title, &m.Description, &m.Percentage, &m.Completed,
		&status, &priority, &m.Deadline, &createdAt, &updatedAt, &dependsOn,
		&m.EstimatedHours, &m.ActualHours, &m.CalendarEventID, &reminders,
	)
	if err != nil {
		return models.Milestone{}, err
	}

	m.Status = models.GoalStatus(status)
	m.Priority = models.Priority(priority)
	m.DependsOn = unmarshalStrings(dependsOn)
	m.Reminders = unmarshalStrings(reminders)
	m.CreatedAt = parseTime(createdAt)
	m.UpdatedAt = nullableTime(updatedAt)
	return m, nil
}

func (s *sqlStore) GetMilestone(id string) (models.Milestone, error) {
	m, err := scanMilestone(s.queryRow("SELECT "+milestoneColumns+" FROM milestones WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Milestone{}, fmt.Errorf("milestone %s: %w", id, ErrNotFound)
		}
		return models.Milestone{}, fmt.Errorf("failed to get milestone: %w", err)
	}
	return m, nil
}

func (s *sqlStore) milestoneList(query string, args ...any) ([]models.Milestone, error) {
	rows, err := s.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones: %w", err)
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

func (s *sqlStore) GetAllMilestones() ([]models.Milestone, error) {
	return s.milestoneList("SELECT " + milestoneColumns + " FROM milestones ORDER BY deadline")
}

func (s *sqlStore) GetMilestonesForGoal(goalID string) ([]models.Milestone, error) {
	return s.milestoneList("SELECT "+milestoneColumns+" FROM milestones WHERE goal_id = ? ORDER BY deadline", goalID)
}

func (s *sqlStore) UpdateMilestone(p models.MilestonePatch) error {
	var set patchSet
	if p.GoalID != nil {
		set.set("goal_id", *p.GoalID)
	}
	if p.Title != nil {
		set.set("title", *p.Title)
	}
	if p.Description != nil {
		set.set("description", *p.Description)
	}
	if p.Percentage != nil {
		set.set("percentage", *p.Percentage)
	}
	if p.Completed != nil {
		set.set("completed", *p.Completed)
	}
	if p.Status != nil {
		set.set("status", string(*p.Status))
	}
	if p.Priority != nil {
		set.set("priority", string(*p.Priority))
	}
	if p.Deadline != nil {
		set.set("deadline", *p.Deadline)
	}
	if p.DependsOn != nil {
		set.set("depends_on", marshalJSON(*p.DependsOn))
	}
	if p.EstimatedHours != nil {
		set.set("estimated_hours", *p.EstimatedHours)
	}
	if p.ActualHours != nil {
		set.set("actual_hours", *p.ActualHours)
	}
	if p.CalendarEventID != nil {
		set.set("calendar_event_id", *p.CalendarEventID)
	}
	if p.Reminders != nil {
		set.set("reminders", marshalJSON(*p.Reminders))
	}
	return s.applyPatch(EntityMilestone, "milestones", &set, p.ID)
}

func (s *sqlStore) DeleteMilestone(id string) error {
	return s.execDelete(EntityMilestone, "milestones", id)
}
