package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kestrelapps/lodestar/internal/models"
)

const goalColumns = `id, title, description, status, priority, category, tags,
	start_date, target_end_date, actual_end_date, created_at, updated_at,
	overall_progress, owner, budget, estimated_total_hours, actual_total_hours, calendar_id`

func (s *sqlStore) AddGoal(g models.Goal) error {
	_, err := s.exec(`
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, g.Description, string(g.Status), string(g.Priority), g.Category,
		marshalJSON(g.Tags), g.StartDate, g.TargetEndDate, g.ActualEndDate,
		fmtTime(g.CreatedAt), nil, g.OverallProgress, g.Owner, g.Budget,
		g.EstimatedTotalHours, g.ActualTotalHours, g.CalendarID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	s.hub.notify(Change{Entity: EntityGoal, ID: g.ID, Kind: "create"})
	return nil
}

func scanGoal(row interface{ Scan(...any) error }) (models.Goal, error) {
	var g models.Goal
	var status, priority, tags, createdAt string
	var updatedAt sql.NullString

	err := row.Scan(
		&g.ID, &g.Title, &g.Description, &status, &priority, &g.Category, &tags,
		&g.StartDate, &g.TargetEndDate, &g.ActualEndDate, &createdAt, &updatedAt,
		&g.OverallProgress, &g.Owner, &g.Budget, &g.EstimatedTotalHours,
		&g.ActualTotalHours, &g.CalendarID,
	)
	if err != nil {
		return models.Goal{}, err
	}

	g.Status = models.GoalStatus(status)
	g.Priority = models.Priority(priority)
	g.Tags = unmarshalStrings(tags)
	g.CreatedAt = parseTime(createdAt)
	g.UpdatedAt = nullableTime(updatedAt)
	return g, nil
}

func (s *sqlStore) GetGoal(id string) (models.Goal, error) {
	g, err := scanGoal(s.queryRow("SELECT "+goalColumns+" FROM goals WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Goal{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}
		return models.Goal{}, fmt.Errorf("failed to get goal: %w", err)
	}
	return g, nil
}

func (s *sqlStore) GetAllGoals() ([]models.Goal, error) {
	rows, err := s.query("SELECT " + goalColumns + " FROM goals ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *sqlStore) UpdateGoal(p models.GoalPatch) error {
	var set patchSet
	if p.Title != nil {
		set.set("title", *p.Title)
	}
	if p.Description != nil {
		set.set("description", *p.Description)
	}
	if p.Status != nil {
		set.set("status", string(*p.Status))
	}
	if p.Priority != nil {
		set.set("priority", string(*p.Priority))
	}
	if p.Category != nil {
		set.set("category", *p.Category)
	}
	if p.Tags != nil {
		set.set("tags", marshalJSON(*p.Tags))
	}
	if p.StartDate != nil {
		set.set("start_date", *p.StartDate)
	}
	if p.TargetEndDate != nil {
		set.set("target_end_date", *p.TargetEndDate)
	}
	if p.ActualEndDate != nil {
		set.set("actual_end_date", *p.ActualEndDate)
	}
	if p.OverallProgress != nil {
		set.set("overall_progress", *p.OverallProgress)
	}
	if p.Budget != nil {
		set.set("budget", *p.Budget)
	}
	if p.EstimatedTotalHours != nil {
		set.set("estimated_total_hours", *p.EstimatedTotalHours)
	}
	if p.ActualTotalHours != nil {
		set.set("actual_total_hours", *p.ActualTotalHours)
	}
	if p.CalendarID != nil {
		set.set("calendar_id", *p.CalendarID)
	}
	return s.applyPatch(EntityGoal, "goals", &set, p.ID)
}

func (s *sqlStore) DeleteGoal(id string) error {
	return s.execDelete(EntityGoal, "goals", id)
}
