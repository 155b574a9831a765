package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kestrelapps/lodestar/internal/models"
)

const taskColumns = `id, milestone_id, title, description, completed, priority,
	due_date, created_at, updated_at, estimated_hours, actual_hours, tags`

func (s *sqlStore) AddTask(t models.Task) error {
	_, err := s.exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.MilestoneID, t.Title, t.Description, t.Completed, string(t.Priority),
		t.DueDate, fmtTime(t.CreatedAt), nil, t.EstimatedHours, t.ActualHours,
		marshalJSON(t.Tags),
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	s.hub.notify(Change{Entity: EntityTask, ID: t.ID, Kind: "create"})
	return nil
}

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var t models.Task
	var priority, tags, createdAt string
	var updatedAt sql.NullString

	err := row.Scan(
		&t.ID, &t.MilestoneID, &t.Title, &t.Description, &t.Completed, &priority,
		&t.DueDate, &createdAt, &updatedAt, &t.EstimatedHours, &t.ActualHours, &tags,
	)
	if err != nil {
		return models.Task{}, err
	}

	t.Priority = models.Priority(priority)
	t.Tags = unmarshalStrings(tags)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = nullableTime(updatedAt)
	return t, nil
}

func (s *sqlStore) GetTask(id string) (models.Task, error) {
	t, err := scanTask(s.queryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return models.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (s *sqlStore) taskList(query string, args ...any) ([]models.Task, error) {
	rows, err := s.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *sqlStore) GetAllTasks() ([]models.Task, error) {
	return s.taskList("SELECT " + taskColumns + " FROM tasks ORDER BY created_at")
}

func (s *sqlStore) GetTasksForMilestone(milestoneID string) ([]models.Task, error) {
	return s.taskList("SELECT "+taskColumns+" FROM tasks WHERE milestone_id = ? ORDER BY created_at", milestoneID)
}

func (s *sqlStore) UpdateTask(p models.TaskPatch) error {
	var set patchSet
	if p.MilestoneID != nil {
		set.set("milestone_id", *p.MilestoneID)
	}
	if p.Title != nil {
		set.set("title", *p.Title)
	}
	if p.Description != nil {
		set.set("description", *p.Description)
	}
	if p.Completed != nil {
		set.set("completed", *p.Completed)
	}
	if p.Priority != nil {
		set.set("priority", string(*p.Priority))
	}
	if p.DueDate != nil {
		set.set("due_date", *p.DueDate)
	}
	if p.EstimatedHours != nil {
		set.set("estimated_hours", *p.EstimatedHours)
	}
	if p.ActualHours != nil {
		set.set("actual_hours", *p.ActualHours)
	}
	if p.Tags != nil {
		set.set("tags", marshalJSON(*p.Tags))
	}
	return s.applyPatch(EntityTask, "tasks", &set, p.ID)
}

func (s *sqlStore) DeleteTask(id string) error {
	return s.execDelete(EntityTask, "tasks", id)
}
