package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kestrelapps/lodestar/internal/migration"
)

// ErrNotFound is returned when a get/update/delete targets an id that does
// not exist in the store.
var ErrNotFound = errors.New("entity not found")

// sqlStore holds the CRUD implementation shared by the SQLite and PostgreSQL
// backends. The schemas are column-identical; only placeholder syntax differs,
// which rebind papers over.
type sqlStore struct {
	db     *sql.DB
	driver migration.Driver
	hub    watchHub
}

// rebind rewrites ? placeholders to $1..$n for the PostgreSQL driver.
func (s *sqlStore) rebind(query string) string {
	if s.driver != migration.DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStore) exec(query string, args ...any) (sql.Result, error) {
	return s.db.Exec(s.rebind(query), args...)
}

func (s *sqlStore) queryRow(query string, args ...any) *sql.Row {
	return s.db.QueryRow(s.rebind(query), args...)
}

func (s *sqlStore) query(query string, args ...any) (*sql.Rows, error) {
	return s.db.Query(s.rebind(query), args...)
}

func (s *sqlStore) Watch() <-chan Change {
	return s.hub.subscribe()
}

// execDelete runs a single-row delete and maps zero affected rows to
// ErrNotFound.
func (s *sqlStore) execDelete(entity EntityType, table, id string) error {
	res, err := s.exec("DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	s.hub.notify(Change{Entity: entity, ID: id, Kind: "delete"})
	return nil
}

// Transact applies all operations inside a single database transaction.
func (s *sqlStore) Transact(ops []Op) error {
	if len(ops) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, op := range ops {
		if op.Kind != OpDelete {
			return fmt.Errorf("unsupported batch operation: %q", op.Kind)
		}
		table, err := tableFor(op.Entity)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(s.rebind("DELETE FROM "+table+" WHERE id = ?"), op.ID); err != nil {
			return fmt.Errorf("failed to delete %s %s: %w", op.Entity, op.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	for _, op := range ops {
		s.hub.notify(Change{Entity: op.Entity, ID: op.ID, Kind: "delete"})
	}
	return nil
}

func tableFor(entity EntityType) (string, error) {
	switch entity {
	case EntityGoal:
		return "goals", nil
	case EntityMilestone:
		return "milestones", nil
	case EntityTask:
		return "tasks", nil
	case EntityNotification:
		return "notifications", nil
	case EntityCalendarEvent:
		return "calendar_events", nil
	case EntityChat:
		return "chats", nil
	}
	return "", fmt.Errorf("unknown entity type: %q", entity)
}

// targetColumn maps a referenced entity type to the foreign-key column used by
// notifications and calendar_events.
func targetColumn(target EntityType) (string, error) {
	switch target {
	case EntityGoal:
		return "goal_id", nil
	case EntityMilestone:
		return "milestone_id", nil
	case EntityTask:
		return "task_id", nil
	}
	return "", fmt.Errorf("entity type %q cannot be a notification/event target", target)
}

// patchSet accumulates SET clauses for a sparse update.
type patchSet struct {
	cols []string
	args []any
}

func (p *patchSet) set(col string, v any) {
	p.cols = append(p.cols, col+" = ?")
	p.args = append(p.args, v)
}

func (p *patchSet) empty() bool { return len(p.cols) == 0 }

// apply runs the accumulated update against one row, stamping updated_at.
func (s *sqlStore) applyPatch(entity EntityType, table string, p *patchSet, id string) error {
	p.set("updated_at", fmtTime(time.Now()))
	query := "UPDATE " + table + " SET " + strings.Join(p.cols, ", ") + " WHERE id = ?"
	args := append(p.args, id)

	res, err := s.exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	s.hub.notify(Change{Entity: entity, ID: id, Kind: "update"})
	return nil
}

// JSON-encoded TEXT columns hold the slice-valued fields.

func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalStrings(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t := parseTime(s.String)
	return &t
}
