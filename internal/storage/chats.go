package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kestrelapps/lodestar/internal/models"
)

const chatColumns = `id, owner, title, messages, created_at, updated_at`

func (s *sqlStore) AddChat(c models.Chat) error {
	_, err := s.exec(`
		INSERT INTO chats (`+chatColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Owner, c.Title, marshalJSON(c.Messages), fmtTime(c.CreatedAt), nil,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat: %w", err)
	}
	s.hub.notify(Change{Entity: EntityChat, ID: c.ID, Kind: "create"})
	return nil
}

func scanChat(row interface{ Scan(...any) error }) (models.Chat, error) {
	var c models.Chat
	var messages, createdAt string
	var updatedAt sql.NullString

	err := row.Scan(&c.ID, &c.Owner, &c.Title, &messages, &createdAt, &updatedAt)
	if err != nil {
		return models.Chat{}, err
	}

	if messages != "" && messages != "[]" {
		if err := json.Unmarshal([]byte(messages), &c.Messages); err != nil {
			return models.Chat{}, fmt.Errorf("failed to decode chat messages: %w", err)
		}
	}
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = nullableTime(updatedAt)
	return c, nil
}

func (s *sqlStore) GetChat(id string) (models.Chat, error) {
	c, err := scanChat(s.queryRow("SELECT "+chatColumns+" FROM chats WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Chat{}, fmt.Errorf("chat %s: %w", id, ErrNotFound)
		}
		return models.Chat{}, fmt.Errorf("failed to get chat: %w", err)
	}
	return c, nil
}

func (s *sqlStore) GetAllChats(owner string) ([]models.Chat, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if owner == "" {
		rows, err = s.query("SELECT " + chatColumns + " FROM chats ORDER BY created_at DESC")
	} else {
		rows, err = s.query("SELECT "+chatColumns+" FROM chats WHERE owner = ? ORDER BY created_at DESC", owner)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (s *sqlStore) UpdateChat(p models.ChatPatch) error {
	var set patchSet
	if p.Title != nil {
		set.set("title", *p.Title)
	}
	if p.Messages != nil {
		set.set("messages", marshalJSON(*p.Messages))
	}
	return s.applyPatch(EntityChat, "chats", &set, p.ID)
}

func (s *sqlStore) DeleteChat(id string) error {
	return s.execDelete(EntityChat, "chats", id)
}
