package models

import (
	"fmt"
	"time"
)

// Chat is a saved conversation thread. Message bodies live with the chat as an
// ordered list; the transport that fills them is out of scope here.
type Chat struct {
	ID        string        `json:"id"`
	Owner     string        `json:"owner"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}

type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatPatch struct {
	ID       string         `json:"id"`
	Title    *string        `json:"title,omitempty"`
	Messages *[]ChatMessage `json:"messages,omitempty"`
}

func (c Chat) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("owner is required")
	}
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

func (p ChatPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return fmt.Errorf("title cannot be cleared")
	}
	return nil
}
