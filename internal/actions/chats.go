package actions

import (
	errs "github.com/kestrelapps/lodestar/internal/errors"
	"github.com/kestrelapps/lodestar/internal/logger"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/storage"
)

type ChatActions struct {
	store storage.Provider
}

func NewChatActions(store storage.Provider) *ChatActions {
	return &ChatActions{store: store}
}

func (a *ChatActions) Create(chat models.Chat) (models.Chat, error) {
	if err := chat.Validate(); err != nil {
		return models.Chat{}, validationErr("chat", err)
	}
	if chat.ID == "" {
		chat.ID = newID()
	}
	chat.CreatedAt = nowFunc()
	chat.UpdatedAt = nil
	if err := a.store.AddChat(chat); err != nil {
		return models.Chat{}, storeErr("add chat", err)
	}
	logger.Info("created chat", "id", chat.ID, "title", chat.Title)
	return chat, nil
}

func (a *ChatActions) Update(patch models.ChatPatch) error {
	if patch.ID == "" {
		return &errs.MissingIDError{Entity: "chat"}
	}
	if err := patch.Validate(); err != nil {
		return validationErr("chat", err)
	}
	if err := a.store.UpdateChat(patch); err != nil {
		return storeErr("update chat", err)
	}
	logger.Debug("updated chat", "id", patch.ID)
	return nil
}

// AppendMessage adds a message to the end of a chat's thread.
func (a *ChatActions) AppendMessage(chatID, role, content string) error {
	if chatID == "" {
		return &errs.MissingIDError{Entity: "chat"}
	}
	chat, err := a.store.GetChat(chatID)
	if err != nil {
		return storeErr("get chat", err)
	}
	messages := append(chat.Messages, models.ChatMessage{
		Role:      role,
		Content:   content,
		CreatedAt: nowFunc(),
	})
	return a.Update(models.ChatPatch{ID: chatID, Messages: &messages})
}

func (a *ChatActions) Delete(id string) error {
	if id == "" {
		return &errs.MissingIDError{Entity: "chat"}
	}
	if err := a.store.DeleteChat(id); err != nil {
		return storeErr("delete chat", err)
	}
	logger.Info("deleted chat", "id", id)
	return nil
}

// DeleteBulk removes a set of chats as one atomic store batch. Chats hold no
// external resources.
func (a *ChatActions) DeleteBulk(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return deleteBatch(a.store, storage.EntityChat, ids)
}
