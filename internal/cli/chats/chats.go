package chats

import (
	"fmt"
	"sort"

	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/models"
	"github.com/kestrelapps/lodestar/internal/outcome"
	"github.com/kestrelapps/lodestar/internal/utils"
)

type ChatNewCmd struct {
	Title string `arg:"" help:"Chat title."`
}

func (c *ChatNewCmd) Run(ctx *cli.Context) error {
	chat, err := ctx.Chats.Create(models.Chat{
		Owner: ctx.Owner,
		Title: c.Title,
	})
	ctx.Reporter.Report(outcome.ForChatCreated(chat, err)...)
	if err != nil {
		return err
	}
	fmt.Printf("ID: %s\n", chat.ID)
	return nil
}

type ChatListCmd struct{}

func (c *ChatListCmd) Run(ctx *cli.Context) error {
	chats, err := ctx.Store.GetAllChats(ctx.Owner)
	if err != nil {
		return err
	}
	if len(chats) == 0 {
		fmt.Println("No chats. Start one with 'lodestar chat new'.")
		return nil
	}
	sort.Slice(chats, func(i, j int) bool {
		return chats[i].CreatedAt.After(chats[j].CreatedAt)
	})
	for _, chat := range chats {
		fmt.Printf("%-36s  %3d message(s)  %s\n", chat.ID, len(chat.Messages), utils.Truncate(chat.Title, 48))
	}
	return nil
}

type ChatShowCmd struct {
	ID string `arg:"" help:"Chat ID to show."`
}

func (c *ChatShowCmd) Run(ctx *cli.Context) error {
	chat, err := ctx.Store.GetChat(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find chat with ID %s: %w", c.ID, err)
	}
	fmt.Printf("%s\n\n", chat.Title)
	for _, msg := range chat.Messages {
		fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
	}
	return nil
}

type ChatSayCmd struct {
	ID      string `arg:"" help:"Chat ID to append to."`
	Message string `arg:"" help:"Message text."`
}

func (c *ChatSayCmd) Run(ctx *cli.Context) error {
	err := ctx.Chats.AppendMessage(c.ID, "user", c.Message)
	ctx.Reporter.Report(outcome.ForUpdate("chat", c.ID, err)...)
	return err
}

type ChatDeleteCmd struct {
	ID string `arg:"" help:"Chat ID to delete."`
}

func (c *ChatDeleteCmd) Run(ctx *cli.Context) error {
	err := ctx.Chats.Delete(c.ID)
	ctx.Reporter.Report(outcome.ForDelete("chat", c.ID, err)...)
	return err
}
