package bot

import (
	"context"
	"log"

	"fanhub/services"
	"fanhub/websocket"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Deps carries the services the bot depends on. Everything is injected at
// construction; handlers never reach for ambient state.
type Deps struct {
	Users     *services.UserService
	Missions  *services.MissionService
	Surveys   *services.SurveyService
	News      *services.NewsService
	Players   *services.PlayerService
	Hub       *websocket.EventHub
	TeamName  string
	NewsLimit int
}

// Bot is the chat-platform front end: commands, the interactive menu and
// the survey conversation.
type Bot struct {
	api      *tgbotapi.BotAPI
	deps     Deps
	sessions *sessionStore
}

func New(api *tgbotapi.BotAPI, deps Deps) *Bot {
	if deps.NewsLimit <= 0 {
		deps.NewsLimit = 5
	}
	return &Bot{
		api:      api,
		deps:     deps,
		sessions: newSessionStore(),
	}
}

// Run polls for updates until the context is canceled. Each update is
// handled on its own goroutine; user-state mutation goes through the
// store's atomic document updates, so concurrent updates for different
// users are safe.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)
	log.Printf("Bot polling as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}
