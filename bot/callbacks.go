package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Error answering callback: %v", err)
	}
	if query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	if surveyID, ok := strings.CutPrefix(query.Data, surveyCallbackPrefix); ok {
		b.startSurvey(ctx, chatID, query.From, surveyID)
		return
	}

	state, playerID, isPlayer := ParseMenuCallback(query.Data)
	if isPlayer {
		b.showPlayerNews(ctx, chatID, messageID, playerID)
		return
	}
	b.showMenu(ctx, chatID, messageID, state)
}

func (b *Bot) startSurvey(ctx context.Context, chatID int64, from *tgbotapi.User, surveyID string) {
	survey, err := b.deps.Surveys.Get(ctx, surveyID)
	if err != nil {
		log.Printf("Error fetching survey %s: %v", surveyID, err)
		b.reply(chatID, "That survey is not available anymore.")
		return
	}
	if !survey.Active || len(survey.Questions) == 0 {
		b.reply(chatID, "That survey is not available anymore.")
		return
	}

	user, err := b.deps.Users.Get(ctx, from.ID)
	if err != nil {
		b.reply(chatID, "❌ Profile not found. Use /start to create one.")
		return
	}
	if user.Level < survey.Requirements.MinLevel {
		b.reply(chatID, fmt.Sprintf("🔒 This survey unlocks at level %d.", survey.Requirements.MinLevel))
		return
	}

	b.sessions.start(chatID, survey)
	b.reply(chatID, fmt.Sprintf("📝 %s\n\n%s\n\nAnswer the questions below, or /cancel to stop.",
		survey.Title, survey.Description))
	b.reply(chatID, promptFor(survey.Questions[0], 0, len(survey.Questions)))
}

func (b *Bot) showMenu(ctx context.Context, chatID int64, messageID int, state MenuState) {
	switch state {
	case MenuHome:
		b.edit(chatID, messageID, "🌟 Pick an option below:", b.mainMenuKeyboard())

	case MenuNews:
		b.edit(chatID, messageID, "📰 News\n\nPick a category:", b.newsMenuKeyboard())

	case MenuTeamNews:
		posts, err := b.deps.News.LatestTeamNews(ctx, b.deps.NewsLimit)
		if err != nil {
			log.Printf("Error fetching team news: %v", err)
			posts = nil
		}
		b.edit(chatID, messageID, formatPosts("📰 Latest team news:", posts), b.backKeyboard(MenuNews))

	case MenuPlayerNews:
		b.edit(chatID, messageID, "📸 Player news\n\nPick a player:", b.playerMenuKeyboard())

	case MenuHelp:
		b.edit(chatID, messageID, helpText(), b.backKeyboard(MenuHome))

	default:
		// Everything not built yet lands here on purpose.
		b.edit(chatID, messageID, "🔧 Under construction…", b.backKeyboard(MenuHome))
	}
}

func (b *Bot) showPlayerNews(ctx context.Context, chatID int64, messageID int, playerID string) {
	posts, err := b.deps.News.LatestPlayerNews(ctx, playerID, b.deps.NewsLimit)
	if err != nil {
		log.Printf("Error fetching news for player %s: %v", playerID, err)
		posts = nil
	}
	header := fmt.Sprintf("📸 Latest from %s:", playerID)
	b.edit(chatID, messageID, formatPosts(header, posts), b.backKeyboard(MenuPlayerNews))
}

func (b *Bot) edit(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup))
}

func (b *Bot) mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Line-up", MenuLineup.CallbackData()),
			tgbotapi.NewInlineKeyboardButtonData("📰 News", MenuNews.CallbackData()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💬 Community", MenuCommunity.CallbackData()),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Achievements", MenuAchievements.CallbackData()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Next matches", MenuNextMatches.CallbackData()),
			tgbotapi.NewInlineKeyboardButtonData("🛍 Store", MenuStore.CallbackData()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", MenuSettings.CallbackData()),
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", MenuHelp.CallbackData()),
		),
	)
}

func (b *Bot) newsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Team", MenuTeamNews.CallbackData()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Players", MenuPlayerNews.CallbackData()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", MenuHome.CallbackData()),
		),
	)
}

func (b *Bot) playerMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, playerID := range b.deps.Players.IDs() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(playerID, playerCallbackPrefix+playerID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back", MenuNews.CallbackData()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) backKeyboard(state MenuState) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", state.CallbackData()),
		),
	)
}
