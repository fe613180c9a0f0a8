package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fanhub/models"
	"fanhub/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// XP granted when a user finishes a survey.
const surveyXPReward = 50

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "profile":
		b.handleProfile(ctx, chatID, userID)
	case "missions":
		b.handleMissions(ctx, chatID, userID)
	case "mission":
		b.handleMissionComplete(ctx, msg)
	case "connect":
		b.handleConnect(ctx, msg)
	case "survey":
		b.handleSurveyList(ctx, chatID, userID)
	case "cancel":
		b.sessions.end(chatID)
		b.reply(chatID, "Survey canceled.")
	case "help":
		b.reply(chatID, helpText())
	default:
		b.reply(chatID, "Unknown command. Try /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	username := msg.From.UserName
	if username == "" {
		username = msg.From.FirstName
	}

	user, created, err := b.deps.Users.GetOrCreate(ctx, msg.From.ID, username)
	if err != nil {
		log.Printf("Error in /start for user %d: %v", msg.From.ID, err)
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}
	if !created {
		if err := b.deps.Users.TrackMetric(ctx, user.TelegramID, services.MetricBotInteractions); err != nil {
			log.Printf("Error tracking interaction for user %d: %v", user.TelegramID, err)
		}
	}

	welcome := fmt.Sprintf(
		"👋 Hey %s!\n\nWelcome to the official %s fan bot! 🐯\n\n"+
			"Here you can:\n"+
			"• Complete missions and earn XP 🎯\n"+
			"• Answer exclusive surveys 📝\n"+
			"• Connect your social platforms 🌐\n"+
			"• Track your progress 📊\n\n"+
			"The more you interact, the more XP you earn! 🔥",
		msg.From.FirstName, b.deps.TeamName)

	reply := tgbotapi.NewMessage(chatID, welcome)
	reply.ReplyMarkup = b.mainMenuKeyboard()
	b.send(reply)
}

func (b *Bot) handleProfile(ctx context.Context, chatID, userID int64) {
	user, err := b.deps.Users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			b.reply(chatID, "❌ Profile not found. Use /start to create one.")
			return
		}
		log.Printf("Error fetching profile for user %d: %v", userID, err)
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}
	b.reply(chatID, formatProfile(user))
}

func (b *Bot) handleMissions(ctx context.Context, chatID, userID int64) {
	user, err := b.deps.Users.Get(ctx, userID)
	if err != nil {
		b.reply(chatID, "❌ Profile not found. Use /start to create one.")
		return
	}

	missions, err := b.deps.Missions.AvailableForLevel(ctx, user.Level)
	if err != nil {
		log.Printf("Error fetching missions for user %d: %v", userID, err)
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}
	if len(missions) == 0 {
		b.reply(chatID, "🎯 No missions available for your level yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🎯 Available missions:\n")
	for _, mission := range missions {
		fmt.Fprintf(&sb, "\n• %s (+%d XP)\n  %s\n  Complete with: /mission %s",
			mission.Title, mission.XPReward, mission.Description, mission.ID.Hex())
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleMissionComplete(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	missionID := strings.TrimSpace(msg.CommandArguments())
	if missionID == "" {
		b.reply(chatID, "Usage: /mission <id> — see /missions for the list.")
		return
	}

	result, err := b.deps.Missions.Complete(ctx, msg.From.ID, missionID)
	if err != nil {
		if errors.Is(err, services.ErrMissionNotFound) {
			b.reply(chatID, "❌ Mission not found. See /missions for the list.")
			return
		}
		log.Printf("Error completing mission %s for user %d: %v", missionID, msg.From.ID, err)
		b.reply(chatID, "Could not complete that mission right now.")
		return
	}

	b.deps.Hub.Broadcast(models.EngagementEvent{
		Type:      "mission_completed",
		UserID:    msg.From.ID,
		Username:  msg.From.UserName,
		Timestamp: time.Now().UTC(),
	})
	b.reply(chatID, "✅ Mission completed!")
	b.announceXP(chatID, msg.From, result)
}

func (b *Bot) handleConnect(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	platform := strings.ToLower(strings.TrimSpace(msg.CommandArguments()))
	if platform == "" {
		b.reply(chatID, "Usage: /connect <platform> — e.g. /connect twitter")
		return
	}

	if err := b.deps.Users.ConnectPlatform(ctx, msg.From.ID, platform); err != nil {
		log.Printf("Error connecting platform %s for user %d: %v", platform, msg.From.ID, err)
		b.reply(chatID, "Could not connect that platform right now.")
		return
	}
	b.reply(chatID, fmt.Sprintf("🌐 %s connected to your profile!", platform))
}

func (b *Bot) handleSurveyList(ctx context.Context, chatID, userID int64) {
	user, err := b.deps.Users.Get(ctx, userID)
	if err != nil {
		b.reply(chatID, "❌ Profile not found. Use /start to create one.")
		return
	}

	surveys, err := b.deps.Surveys.ActiveForLevel(ctx, user.Level)
	if err != nil {
		log.Printf("Error fetching surveys for user %d: %v", userID, err)
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}
	if len(surveys) == 0 {
		b.reply(chatID, "📝 No surveys available for your level right now.")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(surveys))
	for _, survey := range surveys {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(survey.Title, surveyCallbackPrefix+survey.ID.Hex()),
		))
	}

	reply := tgbotapi.NewMessage(chatID, "📝 Pick a survey to answer:")
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(reply)
}

// handleMessage feeds plain text into an active survey conversation.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	session, ok := b.sessions.get(chatID)
	if !ok {
		b.reply(chatID, "Use /start for the menu or /help for commands.")
		return
	}

	answers, prompt, err := session.submit(msg.Text)
	if errors.Is(err, errSessionFinished) {
		return
	}
	if err != nil {
		b.reply(chatID, "⚠️ "+err.Error())
		return
	}
	if answers == nil {
		b.reply(chatID, prompt)
		return
	}

	b.finishSurvey(ctx, chatID, msg.From, session.survey, answers)
}

func (b *Bot) finishSurvey(ctx context.Context, chatID int64, from *tgbotapi.User, survey *models.Survey, answers map[string]interface{}) {
	b.sessions.end(chatID)

	if err := b.deps.Surveys.RecordResponse(ctx, survey.ID, from.ID, answers); err != nil {
		log.Printf("Error recording survey response for user %d: %v", from.ID, err)
		b.reply(chatID, "Could not save your answers, please try again later.")
		return
	}
	if err := b.deps.Users.RecordSurveyCompletion(ctx, from.ID, survey.ID); err != nil {
		log.Printf("Error recording survey completion for user %d: %v", from.ID, err)
	}

	if survey.Category == "demographics" {
		if err := b.deps.Users.UpdateDemographics(ctx, from.ID, demographicAnswers(answers)); err != nil {
			log.Printf("Error updating demographics for user %d: %v", from.ID, err)
		}
	}

	b.deps.Hub.Broadcast(models.EngagementEvent{
		Type:      "survey_completed",
		UserID:    from.ID,
		Username:  from.UserName,
		Timestamp: time.Now().UTC(),
	})

	result, err := b.deps.Users.AddXP(ctx, from.ID, surveyXPReward)
	if err != nil {
		log.Printf("Error granting survey XP to user %d: %v", from.ID, err)
		b.reply(chatID, "✅ Thanks! Your answers were recorded.")
		return
	}

	b.reply(chatID, fmt.Sprintf("✅ Thanks! Your answers were recorded. +%d XP", surveyXPReward))
	b.announceXP(chatID, from, result)
}

// demographicAnswers maps the stock demographic survey's answers onto the
// user's demographics document.
func demographicAnswers(answers map[string]interface{}) map[string]interface{} {
	keys := []string{"age", "gender", "region", "fan_time", "favorite_games"}
	out := map[string]interface{}{}
	for i, key := range keys {
		if answer, ok := answers[fmt.Sprintf("%d", i)]; ok {
			out[key] = answer
		}
	}
	return out
}

// announceXP reports a level-up to the user and the dashboard.
func (b *Bot) announceXP(chatID int64, from *tgbotapi.User, result *services.XPResult) {
	if result == nil || !result.LeveledUp {
		return
	}

	b.reply(chatID, fmt.Sprintf("🎉 Level up! You are now level %d.", result.NewLevel))
	b.deps.Hub.Broadcast(models.EngagementEvent{
		Type:      "level_up",
		UserID:    from.ID,
		Username:  from.UserName,
		Level:     result.NewLevel,
		Timestamp: time.Now().UTC(),
	})
}

func helpText() string {
	return "Available commands:\n" +
		"/start — welcome and main menu\n" +
		"/profile — your profile\n" +
		"/missions — available missions\n" +
		"/mission <id> — complete a mission\n" +
		"/survey — answer surveys\n" +
		"/connect <platform> — connect a social platform\n" +
		"/cancel — cancel the current survey\n" +
		"/help — this message"
}
