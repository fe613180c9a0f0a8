package bot

import (
	"fmt"
	"strings"

	"fanhub/models"
)

const progressBarLength = 20

// renderProgressBar draws the XP bar shown on the profile screen.
func renderProgressBar(xp, xpToNext int) string {
	if xpToNext <= 0 {
		xpToNext = 1
	}
	if xp < 0 {
		xp = 0
	}
	if xp > xpToNext {
		xp = xpToNext
	}

	filled := xp * progressBarLength / xpToNext
	return strings.Repeat("▓", filled) + strings.Repeat("░", progressBarLength-filled)
}

// formatProfile renders the /profile screen.
func formatProfile(user *models.User) string {
	platforms := "None"
	if len(user.ConnectedPlatforms) > 0 {
		platforms = strings.Join(user.ConnectedPlatforms, ", ")
	}

	percent := 0
	if user.XPToNextLevel > 0 {
		percent = user.XP * 100 / user.XPToNextLevel
	}

	return fmt.Sprintf(
		"👤 Profile of %s\n\n"+
			"📊 Level: %d\n"+
			"⭐ XP: %d / %d\n"+
			"[%s] %d%%\n\n"+
			"🎯 Missions completed: %d\n"+
			"📝 Surveys answered: %d\n"+
			"🌐 Social platforms: %s\n"+
			"📅 Member since: %s\n\n"+
			"📈 Engagement:\n"+
			"• Interactions: %d\n"+
			"• Missions: %d\n"+
			"• Surveys: %d\n"+
			"• Shares: %d",
		user.Username,
		user.Level,
		user.XP, user.XPToNextLevel,
		renderProgressBar(user.XP, user.XPToNextLevel), percent,
		len(user.MissionsCompleted),
		len(user.SurveysCompleted),
		platforms,
		user.MemberSince.Format("2006-01-02"),
		user.Engagement.BotInteractions,
		user.Engagement.MissionCompletions,
		user.Engagement.SurveyCompletions,
		user.Engagement.SocialShares,
	)
}

// formatPosts renders a list of stored posts for the news screens.
func formatPosts(header string, posts []models.Post) string {
	if len(posts) == 0 {
		return header + "\n\nNothing here yet, check back soon."
	}

	var b strings.Builder
	b.WriteString(header)
	for _, post := range posts {
		b.WriteString("\n\n• ")
		b.WriteString(truncate(post.Text, 200))
		if post.URL != "" {
			b.WriteString("\n  ")
			b.WriteString(post.URL)
		}
	}
	return b.String()
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
