package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementMetrics tracks how a user interacts with the bot.
type EngagementMetrics struct {
	BotInteractions    int `bson:"bot_interactions" json:"botInteractions"`
	MissionCompletions int `bson:"mission_completions" json:"missionCompletions"`
	SurveyCompletions  int `bson:"survey_completions" json:"surveyCompletions"`
	SocialShares       int `bson:"social_shares" json:"socialShares"`
}

// CompletedMission records a single mission completion on the user document.
type CompletedMission struct {
	MissionID   primitive.ObjectID `bson:"mission_id" json:"missionId"`
	CompletedAt time.Time          `bson:"completed_at" json:"completedAt"`
}

// CompletedSurvey records a single survey completion on the user document.
type CompletedSurvey struct {
	SurveyID    primitive.ObjectID `bson:"survey_id" json:"surveyId"`
	CompletedAt time.Time          `bson:"completed_at" json:"completedAt"`
}

// User defines a fan profile. Level, XP and XPToNextLevel are kept
// consistent by services.AdvanceProgress; XP never decreases across calls.
type User struct {
	ID                 primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	TelegramID         int64                  `bson:"telegram_id" json:"telegramId"`
	Username           string                 `bson:"username" json:"username"`
	Level              int                    `bson:"level" json:"level"`
	XP                 int                    `bson:"xp" json:"xp"`
	XPToNextLevel      int                    `bson:"xp_to_next_level" json:"xpToNextLevel"`
	MissionsCompleted  []CompletedMission     `bson:"missions_completed" json:"missionsCompleted"`
	SurveysCompleted   []CompletedSurvey      `bson:"surveys_completed" json:"surveysCompleted"`
	ConnectedPlatforms []string               `bson:"connected_platforms" json:"connectedPlatforms"`
	Demographics       map[string]interface{} `bson:"demographics" json:"demographics"`
	Preferences        map[string]interface{} `bson:"preferences" json:"preferences"`
	Engagement         EngagementMetrics      `bson:"engagement_metrics" json:"engagementMetrics"`
	MemberSince        time.Time              `bson:"member_since" json:"memberSince"`
	LastInteraction    time.Time              `bson:"last_interaction" json:"lastInteraction"`
}
