package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fanhub/db"
	"fanhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUserNotFound is returned when no user document matches a telegram id.
var ErrUserNotFound = errors.New("user not found")

// Engagement metric names accepted by TrackMetric.
const (
	MetricBotInteractions    = "bot_interactions"
	MetricMissionCompletions = "mission_completions"
	MetricSurveyCompletions  = "survey_completions"
	MetricSocialShares       = "social_shares"
)

// XPResult reports the outcome of an experience grant.
type XPResult struct {
	NewXP         int  `json:"newXp"`
	NewLevel      int  `json:"newLevel"`
	LeveledUp     bool `json:"levelUp"`
	PreviousLevel int  `json:"previousLevel"`
}

// UserService manages fan profiles and their progression.
type UserService struct {
	collection *mongo.Collection
}

func NewUserService(database *mongo.Database) *UserService {
	return &UserService{collection: database.Collection(db.UsersCollection)}
}

// GetOrCreate fetches a user by telegram id, creating the document on first
// contact. The bool result reports whether the user was created.
func (s *UserService) GetOrCreate(ctx context.Context, telegramID int64, username string) (*models.User, bool, error) {
	user, err := s.Get(ctx, telegramID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	newUser := models.User{
		TelegramID:         telegramID,
		Username:           username,
		Level:              1,
		XP:                 0,
		XPToNextLevel:      baseXPThreshold,
		MissionsCompleted:  []models.CompletedMission{},
		SurveysCompleted:   []models.CompletedSurvey{},
		ConnectedPlatforms: []string{},
		Demographics:       map[string]interface{}{},
		Preferences:        map[string]interface{}{},
		Engagement:         models.EngagementMetrics{BotInteractions: 1},
		MemberSince:        now,
		LastInteraction:    now,
	}

	result, err := s.collection.InsertOne(ctx, newUser)
	if err != nil {
		// A concurrent first contact may have won the unique-index race.
		if mongo.IsDuplicateKeyError(err) {
			user, err := s.Get(ctx, telegramID)
			return user, false, err
		}
		return nil, false, fmt.Errorf("failed to create user %d: %w", telegramID, err)
	}

	newUser.ID = result.InsertedID.(primitive.ObjectID)
	log.Printf("Created user %d (%s)", telegramID, username)
	return &newUser, true, nil
}

// Get fetches a user by telegram id.
func (s *UserService) Get(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"telegram_id": telegramID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %d: %w", telegramID, err)
	}
	return &user, nil
}

// maxXPAttempts bounds the conditional-update retry loop in AddXP.
const maxXPAttempts = 5

// AddXP grants experience to a user and advances their level along the
// threshold curve. The write is a single conditional update whose filter
// pins the xp value that was read, so concurrent grants to the same user
// never lose experience; on contention the read-compute-write is retried.
// The interaction counter is incremented exactly once per successful call.
func (s *UserService) AddXP(ctx context.Context, telegramID int64, gained int) (*XPResult, error) {
	if gained < 0 {
		return nil, fmt.Errorf("negative xp grant: %d", gained)
	}

	for attempt := 0; attempt < maxXPAttempts; attempt++ {
		user, err := s.Get(ctx, telegramID)
		if err != nil {
			return nil, err
		}

		next, leveledUp, prevLevel := AdvanceProgress(Progress{
			XP:            user.XP,
			Level:         user.Level,
			XPToNextLevel: user.XPToNextLevel,
		}, gained)

		result, err := s.collection.UpdateOne(ctx,
			bson.M{"telegram_id": telegramID, "xp": user.XP, "level": user.Level},
			bson.M{
				"$set": bson.M{
					"xp":               next.XP,
					"level":            next.Level,
					"xp_to_next_level": next.XPToNextLevel,
					"last_interaction": time.Now().UTC(),
				},
				"$inc": bson.M{"engagement_metrics.bot_interactions": 1},
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update xp for user %d: %w", telegramID, err)
		}
		if result.MatchedCount == 0 {
			// Lost the race against a concurrent grant; re-read and retry.
			continue
		}

		return &XPResult{
			NewXP:         next.XP,
			NewLevel:      next.Level,
			LeveledUp:     leveledUp,
			PreviousLevel: prevLevel,
		}, nil
	}

	return nil, fmt.Errorf("xp update for user %d kept conflicting after %d attempts", telegramID, maxXPAttempts)
}

// TrackMetric increments a single engagement counter and refreshes the
// last-interaction timestamp.
func (s *UserService) TrackMetric(ctx context.Context, telegramID int64, metric string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"telegram_id": telegramID},
		bson.M{
			"$inc": bson.M{"engagement_metrics." + metric: 1},
			"$set": bson.M{"last_interaction": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to track metric %s for user %d: %w", metric, telegramID, err)
	}
	return nil
}

// ConnectPlatform adds a social platform to the user's connected set.
func (s *UserService) ConnectPlatform(ctx context.Context, telegramID int64, platform string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"telegram_id": telegramID},
		bson.M{
			"$addToSet": bson.M{"connected_platforms": platform},
			"$set":      bson.M{"last_interaction": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to connect platform %s for user %d: %w", platform, telegramID, err)
	}
	return nil
}

// RecordMissionCompletion appends a mission completion and bumps the
// engagement counters in one atomic document update.
func (s *UserService) RecordMissionCompletion(ctx context.Context, telegramID int64, missionID primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"telegram_id": telegramID},
		bson.M{
			"$push": bson.M{"missions_completed": models.CompletedMission{MissionID: missionID, CompletedAt: now}},
			"$inc": bson.M{
				"engagement_metrics.mission_completions": 1,
				"engagement_metrics.bot_interactions":    1,
			},
			"$set": bson.M{"last_interaction": now},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to record mission %s for user %d: %w", missionID.Hex(), telegramID, err)
	}
	return nil
}

// RecordSurveyCompletion appends a survey completion and bumps the
// engagement counters in one atomic document update.
func (s *UserService) RecordSurveyCompletion(ctx context.Context, telegramID int64, surveyID primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"telegram_id": telegramID},
		bson.M{
			"$push": bson.M{"surveys_completed": models.CompletedSurvey{SurveyID: surveyID, CompletedAt: now}},
			"$inc": bson.M{
				"engagement_metrics.survey_completions": 1,
				"engagement_metrics.bot_interactions":   1,
			},
			"$set": bson.M{"last_interaction": now},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to record survey %s for user %d: %w", surveyID.Hex(), telegramID, err)
	}
	return nil
}

// UpdateDemographics replaces the user's demographic answers.
func (s *UserService) UpdateDemographics(ctx context.Context, telegramID int64, demographics map[string]interface{}) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"telegram_id": telegramID},
		bson.M{
			"$set": bson.M{"demographics": demographics, "last_interaction": time.Now().UTC()},
			"$inc": bson.M{"engagement_metrics.bot_interactions": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to update demographics for user %d: %w", telegramID, err)
	}
	return nil
}

// UpdatePreferences replaces the user's stated preferences.
func (s *UserService) UpdatePreferences(ctx context.Context, telegramID int64, preferences map[string]interface{}) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"telegram_id": telegramID},
		bson.M{
			"$set": bson.M{"preferences": preferences, "last_interaction": time.Now().UTC()},
			"$inc": bson.M{"engagement_metrics.bot_interactions": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to update preferences for user %d: %w", telegramID, err)
	}
	return nil
}

// TopUsers returns the leaderboard: users sorted by level then xp, limited.
func (s *UserService) TopUsers(ctx context.Context, limit int) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "level", Value: -1}, {Key: "xp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return users, nil
}
