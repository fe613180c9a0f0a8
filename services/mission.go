package services

import (
	"context"
	"errors"
	"fmt"

	"fanhub/db"
	"fanhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrMissionNotFound is returned when no mission matches the given id.
var ErrMissionNotFound = errors.New("mission not found")

// MissionService manages the mission catalog and completion accounting.
type MissionService struct {
	missions *mongo.Collection
	users    *UserService
}

func NewMissionService(database *mongo.Database, users *UserService) *MissionService {
	return &MissionService{
		missions: database.Collection(db.MissionsCollection),
		users:    users,
	}
}

// AvailableForLevel returns the missions a user of the given level may take,
// easiest requirement first.
func (s *MissionService) AvailableForLevel(ctx context.Context, level int) ([]models.Mission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requirements.min_level", Value: 1}})
	cursor, err := s.missions.Find(ctx, bson.M{"requirements.min_level": bson.M{"$lte": level}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch missions: %w", err)
	}
	defer cursor.Close(ctx)

	missions := []models.Mission{}
	if err := cursor.All(ctx, &missions); err != nil {
		return nil, fmt.Errorf("failed to decode missions: %w", err)
	}
	return missions, nil
}

// Get fetches a mission by its hex id.
func (s *MissionService) Get(ctx context.Context, missionID string) (*models.Mission, error) {
	oid, err := primitive.ObjectIDFromHex(missionID)
	if err != nil {
		return nil, fmt.Errorf("invalid mission id %q: %w", missionID, err)
	}

	var mission models.Mission
	if err := s.missions.FindOne(ctx, bson.M{"_id": oid}).Decode(&mission); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("failed to fetch mission %s: %w", missionID, err)
	}
	return &mission, nil
}

// Complete records a mission completion for the user and grants its XP
// reward. The level gate is checked against the user's current level.
func (s *MissionService) Complete(ctx context.Context, telegramID int64, missionID string) (*XPResult, error) {
	mission, err := s.Get(ctx, missionID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user.Level < mission.Requirements.MinLevel {
		return nil, fmt.Errorf("mission %q requires level %d, user %d is level %d",
			mission.Title, mission.Requirements.MinLevel, telegramID, user.Level)
	}

	if err := s.users.RecordMissionCompletion(ctx, telegramID, mission.ID); err != nil {
		return nil, err
	}
	return s.users.AddXP(ctx, telegramID, mission.XPReward)
}

// Seed inserts the stock mission catalog when the collection is empty.
func (s *MissionService) Seed(ctx context.Context, missions []models.Mission) error {
	count, err := s.missions.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count missions: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, len(missions))
	for i, m := range missions {
		docs[i] = m
	}
	if _, err := s.missions.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed missions: %w", err)
	}
	return nil
}
