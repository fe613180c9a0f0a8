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
)

// ErrSurveyNotFound is returned when no survey matches the given id.
var ErrSurveyNotFound = errors.New("survey not found")

// SurveyService manages survey definitions and their responses.
type SurveyService struct {
	surveys   *mongo.Collection
	responses *mongo.Collection
}

func NewSurveyService(database *mongo.Database) *SurveyService {
	return &SurveyService{
		surveys:   database.Collection(db.SurveysCollection),
		responses: database.Collection(db.SurveyResponsesCollection),
	}
}

// Create stores a new survey definition and returns its id.
func (s *SurveyService) Create(ctx context.Context, title, description string, questions []models.Question, category string, minLevel int) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	survey := models.Survey{
		Title:        title,
		Description:  description,
		Questions:    questions,
		Category:     category,
		Requirements: models.SurveyRequirements{MinLevel: minLevel},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := s.surveys.InsertOne(ctx, survey)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create survey %q: %w", title, err)
	}

	id := result.InsertedID.(primitive.ObjectID)
	log.Printf("Created survey %q (%s)", title, id.Hex())
	return id, nil
}

// Get fetches a survey by its hex id.
func (s *SurveyService) Get(ctx context.Context, surveyID string) (*models.Survey, error) {
	oid, err := primitive.ObjectIDFromHex(surveyID)
	if err != nil {
		return nil, fmt.Errorf("invalid survey id %q: %w", surveyID, err)
	}

	var survey models.Survey
	if err := s.surveys.FindOne(ctx, bson.M{"_id": oid}).Decode(&survey); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to fetch survey %s: %w", surveyID, err)
	}
	return &survey, nil
}

// ActiveForLevel returns the active surveys a user of the given level may
// answer.
func (s *SurveyService) ActiveForLevel(ctx context.Context, level int) ([]models.Survey, error) {
	cursor, err := s.surveys.Find(ctx, bson.M{
		"active":                 true,
		"requirements.min_level": bson.M{"$lte": level},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active surveys: %w", err)
	}
	defer cursor.Close(ctx)

	surveys := []models.Survey{}
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, fmt.Errorf("failed to decode active surveys: %w", err)
	}
	return surveys, nil
}

// List returns every survey, newest first, for the admin API.
func (s *SurveyService) List(ctx context.Context) ([]models.Survey, error) {
	cursor, err := s.surveys.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer cursor.Close(ctx)

	surveys := []models.Survey{}
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, fmt.Errorf("failed to decode surveys: %w", err)
	}
	return surveys, nil
}

// RecordResponse stores a submission and bumps the survey's response count.
// Submissions are append-only; a user answering twice produces two
// documents.
func (s *SurveyService) RecordResponse(ctx context.Context, surveyID primitive.ObjectID, userID int64, answers map[string]interface{}) error {
	response := models.SurveyResponse{
		SurveyID:  surveyID,
		UserID:    userID,
		Answers:   answers,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.responses.InsertOne(ctx, response); err != nil {
		return fmt.Errorf("failed to record response to survey %s from user %d: %w", surveyID.Hex(), userID, err)
	}

	if _, err := s.surveys.UpdateOne(ctx, bson.M{"_id": surveyID}, bson.M{"$inc": bson.M{"responses_count": 1}}); err != nil {
		return fmt.Errorf("failed to bump response count for survey %s: %w", surveyID.Hex(), err)
	}
	return nil
}

// Deactivate retires a survey without deleting it or its responses.
func (s *SurveyService) Deactivate(ctx context.Context, surveyID string) error {
	oid, err := primitive.ObjectIDFromHex(surveyID)
	if err != nil {
		return fmt.Errorf("invalid survey id %q: %w", surveyID, err)
	}

	result, err := s.surveys.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate survey %s: %w", surveyID, err)
	}
	if result.MatchedCount == 0 {
		return ErrSurveyNotFound
	}
	return nil
}

// Results fetches the survey and all of its responses and aggregates them.
// The read never mutates either collection.
func (s *SurveyService) Results(ctx context.Context, surveyID string) (*SurveyResults, error) {
	survey, err := s.Get(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	cursor, err := s.responses.Find(ctx, bson.M{"survey_id": survey.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch responses for survey %s: %w", surveyID, err)
	}
	defer cursor.Close(ctx)

	responses := []models.SurveyResponse{}
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, fmt.Errorf("failed to decode responses for survey %s: %w", surveyID, err)
	}

	results := BuildResults(survey, responses)
	return &results, nil
}
