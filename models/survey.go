package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question types understood by the survey flow and the results aggregation.
const (
	QuestionSingleChoice   = "single_choice"
	QuestionMultipleChoice = "multiple_choice"
	QuestionText           = "text"
	QuestionScale          = "scale"
)

// Question is one entry in a survey definition. Options applies to choice
// questions; Min/Max apply to scale questions.
type Question struct {
	Text    string   `bson:"text" json:"text"`
	Type    string   `bson:"type" json:"type"`
	Options []string `bson:"options,omitempty" json:"options,omitempty"`
	Min     int      `bson:"min,omitempty" json:"min,omitempty"`
	Max     int      `bson:"max,omitempty" json:"max,omitempty"`
}

// SurveyRequirements gates a survey behind a minimum user level.
type SurveyRequirements struct {
	MinLevel int `bson:"min_level" json:"minLevel"`
}

// Survey is an administrative survey definition. Surveys are soft-deleted
// by clearing Active, never removed.
type Survey struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	Questions      []Question         `bson:"questions" json:"questions"`
	Category       string             `bson:"category" json:"category"` // "demographics", "preferences", "feedback"
	Requirements   SurveyRequirements `bson:"requirements" json:"requirements"`
	Active         bool               `bson:"active" json:"active"`
	ResponsesCount int                `bson:"responses_count" json:"responsesCount"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// SurveyResponse is one submission. Answers is keyed by the question index
// as a string; the value shape depends on the question type. Responses are
// immutable once written and are not deduplicated per user (re-takes are
// allowed).
type SurveyResponse struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID  primitive.ObjectID     `bson:"survey_id" json:"surveyId"`
	UserID    int64                  `bson:"user_id" json:"userId"`
	Answers   map[string]interface{} `bson:"answers" json:"answers"`
	CreatedAt time.Time              `bson:"created_at" json:"createdAt"`
}
