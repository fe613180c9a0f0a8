package services

import (
	"context"

	"fanhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateDemographicSurvey seeds the stock "know our fans" survey.
func (s *SurveyService) CreateDemographicSurvey(ctx context.Context) (primitive.ObjectID, error) {
	questions := []models.Question{
		{
			Text:    "How old are you?",
			Type:    models.QuestionSingleChoice,
			Options: []string{"Under 18", "19-24", "25-30", "31-40", "Over 40"},
		},
		{
			Text:    "Which gender do you identify with?",
			Type:    models.QuestionSingleChoice,
			Options: []string{"Male", "Female", "Non-binary", "Prefer not to say"},
		},
		{
			Text:    "Which region do you live in?",
			Type:    models.QuestionSingleChoice,
			Options: []string{"North", "Northeast", "Midwest", "Southeast", "South"},
		},
		{
			Text:    "How long have you followed the team?",
			Type:    models.QuestionSingleChoice,
			Options: []string{"Less than 6 months", "6 months to 1 year", "1 to 2 years", "2 to 3 years", "More than 3 years"},
		},
		{
			Text:    "Which games do you follow the most?",
			Type:    models.QuestionMultipleChoice,
			Options: []string{"CS2", "Valorant", "Rainbow Six", "League of Legends", "Apex Legends", "Others"},
		},
	}

	return s.Create(ctx,
		"Know Our Fans",
		"Help us understand who our fans are! Answer these quick questions and earn XP.",
		questions, "demographics", 1)
}

// CreatePreferencesSurvey seeds the stock game-preferences survey.
func (s *SurveyService) CreatePreferencesSurvey(ctx context.Context) (primitive.ObjectID, error) {
	questions := []models.Question{
		{
			Text:    "What is your favorite CS2 map?",
			Type:    models.QuestionSingleChoice,
			Options: []string{"Dust 2", "Mirage", "Inferno", "Nuke", "Ancient", "Vertigo", "Anubis", "Overpass"},
		},
		{
			Text:    "Which weapons do you use the most?",
			Type:    models.QuestionMultipleChoice,
			Options: []string{"AK-47", "M4A1/M4A4", "AWP", "Desert Eagle", "USP/Glock", "MP9/MAC-10"},
		},
		{
			Text:    "Which role do you enjoy playing the most?",
			Type:    models.QuestionSingleChoice,
			Options: []string{"Entry Fragger", "Lurker", "Support", "AWPer", "IGL (In-Game Leader)"},
		},
		{
			Text: "On a scale of 1 to 10, how do you rate the team's current performance?",
			Type: models.QuestionScale,
			Min:  1,
			Max:  10,
		},
		{
			Text:    "What would you like to see more of on our channels?",
			Type:    models.QuestionMultipleChoice,
			Options: []string{"Tactical analysis", "Behind the scenes", "Tutorials and tips", "Player interviews", "Community tournaments"},
		},
	}

	return s.Create(ctx,
		"Your CS2 Preferences",
		"Tell us about your CS2 preferences and help us improve the community!",
		questions, "preferences", 2)
}

// CreateFeedbackSurvey seeds the stock community-feedback survey.
func (s *SurveyService) CreateFeedbackSurvey(ctx context.Context) (primitive.ObjectID, error) {
	questions := []models.Question{
		{
			Text: "How do you rate the team's communication with fans?",
			Type: models.QuestionScale,
			Min:  1,
			Max:  5,
		},
		{
			Text:    "Which aspects of the team do you appreciate the most?",
			Type:    models.QuestionMultipleChoice,
			Options: []string{"Player skill", "Social media presence", "Play style", "Player personalities", "Fan interaction"},
		},
		{
			Text: "What do you think could be improved?",
			Type: models.QuestionText,
		},
		{
			Text:    "Which kinds of events would you like the team to organize?",
			Type:    models.QuestionMultipleChoice,
			Options: []string{"Meet & greet with players", "Community tournaments", "Workshops and talks", "Special broadcasts", "Shows and festivals"},
		},
		{
			Text: "Which other esports teams do you follow?",
			Type: models.QuestionText,
		},
	}

	return s.Create(ctx,
		"Community Feedback",
		"Your opinion matters! Help us improve by sharing your feedback.",
		questions, "feedback", 3)
}
