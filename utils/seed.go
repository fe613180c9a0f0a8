package utils

import (
	"time"

	"fanhub/models"
)

// DefaultMissions is the stock mission catalog inserted by cmd/seed.
func DefaultMissions() []models.Mission {
	now := time.Now().UTC()
	return []models.Mission{
		{
			Title:        "Welcome aboard",
			Description:  "Open your profile for the first time.",
			Type:         "onboarding",
			Requirements: models.MissionRequirements{MinLevel: 1},
			XPReward:     25,
			CreatedAt:    now,
		},
		{
			Title:        "Social butterfly",
			Description:  "Connect one of your social platforms with /connect.",
			Type:         "social",
			Requirements: models.MissionRequirements{MinLevel: 1},
			XPReward:     50,
			CreatedAt:    now,
		},
		{
			Title:        "Pulse of the crowd",
			Description:  "Answer any active survey.",
			Type:         "survey",
			Requirements: models.MissionRequirements{MinLevel: 1},
			XPReward:     50,
			CreatedAt:    now,
		},
		{
			Title:        "Superfan",
			Description:  "Share a team post with your friends.",
			Type:         "social",
			Requirements: models.MissionRequirements{MinLevel: 3},
			XPReward:     100,
			CreatedAt:    now,
		},
	}
}
