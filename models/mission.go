package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mission defines an engagement task fans can complete for XP.
type Mission struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description" json:"description"`
	Type         string              `bson:"type" json:"type"` // "social", "quiz", "attendance"
	Requirements MissionRequirements `bson:"requirements" json:"requirements"`
	XPReward     int                 `bson:"xp_reward" json:"xpReward"`
	CreatedAt    time.Time           `bson:"created_at" json:"createdAt"`
}

// MissionRequirements gates a mission behind a minimum user level.
type MissionRequirements struct {
	MinLevel int `bson:"min_level" json:"minLevel"`
}
