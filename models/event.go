package models

import "time"

// EngagementEvent is broadcast to dashboard WebSocket clients when something
// noteworthy happens: a level-up, a completed mission or survey, or an
// ingestion run storing new posts.
type EngagementEvent struct {
	Type      string    `json:"type"` // "level_up", "mission_completed", "survey_completed", "news_ingested"
	UserID    int64     `json:"userId,omitempty"`
	Username  string    `json:"username,omitempty"`
	Level     int       `json:"level,omitempty"`
	XPGained  int       `json:"xpGained,omitempty"`
	Source    string    `json:"source,omitempty"`
	PlayerID  string    `json:"playerId,omitempty"`
	Count     int       `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
