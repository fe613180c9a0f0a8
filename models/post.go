package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post sources.
const (
	SourceTwitter   = "twitter"
	SourceInstagram = "instagram"
)

// Post is a normalized social-media post stored by ingestion. Team posts are
// unique per (source, post_id); player posts per (player_id, post_id).
// Posts are insert-only: an already stored post is never refreshed.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PlayerID  string             `bson:"player_id,omitempty" json:"playerId,omitempty"`
	Source    string             `bson:"source" json:"source"`
	PostID    string             `bson:"post_id" json:"postId"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Text      string             `bson:"text" json:"text"`
	Media     []string           `bson:"media" json:"media"`
	URL       string             `bson:"url" json:"url"`
}
