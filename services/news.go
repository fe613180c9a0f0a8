package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"fanhub/db"
	"fanhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrHandleNotConfigured is returned when a player has no handle in the
// registry for the requested platform.
var ErrHandleNotConfigured = errors.New("social media handle not configured")

const fetchTimeout = 15 * time.Second

// NewsService ingests team and player posts from external platforms into
// the local store and serves them back newest first. Ingestion is
// best-effort and at-least-once; dedup happens at write time through
// insert-if-absent upserts on the post's uniqueness key.
type NewsService struct {
	teamNews   *mongo.Collection
	playerNews *mongo.Collection
	twitter    *TwitterClient
	instagram  *InstagramClient
	players    *PlayerService

	teamTwitterHandle string
	fetchLimit        int

	// Platform-internal ids for the team targets, resolved once per
	// process lifetime.
	mu              sync.Mutex
	teamTwitterID   string
	teamInstagramID string
}

func NewNewsService(database *mongo.Database, twitter *TwitterClient, instagram *InstagramClient,
	players *PlayerService, teamTwitterHandle string, fetchLimit int) *NewsService {
	if fetchLimit <= 0 {
		fetchLimit = 5
	}
	return &NewsService{
		teamNews:          database.Collection(db.TeamNewsCollection),
		playerNews:        database.Collection(db.PlayerNewsCollection),
		twitter:           twitter,
		instagram:         instagram,
		players:           players,
		teamTwitterHandle: teamTwitterHandle,
		fetchLimit:        fetchLimit,
	}
}

// teamTwitterUserID resolves and caches the team's tweet-platform id.
func (s *NewsService) teamTwitterUserID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.teamTwitterID != "" {
		return s.teamTwitterID, nil
	}
	id, err := s.twitter.LookupUserID(ctx, s.teamTwitterHandle)
	if err != nil {
		return "", err
	}
	s.teamTwitterID = id
	return id, nil
}

// teamInstagramAccountID resolves and caches the photo-platform account id.
func (s *NewsService) teamInstagramAccountID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.teamInstagramID != "" {
		return s.teamInstagramID, nil
	}
	id, err := s.instagram.AccountID(ctx)
	if err != nil {
		return "", err
	}
	s.teamInstagramID = id
	return id, nil
}

// tweetToPost normalizes a tweet into the stored post shape.
func tweetToPost(t Tweet, handle string) models.Post {
	return models.Post{
		Source:    models.SourceTwitter,
		PostID:    t.ID,
		Timestamp: t.CreatedAt,
		Text:      t.Text,
		Media:     []string{},
		URL:       fmt.Sprintf("https://twitter.com/%s/status/%s", handle, t.ID),
	}
}

// mediaToPost normalizes a photo-platform item into the stored post shape.
func mediaToPost(m InstagramMedia) models.Post {
	media := []string{}
	if m.MediaURL != "" {
		media = append(media, m.MediaURL)
	}
	return models.Post{
		Source:    models.SourceInstagram,
		PostID:    m.ID,
		Timestamp: m.Timestamp,
		Text:      m.Caption,
		Media:     media,
		URL:       m.Permalink,
	}
}

// storePost performs an insert-if-absent on the post's uniqueness key. An
// already stored post is left untouched even if the source content changed.
func (s *NewsService) storePost(ctx context.Context, collection *mongo.Collection, post models.Post) error {
	filter := bson.M{"source": post.Source, "post_id": post.PostID}
	if post.PlayerID != "" {
		filter = bson.M{"player_id": post.PlayerID, "post_id": post.PostID}
	}

	_, err := collection.UpdateOne(ctx, filter,
		bson.M{"$setOnInsert": post},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to store post %s/%s: %w", post.Source, post.PostID, err)
	}
	return nil
}

// FetchTeamTweets ingests the newest team tweets. Returns the number of
// items processed.
func (s *NewsService) FetchTeamTweets(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	userID, err := s.teamTwitterUserID(ctx)
	if err != nil {
		return 0, err
	}

	tweets, err := s.twitter.RecentTweets(ctx, userID, s.fetchLimit)
	if err != nil {
		return 0, err
	}

	for _, t := range tweets {
		if err := s.storePost(ctx, s.teamNews, tweetToPost(t, s.teamTwitterHandle)); err != nil {
			return 0, err
		}
	}
	log.Printf("Team tweets fetched and stored: %d items", len(tweets))
	return len(tweets), nil
}

// FetchTeamInstagram ingests the newest team photo posts. Returns the
// number of items processed.
func (s *NewsService) FetchTeamInstagram(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	accountID, err := s.teamInstagramAccountID(ctx)
	if err != nil {
		return 0, err
	}

	items, err := s.instagram.RecentMedia(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if len(items) > s.fetchLimit {
		items = items[:s.fetchLimit]
	}

	for _, m := range items {
		if err := s.storePost(ctx, s.teamNews, mediaToPost(m)); err != nil {
			return 0, err
		}
	}
	log.Printf("Team instagram posts fetched and stored: %d items", len(items))
	return len(items), nil
}

// FetchPlayerTweets ingests the newest tweets for one player. A player
// without a configured handle yields ErrHandleNotConfigured.
func (s *NewsService) FetchPlayerTweets(ctx context.Context, playerID string) (int, error) {
	handle, ok := s.players.TwitterHandle(playerID)
	if !ok {
		return 0, fmt.Errorf("twitter handle for player %s: %w", playerID, ErrHandleNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	userID, err := s.twitter.LookupUserID(ctx, handle)
	if err != nil {
		return 0, err
	}

	tweets, err := s.twitter.RecentTweets(ctx, userID, s.fetchLimit)
	if err != nil {
		return 0, err
	}

	for _, t := range tweets {
		post := tweetToPost(t, handle)
		post.PlayerID = playerID
		if err := s.storePost(ctx, s.playerNews, post); err != nil {
			return 0, err
		}
	}
	log.Printf("Player tweets fetched for %s: %d items", playerID, len(tweets))
	return len(tweets), nil
}

// FetchPlayerInstagram is intentionally a stub: the photo platform's API
// only serves media for the account owning the access token, so player
// accounts cannot be fetched with the team credential.
func (s *NewsService) FetchPlayerInstagram(ctx context.Context, playerID string) (int, error) {
	log.Printf("Player instagram ingestion not implemented, skipping %s", playerID)
	return 0, nil
}

// RefreshAll is the best-effort ingestion boundary: it runs every fetch,
// logs failures with their source context and never propagates them.
// Scheduling of retries belongs to the caller (the bot's ticker or the
// admin trigger).
func (s *NewsService) RefreshAll(ctx context.Context) int {
	total := 0

	if n, err := s.FetchTeamTweets(ctx); err != nil {
		log.Printf("Error fetching team tweets: %v", err)
	} else {
		total += n
	}

	if n, err := s.FetchTeamInstagram(ctx); err != nil {
		log.Printf("Error fetching team instagram: %v", err)
	} else {
		total += n
	}

	for _, playerID := range s.players.IDs() {
		if n, err := s.FetchPlayerTweets(ctx, playerID); err != nil {
			log.Printf("Error fetching tweets for %s: %v", playerID, err)
		} else {
			total += n
		}

		if n, err := s.FetchPlayerInstagram(ctx, playerID); err != nil {
			log.Printf("Error fetching instagram for %s: %v", playerID, err)
		} else {
			total += n
		}
	}

	return total
}

// LatestTeamNews returns the newest stored team posts, newest first. No
// posts is an empty slice, not an error.
func (s *NewsService) LatestTeamNews(ctx context.Context, limit int) ([]models.Post, error) {
	return s.latest(ctx, s.teamNews, bson.M{}, limit)
}

// LatestPlayerNews returns the newest stored posts for one player, newest
// first.
func (s *NewsService) LatestPlayerNews(ctx context.Context, playerID string, limit int) ([]models.Post, error) {
	return s.latest(ctx, s.playerNews, bson.M{"player_id": playerID}, limit)
}

func (s *NewsService) latest(ctx context.Context, collection *mongo.Collection, filter bson.M, limit int) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode news: %w", err)
	}
	return posts, nil
}
