package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fanhub/models"
)

func TestTweetToPost(t *testing.T) {
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	post := tweetToPost(Tweet{ID: "100", Text: "gg", CreatedAt: createdAt}, "FalleNCS")

	if post.Source != models.SourceTwitter {
		t.Errorf("Expected source %q, got %q", models.SourceTwitter, post.Source)
	}
	if post.PostID != "100" || post.Text != "gg" {
		t.Errorf("Unexpected post fields: %+v", post)
	}
	if !post.Timestamp.Equal(createdAt) {
		t.Errorf("Expected timestamp %v, got %v", createdAt, post.Timestamp)
	}
	if post.URL != "https://twitter.com/FalleNCS/status/100" {
		t.Errorf("Unexpected url %q", post.URL)
	}
	if post.Media == nil || len(post.Media) != 0 {
		t.Errorf("Expected empty media slice, got %v", post.Media)
	}
}

func TestMediaToPost(t *testing.T) {
	timestamp := time.Date(2026, 7, 15, 9, 30, 0, 0, time.UTC)
	post := mediaToPost(InstagramMedia{
		ID:        "ig1",
		Caption:   "training day",
		MediaURL:  "https://cdn.example.com/ig1.jpg",
		Permalink: "https://instagram.com/p/ig1",
		Timestamp: timestamp,
	})

	if post.Source != models.SourceInstagram {
		t.Errorf("Expected source %q, got %q", models.SourceInstagram, post.Source)
	}
	if post.PostID != "ig1" || post.Text != "training day" {
		t.Errorf("Unexpected post fields: %+v", post)
	}
	if len(post.Media) != 1 || post.Media[0] != "https://cdn.example.com/ig1.jpg" {
		t.Errorf("Expected media url carried over, got %v", post.Media)
	}
	if post.URL != "https://instagram.com/p/ig1" {
		t.Errorf("Unexpected url %q", post.URL)
	}
}

func TestMediaToPostWithoutMediaURL(t *testing.T) {
	post := mediaToPost(InstagramMedia{ID: "ig2", Caption: "text only"})
	if len(post.Media) != 0 {
		t.Errorf("Expected no media entries, got %v", post.Media)
	}
}

func TestFetchPlayerTweetsUnconfiguredHandle(t *testing.T) {
	svc := &NewsService{
		players: NewPlayerService(filepath.Join(t.TempDir(), "missing.json")),
	}

	_, err := svc.FetchPlayerTweets(context.Background(), "fallen")
	if !errors.Is(err, ErrHandleNotConfigured) {
		t.Errorf("Expected ErrHandleNotConfigured, got %v", err)
	}
}
