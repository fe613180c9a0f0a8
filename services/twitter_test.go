package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestTwitterClient(handler http.Handler) (*TwitterClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewTwitterClient("test-bearer")
	client.baseURL = server.URL
	return client, server
}

func TestLookupUserID(t *testing.T) {
	client, server := newTestTwitterClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/by/username/FalleNCS" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-bearer" {
			t.Errorf("Unexpected authorization header %q", got)
		}
		w.Write([]byte(`{"data":{"id":"42"}}`))
	}))
	defer server.Close()

	id, err := client.LookupUserID(context.Background(), "FalleNCS")
	if err != nil {
		t.Fatalf("LookupUserID failed: %v", err)
	}
	if id != "42" {
		t.Errorf("Expected id 42, got %q", id)
	}
}

func TestLookupUserIDEmptyResponse(t *testing.T) {
	client, server := newTestTwitterClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	if _, err := client.LookupUserID(context.Background(), "ghost"); err == nil {
		t.Errorf("Expected error for response without an id")
	}
}

func TestRecentTweets(t *testing.T) {
	client, server := newTestTwitterClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/42/tweets" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("max_results"); got != "5" {
			t.Errorf("Expected max_results=5, got %q", got)
		}
		w.Write([]byte(`{"data":[
			{"id":"100","text":"gg","created_at":"2026-08-01T12:00:00Z"},
			{"id":"99","text":"match soon","created_at":"2026-07-31T09:30:00Z"}
		]}`))
	}))
	defer server.Close()

	tweets, err := client.RecentTweets(context.Background(), "42", 5)
	if err != nil {
		t.Fatalf("RecentTweets failed: %v", err)
	}
	if len(tweets) != 2 {
		t.Fatalf("Expected 2 tweets, got %d", len(tweets))
	}
	if tweets[0].ID != "100" || tweets[0].Text != "gg" {
		t.Errorf("Unexpected first tweet: %+v", tweets[0])
	}
	want := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if !tweets[0].CreatedAt.Equal(want) {
		t.Errorf("Expected created_at %v, got %v", want, tweets[0].CreatedAt)
	}
}

func TestRecentTweetsUpstreamError(t *testing.T) {
	client, server := newTestTwitterClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	if _, err := client.RecentTweets(context.Background(), "42", 5); err == nil {
		t.Errorf("Expected error on 429 response")
	}
}

func TestRecentTweetsBadTimestamp(t *testing.T) {
	client, server := newTestTwitterClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"1","text":"x","created_at":"yesterday"}]}`))
	}))
	defer server.Close()

	if _, err := client.RecentTweets(context.Background(), "42", 5); err == nil {
		t.Errorf("Expected error for unparseable timestamp")
	}
}
