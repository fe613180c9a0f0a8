package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestInstagramClient(handler http.Handler) (*InstagramClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewInstagramClient("test-token")
	client.baseURL = server.URL
	return client, server
}

func TestAccountID(t *testing.T) {
	client, server := newTestInstagramClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("access_token"); got != "test-token" {
			t.Errorf("Unexpected access token %q", got)
		}
		w.Write([]byte(`{"id":"777"}`))
	}))
	defer server.Close()

	id, err := client.AccountID(context.Background())
	if err != nil {
		t.Fatalf("AccountID failed: %v", err)
	}
	if id != "777" {
		t.Errorf("Expected id 777, got %q", id)
	}
}

func TestRecentMedia(t *testing.T) {
	client, server := newTestInstagramClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/777/media" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[
			{"id":"m1","caption":"win","media_url":"https://cdn/m1.jpg","permalink":"https://ig/m1","timestamp":"2026-08-01T12:30:00+0000"},
			{"id":"m2","caption":"","permalink":"https://ig/m2","timestamp":"2026-07-30T08:00:00Z"}
		]}`))
	}))
	defer server.Close()

	items, err := client.RecentMedia(context.Background(), "777")
	if err != nil {
		t.Fatalf("RecentMedia failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].ID != "m1" || items[0].MediaURL != "https://cdn/m1.jpg" {
		t.Errorf("Unexpected first item: %+v", items[0])
	}
	want := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	if !items[0].Timestamp.Equal(want) {
		t.Errorf("Expected timestamp %v, got %v", want, items[0].Timestamp)
	}
	if items[1].Timestamp.IsZero() {
		t.Errorf("Expected RFC3339 fallback parse for second item")
	}
}

func TestRecentMediaBadTimestamp(t *testing.T) {
	client, server := newTestInstagramClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"m1","timestamp":"last week"}]}`))
	}))
	defer server.Close()

	if _, err := client.RecentMedia(context.Background(), "777"); err == nil {
		t.Errorf("Expected error for unparseable timestamp")
	}
}
