package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const defaultTwitterAPIURL = "https://api.twitter.com/2"

// Tweet is one item returned by the recent-tweets endpoint.
type Tweet struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// TwitterClient is a minimal client for the v2 endpoints ingestion needs:
// handle-to-id lookup and recent tweets. Requests carry the bearer
// credential and run under both the client timeout and the caller's context.
type TwitterClient struct {
	baseURL    string
	bearer     string
	httpClient *http.Client
}

func NewTwitterClient(bearerToken string) *TwitterClient {
	return &TwitterClient{
		baseURL:    defaultTwitterAPIURL,
		bearer:     bearerToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *TwitterClient) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// LookupUserID resolves a handle to the platform-internal user id.
func (c *TwitterClient) LookupUserID(ctx context.Context, username string) (string, error) {
	var payload struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}

	url := fmt.Sprintf("%s/users/by/username/%s", c.baseURL, username)
	if err := c.get(ctx, url, &payload); err != nil {
		return "", fmt.Errorf("twitter user lookup for %q: %w", username, err)
	}
	if payload.Data.ID == "" {
		return "", fmt.Errorf("twitter user lookup for %q: empty id in response", username)
	}
	return payload.Data.ID, nil
}

// RecentTweets fetches the newest tweets for a user id, newest first.
func (c *TwitterClient) RecentTweets(ctx context.Context, userID string, limit int) ([]Tweet, error) {
	var payload struct {
		Data []struct {
			ID        string `json:"id"`
			Text      string `json:"text"`
			CreatedAt string `json:"created_at"`
		} `json:"data"`
	}

	url := fmt.Sprintf("%s/users/%s/tweets?tweet.fields=created_at&max_results=%s",
		c.baseURL, userID, strconv.Itoa(limit))
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("twitter timeline for user %s: %w", userID, err)
	}

	tweets := make([]Tweet, 0, len(payload.Data))
	for _, item := range payload.Data {
		createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("twitter timeline for user %s: bad created_at %q: %w", userID, item.CreatedAt, err)
		}
		tweets = append(tweets, Tweet{ID: item.ID, Text: item.Text, CreatedAt: createdAt})
	}
	return tweets, nil
}
