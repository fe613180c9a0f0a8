package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultInstagramAPIURL = "https://graph.instagram.com"

// InstagramMedia is one item returned by the recent-media endpoint.
type InstagramMedia struct {
	ID        string
	Caption   string
	MediaURL  string
	Permalink string
	Timestamp time.Time
}

// InstagramClient is a minimal Graph API client. The access token only
// grants access to its own account's media, which is why player ingestion
// on this platform stays a stub.
type InstagramClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewInstagramClient(accessToken string) *InstagramClient {
	return &InstagramClient{
		baseURL:     defaultInstagramAPIURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *InstagramClient) get(ctx context.Context, endpoint string, fields string, out interface{}) error {
	query := url.Values{}
	query.Set("fields", fields)
	query.Set("access_token", c.accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// AccountID resolves the account behind the access token.
func (c *InstagramClient) AccountID(ctx context.Context) (string, error) {
	var payload struct {
		ID string `json:"id"`
	}
	if err := c.get(ctx, "/me", "id", &payload); err != nil {
		return "", fmt.Errorf("instagram account lookup: %w", err)
	}
	if payload.ID == "" {
		return "", fmt.Errorf("instagram account lookup: empty id in response")
	}
	return payload.ID, nil
}

// RecentMedia fetches the newest media items for an account, newest first.
func (c *InstagramClient) RecentMedia(ctx context.Context, accountID string) ([]InstagramMedia, error) {
	var payload struct {
		Data []struct {
			ID        string `json:"id"`
			Caption   string `json:"caption"`
			MediaURL  string `json:"media_url"`
			Permalink string `json:"permalink"`
			Timestamp string `json:"timestamp"`
		} `json:"data"`
	}

	endpoint := fmt.Sprintf("/%s/media", accountID)
	if err := c.get(ctx, endpoint, "id,caption,media_url,permalink,timestamp", &payload); err != nil {
		return nil, fmt.Errorf("instagram media for account %s: %w", accountID, err)
	}

	items := make([]InstagramMedia, 0, len(payload.Data))
	for _, item := range payload.Data {
		// Graph API timestamps look like 2024-05-01T12:30:00+0000.
		ts, err := time.Parse("2006-01-02T15:04:05-0700", item.Timestamp)
		if err != nil {
			ts, err = time.Parse(time.RFC3339, item.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("instagram media for account %s: bad timestamp %q: %w", accountID, item.Timestamp, err)
			}
		}
		items = append(items, InstagramMedia{
			ID:        item.ID,
			Caption:   item.Caption,
			MediaURL:  item.MediaURL,
			Permalink: item.Permalink,
			Timestamp: ts,
		})
	}
	return items, nil
}
