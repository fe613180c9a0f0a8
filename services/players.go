package services

import (
	"encoding/json"
	"log"
	"os"
	"sort"
)

// PlayerHandles holds the configured social-media identities for one player.
type PlayerHandles struct {
	Twitter     string `json:"twitter"`
	InstagramID string `json:"instagram_id"`
}

// PlayerService is the static registry mapping player ids to their
// social-media handles. It is loaded once at startup and read-only for the
// process lifetime.
type PlayerService struct {
	players map[string]PlayerHandles
}

// NewPlayerService loads the registry from the given JSON file. An
// unreadable or malformed file degrades to an empty registry so that player
// ingestion fails per-player with a clear "not configured" condition instead
// of taking the process down.
func NewPlayerService(path string) *PlayerService {
	svc := &PlayerService{players: map[string]PlayerHandles{}}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Could not load player registry %s: %v", path, err)
		return svc
	}
	if err := json.Unmarshal(data, &svc.players); err != nil {
		log.Printf("Could not parse player registry %s: %v", path, err)
		svc.players = map[string]PlayerHandles{}
	}
	return svc
}

// TwitterHandle returns the configured tweet-platform handle for a player.
func (s *PlayerService) TwitterHandle(playerID string) (string, bool) {
	p, ok := s.players[playerID]
	if !ok || p.Twitter == "" {
		return "", false
	}
	return p.Twitter, true
}

// InstagramID returns the configured photo-platform account id for a player.
func (s *PlayerService) InstagramID(playerID string) (string, bool) {
	p, ok := s.players[playerID]
	if !ok || p.InstagramID == "" {
		return "", false
	}
	return p.InstagramID, true
}

// IDs returns all configured player ids, sorted for stable menu rendering.
func (s *PlayerService) IDs() []string {
	ids := make([]string, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
