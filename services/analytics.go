package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fanhub/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnalyticsService produces dashboard metrics from the user collection.
// Every method is a pure read built on aggregation pipelines.
type AnalyticsService struct {
	users *mongo.Collection
}

func NewAnalyticsService(database *mongo.Database) *AnalyticsService {
	return &AnalyticsService{users: database.Collection(db.UsersCollection)}
}

// DailySignups is one day's worth of new users.
type DailySignups struct {
	Date  string `json:"date"`
	Users int    `json:"users"`
}

// GrowthMetrics summarizes user growth over a window of days.
type GrowthMetrics struct {
	TotalUsers       int            `json:"totalUsers"`
	NewUsersLastDays int            `json:"newUsersLastDays"`
	DailySignups     []DailySignups `json:"dailySignups"`
}

// GrowthMetrics groups signups by day over the trailing window.
func (s *AnalyticsService) GrowthMetrics(ctx context.Context, days int) (*GrowthMetrics, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"member_since": bson.M{"$gte": start, "$lte": end}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$member_since"},
			},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := s.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate signups: %w", err)
	}
	defer cursor.Close(ctx)

	signups := []DailySignups{}
	for cursor.Next(ctx) {
		var row struct {
			Date  string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode signup row: %w", err)
		}
		signups = append(signups, DailySignups{Date: row.Date, Users: row.Count})
	}

	total, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	recent, err := s.users.CountDocuments(ctx, bson.M{"member_since": bson.M{"$gte": start, "$lte": end}})
	if err != nil {
		return nil, fmt.Errorf("failed to count recent users: %w", err)
	}

	return &GrowthMetrics{
		TotalUsers:       int(total),
		NewUsersLastDays: int(recent),
		DailySignups:     signups,
	}, nil
}

// EngagementMetrics summarizes how the user base interacts with the bot.
type EngagementMetrics struct {
	ActiveUsers          int            `json:"activeUsers"`
	XPDistribution       map[string]int `json:"xpDistribution"`
	LevelDistribution    map[string]int `json:"levelDistribution"`
	TotalBotInteractions int            `json:"totalBotInteractions"`
}

// EngagementMetrics buckets users by xp and level and totals interactions
// over the trailing window.
func (s *AnalyticsService) EngagementMetrics(ctx context.Context, days int) (*EngagementMetrics, error) {
	start := time.Now().UTC().AddDate(0, 0, -days)

	active, err := s.users.CountDocuments(ctx, bson.M{"last_interaction": bson.M{"$gte": start}})
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	xpPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"$switch": bson.M{
					"branches": []bson.M{
						{"case": bson.M{"$lt": []interface{}{"$xp", 100}}, "then": "0-100"},
						{"case": bson.M{"$lt": []interface{}{"$xp", 500}}, "then": "100-500"},
						{"case": bson.M{"$lt": []interface{}{"$xp", 1000}}, "then": "500-1000"},
						{"case": bson.M{"$lt": []interface{}{"$xp", 5000}}, "then": "1000-5000"},
					},
					"default": "5000+",
				},
			},
			"count": bson.M{"$sum": 1},
		}}},
	}
	xpDist, err := s.distribution(ctx, xpPipeline)
	if err != nil {
		return nil, err
	}

	levelPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$toString": "$level"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	levelDist, err := s.distribution(ctx, levelPipeline)
	if err != nil {
		return nil, err
	}

	totalPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$engagement_metrics.bot_interactions"},
		}}},
	}
	cursor, err := s.users.Aggregate(ctx, totalPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to total interactions: %w", err)
	}
	defer cursor.Close(ctx)

	totalInteractions := 0
	if cursor.Next(ctx) {
		var row struct {
			Total int `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode interaction total: %w", err)
		}
		totalInteractions = row.Total
	}

	return &EngagementMetrics{
		ActiveUsers:          int(active),
		XPDistribution:       xpDist,
		LevelDistribution:    levelDist,
		TotalBotInteractions: totalInteractions,
	}, nil
}

// DemographicData holds the distribution of each demographic answer.
type DemographicData struct {
	Age     map[string]int `json:"age"`
	Gender  map[string]int `json:"gender"`
	Region  map[string]int `json:"region"`
	FanTime map[string]int `json:"fanTime"`
}

// DemographicData aggregates the demographic answers stored on users.
func (s *AnalyticsService) DemographicData(ctx context.Context) (*DemographicData, error) {
	data := &DemographicData{}
	fields := []struct {
		key  string
		dest *map[string]int
	}{
		{"age", &data.Age},
		{"gender", &data.Gender},
		{"region", &data.Region},
		{"fan_time", &data.FanTime},
	}

	for _, field := range fields {
		path := "demographics." + field.key
		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{path: bson.M{"$exists": true}}}},
			bson.D{{Key: "$group", Value: bson.M{"_id": "$" + path, "count": bson.M{"$sum": 1}}}},
			bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
		}
		dist, err := s.distribution(ctx, pipeline)
		if err != nil {
			return nil, err
		}
		*field.dest = dist
	}

	return data, nil
}

// SocialMetrics summarizes social-platform connections across users.
type SocialMetrics struct {
	PlatformDistribution map[string]int `json:"platformDistribution"`
	UsersWithSocial      int            `json:"usersWithSocial"`
	TotalShares          int            `json:"totalShares"`
}

// SocialMetrics counts connected platforms and total shares.
func (s *AnalyticsService) SocialMetrics(ctx context.Context) (*SocialMetrics, error) {
	platformPipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$connected_platforms"}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$connected_platforms", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	platforms, err := s.distribution(ctx, platformPipeline)
	if err != nil {
		return nil, err
	}

	withSocial, err := s.users.CountDocuments(ctx, bson.M{"connected_platforms.0": bson.M{"$exists": true}})
	if err != nil {
		return nil, fmt.Errorf("failed to count socially connected users: %w", err)
	}

	sharesPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$engagement_metrics.social_shares"},
		}}},
	}
	cursor, err := s.users.Aggregate(ctx, sharesPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to total shares: %w", err)
	}
	defer cursor.Close(ctx)

	totalShares := 0
	if cursor.Next(ctx) {
		var row struct {
			Total int `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode share total: %w", err)
		}
		totalShares = row.Total
	}

	return &SocialMetrics{
		PlatformDistribution: platforms,
		UsersWithSocial:      int(withSocial),
		TotalShares:          totalShares,
	}, nil
}

func (s *AnalyticsService) distribution(ctx context.Context, pipeline mongo.Pipeline) (map[string]int, error) {
	cursor, err := s.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate distribution: %w", err)
	}
	defer cursor.Close(ctx)

	dist := map[string]int{}
	for cursor.Next(ctx) {
		var row struct {
			Key   string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode distribution row: %w", err)
		}
		dist[row.Key] = row.Count
	}
	return dist, nil
}

// ExportAll writes every metric set to timestamped JSON files under dir and
// returns the directory path.
func (s *AnalyticsService) ExportAll(ctx context.Context, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	growth, err := s.GrowthMetrics(ctx, 30)
	if err != nil {
		return "", err
	}
	engagement, err := s.EngagementMetrics(ctx, 30)
	if err != nil {
		return "", err
	}
	demographics, err := s.DemographicData(ctx)
	if err != nil {
		return "", err
	}
	social, err := s.SocialMetrics(ctx)
	if err != nil {
		return "", err
	}

	stamp := time.Now().UTC().Format("20060102_150405")
	files := map[string]interface{}{
		fmt.Sprintf("growth_metrics_%s.json", stamp):     growth,
		fmt.Sprintf("engagement_metrics_%s.json", stamp): engagement,
		fmt.Sprintf("demographic_data_%s.json", stamp):   demographics,
		fmt.Sprintf("social_metrics_%s.json", stamp):     social,
	}

	for name, payload := range files {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	return dir, nil
}
