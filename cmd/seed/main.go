package main

import (
	"context"
	"flag"
	"log"
	"time"

	"fanhub/config"
	"fanhub/db"
	"fanhub/services"
	"fanhub/utils"
)

// Seeds the stock surveys and missions. Safe to run repeatedly: missions
// are only inserted into an empty catalog, surveys are skipped unless
// -surveys is passed.
func main() {
	configPath := flag.String("config", "./config/config.yml", "Path to config file")
	seedSurveys := flag.Bool("surveys", false, "Also create the stock surveys")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, database, err := db.Connect(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Disconnect(client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userSvc := services.NewUserService(database)
	missionSvc := services.NewMissionService(database, userSvc)
	if err := missionSvc.Seed(ctx, utils.DefaultMissions()); err != nil {
		log.Fatalf("Failed to seed missions: %v", err)
	}
	log.Println("Mission catalog seeded")

	if !*seedSurveys {
		return
	}

	surveySvc := services.NewSurveyService(database)
	if _, err := surveySvc.CreateDemographicSurvey(ctx); err != nil {
		log.Fatalf("Failed to create demographic survey: %v", err)
	}
	if _, err := surveySvc.CreatePreferencesSurvey(ctx); err != nil {
		log.Fatalf("Failed to create preferences survey: %v", err)
	}
	if _, err := surveySvc.CreateFeedbackSurvey(ctx); err != nil {
		log.Fatalf("Failed to create feedback survey: %v", err)
	}
	log.Println("Stock surveys created")
}
