package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"fanhub/bot"
	"fanhub/config"
	"fanhub/db"
	"fanhub/services"
	"fanhub/websocket"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	configPath := flag.String("config", "./config/config.yml", "Path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Telegram.Token == "" {
		log.Fatalf("telegram.token is not set in %s", *configPath)
	}

	client, database, err := db.Connect(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Disconnect(client)
	log.Println("Connected to MongoDB")

	// Wire services explicitly; no ambient globals.
	playerSvc := services.NewPlayerService(cfg.Players.File)
	userSvc := services.NewUserService(database)
	missionSvc := services.NewMissionService(database, userSvc)
	surveySvc := services.NewSurveyService(database)
	newsSvc := services.NewNewsService(database,
		services.NewTwitterClient(cfg.Twitter.BearerToken),
		services.NewInstagramClient(cfg.Instagram.AccessToken),
		playerSvc, cfg.Team.TwitterHandle, cfg.News.FetchLimit)
	hub := websocket.NewEventHub()

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatalf("Failed to create bot API: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Periodic best-effort ingestion; failures are logged inside the
	// service and the next tick tries again.
	go func() {
		newsSvc.RefreshAll(ctx)
		ticker := time.NewTicker(time.Duration(cfg.News.RefreshMinutes) * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				newsSvc.RefreshAll(ctx)
			}
		}
	}()

	b := bot.New(api, bot.Deps{
		Users:     userSvc,
		Missions:  missionSvc,
		Surveys:   surveySvc,
		News:      newsSvc,
		Players:   playerSvc,
		Hub:       hub,
		TeamName:  cfg.Team.Name,
		NewsLimit: cfg.News.FetchLimit,
	})

	log.Println("Starting bot polling")
	b.Run(ctx)
	log.Println("Bot stopped")
}
