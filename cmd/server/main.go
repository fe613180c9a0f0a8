package main

import (
	"flag"
	"log"
	"strconv"

	"fanhub/config"
	"fanhub/controllers"
	"fanhub/db"
	"fanhub/routes"
	"fanhub/services"
	"fanhub/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "./config/config.yml", "Path to config file")
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
	log.Println("Connected to MongoDB")

	playerSvc := services.NewPlayerService(cfg.Players.File)
	userSvc := services.NewUserService(database)
	surveySvc := services.NewSurveyService(database)
	analyticsSvc := services.NewAnalyticsService(database)
	newsSvc := services.NewNewsService(database,
		services.NewTwitterClient(cfg.Twitter.BearerToken),
		services.NewInstagramClient(cfg.Instagram.AccessToken),
		playerSvc, cfg.Team.TwitterHandle, cfg.News.FetchLimit)
	hub := websocket.NewEventHub()

	router := setupRouter(cfg, routes.Controllers{
		Analytics:   controllers.NewAnalyticsController(analyticsSvc),
		Surveys:     controllers.NewSurveyController(surveySvc),
		News:        controllers.NewNewsController(newsSvc, hub),
		Leaderboard: controllers.NewLeaderboardController(userSvc),
	}, hub)

	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config, ctls routes.Controllers, hub *websocket.EventHub) *gin.Engine {
	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	routes.Setup(router, ctls, hub, cfg.Server.AdminToken)
	return router
}
