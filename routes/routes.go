package routes

import (
	"fanhub/controllers"
	"fanhub/middlewares"
	ws "fanhub/websocket"

	"github.com/gin-gonic/gin"
)

// Controllers bundles the admin API handlers for registration.
type Controllers struct {
	Analytics   *controllers.AnalyticsController
	Surveys     *controllers.SurveyController
	News        *controllers.NewsController
	Leaderboard *controllers.LeaderboardController
}

// Setup registers the dashboard API. Everything except the health check is
// behind the admin token.
func Setup(router *gin.Engine, ctls Controllers, hub *ws.EventHub, adminToken string) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	admin := router.Group("/")
	admin.Use(middlewares.AdminAuth(adminToken))
	{
		admin.GET("/leaderboard", ctls.Leaderboard.Get)

		admin.GET("/analytics/growth", ctls.Analytics.Growth)
		admin.GET("/analytics/engagement", ctls.Analytics.Engagement)
		admin.GET("/analytics/demographics", ctls.Analytics.Demographics)
		admin.GET("/analytics/social", ctls.Analytics.Social)
		admin.POST("/analytics/export", ctls.Analytics.Export)

		admin.POST("/surveys", ctls.Surveys.Create)
		admin.GET("/surveys", ctls.Surveys.List)
		admin.DELETE("/surveys/:id", ctls.Surveys.Deactivate)
		admin.GET("/surveys/:id/results", ctls.Surveys.Results)

		admin.GET("/news/team", ctls.News.Team)
		admin.GET("/news/players/:id", ctls.News.Player)
		admin.POST("/news/refresh", ctls.News.Refresh)

		admin.GET("/ws", ws.Handler(hub))
	}
}
