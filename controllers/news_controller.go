package controllers

import (
	"net/http"
	"strconv"
	"time"

	"fanhub/models"
	"fanhub/services"
	"fanhub/websocket"

	"github.com/gin-gonic/gin"
)

// NewsController exposes stored posts and the manual ingestion trigger.
type NewsController struct {
	news *services.NewsService
	hub  *websocket.EventHub
}

func NewNewsController(news *services.NewsService, hub *websocket.EventHub) *NewsController {
	return &NewsController{news: news, hub: hub}
}

func newsLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		return 5
	}
	return limit
}

// Team returns the latest stored team posts.
func (ctl *NewsController) Team(c *gin.Context) {
	posts, err := ctl.news.LatestTeamNews(c.Request.Context(), newsLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team news"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Player returns the latest stored posts for one player.
func (ctl *NewsController) Player(c *gin.Context) {
	posts, err := ctl.news.LatestPlayerNews(c.Request.Context(), c.Param("id"), newsLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch player news"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Refresh runs a best-effort ingestion pass across every source and
// reports the number of items processed. Per-source failures are logged
// inside the service and never fail the request.
func (ctl *NewsController) Refresh(c *gin.Context) {
	count := ctl.news.RefreshAll(c.Request.Context())

	ctl.hub.Broadcast(models.EngagementEvent{
		Type:      "news_ingested",
		Count:     count,
		Timestamp: time.Now().UTC(),
	})
	c.JSON(http.StatusOK, gin.H{"processed": count})
}
