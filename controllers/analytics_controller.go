package controllers

import (
	"net/http"
	"strconv"

	"fanhub/services"

	"github.com/gin-gonic/gin"
)

// AnalyticsController exposes the dashboard metrics.
type AnalyticsController struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

func windowDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		return 30
	}
	return days
}

// Growth returns signup metrics over the requested window.
func (ctl *AnalyticsController) Growth(c *gin.Context) {
	metrics, err := ctl.analytics.GrowthMetrics(c.Request.Context(), windowDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch growth metrics"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Engagement returns interaction metrics over the requested window.
func (ctl *AnalyticsController) Engagement(c *gin.Context) {
	metrics, err := ctl.analytics.EngagementMetrics(c.Request.Context(), windowDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch engagement metrics"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Demographics returns the demographic distributions.
func (ctl *AnalyticsController) Demographics(c *gin.Context) {
	data, err := ctl.analytics.DemographicData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch demographic data"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// Social returns the social-platform metrics.
func (ctl *AnalyticsController) Social(c *gin.Context) {
	metrics, err := ctl.analytics.SocialMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch social metrics"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Export writes every metric set to JSON files on the server and returns
// the export directory.
func (ctl *AnalyticsController) Export(c *gin.Context) {
	dir, err := ctl.analytics.ExportAll(c.Request.Context(), "analytics_exports")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export analytics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"directory": dir})
}
