package controllers

import (
	"errors"
	"net/http"

	"fanhub/models"
	"fanhub/services"

	"github.com/gin-gonic/gin"
)

// SurveyController exposes survey administration and results.
type SurveyController struct {
	surveys *services.SurveyService
}

func NewSurveyController(surveys *services.SurveyService) *SurveyController {
	return &SurveyController{surveys: surveys}
}

// CreateSurveyRequest is the admin payload for a new survey.
type CreateSurveyRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Questions   []models.Question `json:"questions" binding:"required,min=1"`
	Category    string            `json:"category" binding:"required"`
	MinLevel    int               `json:"minLevel"`
}

// Create stores a new survey definition.
func (ctl *SurveyController) Create(c *gin.Context) {
	var req CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.MinLevel < 1 {
		req.MinLevel = 1
	}

	id, err := ctl.surveys.Create(c.Request.Context(), req.Title, req.Description, req.Questions, req.Category, req.MinLevel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create survey"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
}

// List returns every survey definition.
func (ctl *SurveyController) List(c *gin.Context) {
	surveys, err := ctl.surveys.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list surveys"})
		return
	}
	c.JSON(http.StatusOK, surveys)
}

// Deactivate soft-deletes a survey.
func (ctl *SurveyController) Deactivate(c *gin.Context) {
	err := ctl.surveys.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate survey"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Survey deactivated"})
}

// Results returns the aggregated responses for a survey.
func (ctl *SurveyController) Results(c *gin.Context) {
	results, err := ctl.surveys.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate results"})
		return
	}
	c.JSON(http.StatusOK, results)
}
