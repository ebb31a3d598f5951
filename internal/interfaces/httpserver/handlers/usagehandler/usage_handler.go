package usagehandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"duochat-server/internal/config"
	"duochat-server/internal/domain/tokenusage"
	middleware "duochat-server/internal/interfaces/httpserver/middlewares"
)

const summaryDays = 10

// UsageHandler handles token usage API requests
type UsageHandler struct {
	usageService *tokenusage.Service
	hostedModel  string
	localModel   string
	logger       zerolog.Logger
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usageService *tokenusage.Service, cfg *config.Config, logger zerolog.Logger) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		hostedModel:  cfg.HostedModel,
		localModel:   cfg.LocalModel,
		logger:       logger,
	}
}

// GetUsage returns the user's raw usage records, newest first.
func (h *UsageHandler) GetUsage(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	records, err := h.usageService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("list usage records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No usage data found for this user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "usage_data": records})
}

// GetTotal returns the user's total token count for one model.
func (h *UsageHandler) GetTotal(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	model := c.Query("model")
	if model == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Model parameter is required"})
		return
	}

	total, err := h.usageService.TotalByModel(c.Request.Context(), userID, model)
	if err != nil {
		h.logger.Error().Err(err).Msg("total usage by model")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "model": model, "total_tokens": total})
}

// GetSummary returns the user's all-time token total across models.
func (h *UsageHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	total, err := h.usageService.Total(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("total usage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "total_tokens": total})
}

// GetLastDaysSummary returns per-day totals for both models over the
// trailing window, one JSON object per day keyed by model name.
func (h *UsageHandler) GetLastDaysSummary(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	models := []string{h.hostedModel, h.localModel}
	days, err := h.usageService.LastDaysSummary(c.Request.Context(), userID, summaryDays, models)
	if err != nil {
		h.logger.Error().Err(err).Msg("last days usage summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	summary := make([]map[string]any, 0, len(days))
	for _, day := range days {
		item := map[string]any{"date": day.Date}
		for _, model := range models {
			item[model] = day.Totals[model]
		}
		summary = append(summary, item)
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "usage_summary": summary})
}
