package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/services"
)

type RecommendationHandler struct {
	log               *logger.Logger
	recommendationSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recommendationSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:               log.With("handler", "RecommendationHandler"),
		recommendationSvc: recommendationSvc,
	}
}

// GET /api/recommendations
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	recs, err := h.recommendationSvc.Recommend(c.Request.Context(), learnerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"recommendations": recs})
}

type nextContentRequest struct {
	CurrentContentID uuid.UUID                  `json:"current_content_id" binding:"required"`
	Result           *services.EvaluationResult `json:"result,omitempty"`
}

// POST /api/next-content
// Decide what follows the given content, optionally informed by a just
// graded assessment result.
func (h *RecommendationHandler) GetNextContent(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	var req nextContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	next, err := h.recommendationSvc.NextContent(c.Request.Context(), learnerID, req.CurrentContentID, req.Result)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"next_content": next})
}
