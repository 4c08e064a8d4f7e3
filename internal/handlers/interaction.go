package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/services"
)

// timestamp layouts accepted from clients, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type InteractionHandler struct {
	log            *logger.Logger
	interactionSvc services.InteractionService
}

func NewInteractionHandler(log *logger.Logger, interactionSvc services.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		log:            log.With("handler", "InteractionHandler"),
		interactionSvc: interactionSvc,
	}
}

type logInteractionRequest struct {
	ContentID *uuid.UUID     `json:"content_id,omitempty"`
	Type      string         `json:"type" binding:"required"`
	Timestamp string         `json:"timestamp,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// POST /api/interactions
// Append one activity event. Timestamp is optional; several layouts are
// accepted and an unparseable one falls back to now.
func (h *InteractionHandler) LogInteraction(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	var req logInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	at := parseTimestamp(req.Timestamp)
	if err := h.interactionSvc.Log(c.Request.Context(), learnerID, req.ContentID, req.Type, at, req.Details); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"logged": true})
}

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
