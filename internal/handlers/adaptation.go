package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/services"
)

type AdaptationHandler struct {
	log           *logger.Logger
	adaptationSvc services.AdaptationService
	failureSvc    services.FailureService
}

func NewAdaptationHandler(log *logger.Logger, adaptationSvc services.AdaptationService, failureSvc services.FailureService) *AdaptationHandler {
	return &AdaptationHandler{
		log:           log.With("handler", "AdaptationHandler"),
		adaptationSvc: adaptationSvc,
		failureSvc:    failureSvc,
	}
}

// GET /api/adapted-content/:content_id/check
// Whether this learner should be seeing an adapted variant.
func (h *AdaptationHandler) CheckAdaptation(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	contentID, ok := pathUUID(c, "content_id")
	if !ok {
		return
	}
	needs, err := h.failureSvc.NeedsAdaptation(c.Request.Context(), learnerID, contentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"needs_adaptation": needs})
}

// GET /api/adapted-content/:content_id
// The current adapted variant, 404 when none exists.
func (h *AdaptationHandler) GetAdaptedContent(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	contentID, ok := pathUUID(c, "content_id")
	if !ok {
		return
	}
	adapted, err := h.adaptationSvc.GetCurrent(c.Request.Context(), learnerID, contentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if adapted == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("no adaptation for content %s", contentID))
		return
	}
	RespondOK(c, adapted)
}

// POST /api/adapted-content/:content_id/generate
// Force synthesis of a fresh adaptation. Returns 422 when the content
// cannot be adapted (missing body or no component mappings).
func (h *AdaptationHandler) GenerateAdaptedContent(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	contentID, ok := pathUUID(c, "content_id")
	if !ok {
		return
	}
	adapted, err := h.adaptationSvc.Provide(c.Request.Context(), learnerID, contentID, nil)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if adapted == nil {
		RespondError(c, http.StatusUnprocessableEntity, "not_adaptable", fmt.Errorf("content %s cannot be adapted", contentID))
		return
	}
	RespondOK(c, adapted)
}
