package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/services"
)

type ContentHandler struct {
	log        *logger.Logger
	contentSvc services.ContentService
}

func NewContentHandler(log *logger.Logger, contentSvc services.ContentService) *ContentHandler {
	return &ContentHandler{
		log:        log.With("handler", "ContentHandler"),
		contentSvc: contentSvc,
	}
}

// GET /api/content
func (h *ContentHandler) ListContent(c *gin.Context) {
	items, err := h.contentSvc.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"content": items})
}

// GET /api/content/:content_id
// Raw content item, no per-learner adaptation.
func (h *ContentHandler) GetContent(c *gin.Context) {
	contentID, ok := pathUUID(c, "content_id")
	if !ok {
		return
	}
	item, err := h.contentSvc.Get(c.Request.Context(), contentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, item)
}

// GET /api/content/:content_id/prerequisites
func (h *ContentHandler) GetPrerequisites(c *gin.Context) {
	contentID, ok := pathUUID(c, "content_id")
	if !ok {
		return
	}
	prereqs, err := h.contentSvc.Prerequisites(c.Request.Context(), contentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"prerequisites": prereqs})
}

// GET /api/learning/:content_id
// Content as the learner should study it, adapted when the failure ledger
// says an adaptation is owed.
func (h *ContentHandler) GetLearningContent(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	contentID, ok := pathUUID(c, "content_id")
	if !ok {
		return
	}
	view, err := h.contentSvc.LearningView(c.Request.Context(), learnerID, contentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, view)
}
