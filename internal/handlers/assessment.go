package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/services"
)

type AssessmentHandler struct {
	log            *logger.Logger
	assessmentSvc  services.AssessmentService
	masterySvc     services.MasteryService
	recommendation services.RecommendationService
}

func NewAssessmentHandler(
	log *logger.Logger,
	assessmentSvc services.AssessmentService,
	masterySvc services.MasteryService,
	recommendation services.RecommendationService,
) *AssessmentHandler {
	return &AssessmentHandler{
		log:            log.With("handler", "AssessmentHandler"),
		assessmentSvc:  assessmentSvc,
		masterySvc:     masterySvc,
		recommendation: recommendation,
	}
}

// GET /api/assessments/:content_id
// Generate a question set for the content, tuned to the learner's mastery.
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	contentID, ok := pathUUID(c, "content_id")
	if !ok {
		return
	}
	assessment, err := h.assessmentSvc.Generate(c.Request.Context(), learnerID, contentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, assessment)
}

type submitAssessmentRequest struct {
	ContentID uuid.UUID                `json:"content_id" binding:"required"`
	Responses []services.ResponseInput `json:"responses" binding:"required"`
}

type submitAssessmentResponse struct {
	Result      *services.EvaluationResult `json:"result"`
	NextContent *services.Recommendation   `json:"next_content,omitempty"`
}

// POST /api/assessments/submit
// Grade a submission, fold the outcome into the knowledge state, and pick
// what the learner should see next.
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	var req submitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	ctx := c.Request.Context()
	result, err := h.assessmentSvc.Evaluate(ctx, learnerID, req.ContentID, req.Responses)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := h.masterySvc.UpdateKnowledgeState(ctx, learnerID, req.ContentID, result.Results); err != nil {
		RespondServiceError(c, err)
		return
	}
	next, err := h.recommendation.NextContent(ctx, learnerID, req.ContentID, result)
	if err != nil {
		// Grading already committed; a broken next-content pick should not
		// fail the submission.
		h.log.Warn("next content selection failed", "error", err)
		next = nil
	}
	RespondOK(c, submitAssessmentResponse{Result: result, NextContent: next})
}
