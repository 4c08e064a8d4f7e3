package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/advisors"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/services"
)

type LearnerHandler struct {
	log           *logger.Logger
	masterySvc    services.MasteryService
	progressSvc   services.ProgressService
	gapAdvisor    *advisors.GapRecommender
	disengagement *advisors.DisengagementDetector
	difficulty    *advisors.DifficultyAdvisor
}

func NewLearnerHandler(
	log *logger.Logger,
	masterySvc services.MasteryService,
	progressSvc services.ProgressService,
	gapAdvisor *advisors.GapRecommender,
	disengagement *advisors.DisengagementDetector,
	difficulty *advisors.DifficultyAdvisor,
) *LearnerHandler {
	return &LearnerHandler{
		log:           log.With("handler", "LearnerHandler"),
		masterySvc:    masterySvc,
		progressSvc:   progressSvc,
		gapAdvisor:    gapAdvisor,
		disengagement: disengagement,
		difficulty:    difficulty,
	}
}

// POST /api/learners/init
// Seed mastery rows and a default path position for the learner.
func (h *LearnerHandler) InitializeLearner(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	if err := h.masterySvc.InitializeLearner(c.Request.Context(), learnerID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"initialized": true})
}

type updateKnowledgeStateRequest struct {
	ContentID uuid.UUID                 `json:"content_id" binding:"required"`
	Results   []services.QuestionResult `json:"results" binding:"required"`
}

// POST /api/knowledge-state/update
// Fold externally-graded assessment results into the mastery estimates.
// Assessment submission does this implicitly; this is the direct form.
func (h *LearnerHandler) UpdateKnowledgeState(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	var req updateKnowledgeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.masterySvc.UpdateKnowledgeState(c.Request.Context(), learnerID, req.ContentID, req.Results); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}

// GET /api/knowledge-state
func (h *LearnerHandler) GetKnowledgeState(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	state, err := h.masterySvc.GetKnowledgeState(c.Request.Context(), learnerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"knowledge_state": state})
}

// GET /api/progress
func (h *LearnerHandler) GetProgress(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	report, err := h.progressSvc.Report(c.Request.Context(), learnerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, report)
}

// GET /api/knowledge-gaps
func (h *LearnerHandler) GetKnowledgeGaps(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	gaps, err := h.gapAdvisor.KnowledgeGaps(c.Request.Context(), learnerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"gaps": gaps})
}

// GET /api/components/:component_id/difficulty
// Ordinal study difficulty for one component, derived from current mastery.
func (h *LearnerHandler) GetOptimalDifficulty(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	componentID, ok := pathUUID(c, "component_id")
	if !ok {
		return
	}
	level, err := h.difficulty.OptimalDifficulty(c.Request.Context(), learnerID, componentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"component_id": componentID, "optimal_difficulty": level})
}

// GET /api/disengagement
// Advisory risk heuristics over the last week of activity.
func (h *LearnerHandler) GetDisengagementRisk(c *gin.Context) {
	learnerID, ok := learnerFrom(c)
	if !ok {
		return
	}
	risk, err := h.disengagement.Detect(c.Request.Context(), learnerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, risk)
}
