package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/handlers"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/middleware"
)

type RouterConfig struct {
	LearnerMiddleware     *middleware.LearnerMiddleware
	LearnerHandler        *handlers.LearnerHandler
	ContentHandler        *handlers.ContentHandler
	AssessmentHandler     *handlers.AssessmentHandler
	RecommendationHandler *handlers.RecommendationHandler
	AdaptationHandler     *handlers.AdaptationHandler
	InteractionHandler    *handlers.InteractionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.LearnerHeader},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.LearnerMiddleware.Resolve())
	{
		// Learner
		api.POST("/learners/init", cfg.LearnerHandler.InitializeLearner)
		api.GET("/knowledge-state", cfg.LearnerHandler.GetKnowledgeState)
		api.POST("/knowledge-state/update", cfg.LearnerHandler.UpdateKnowledgeState)
		api.GET("/progress", cfg.LearnerHandler.GetProgress)
		api.GET("/knowledge-gaps", cfg.LearnerHandler.GetKnowledgeGaps)
		api.GET("/disengagement", cfg.LearnerHandler.GetDisengagementRisk)
		api.GET("/components/:component_id/difficulty", cfg.LearnerHandler.GetOptimalDifficulty)
		// Content
		api.GET("/content", cfg.ContentHandler.ListContent)
		api.GET("/content/:content_id", cfg.ContentHandler.GetContent)
		api.GET("/content/:content_id/prerequisites", cfg.ContentHandler.GetPrerequisites)
		api.GET("/learning/:content_id", cfg.ContentHandler.GetLearningContent)
		// Assessment
		api.GET("/assessments/:content_id", cfg.AssessmentHandler.GetAssessment)
		api.POST("/assessments/submit", cfg.AssessmentHandler.SubmitAssessment)
		// Recommendations
		api.GET("/recommendations", cfg.RecommendationHandler.GetRecommendations)
		api.POST("/next-content", cfg.RecommendationHandler.GetNextContent)
		// Adaptation
		api.GET("/adapted-content/:content_id", cfg.AdaptationHandler.GetAdaptedContent)
		api.GET("/adapted-content/:content_id/check", cfg.AdaptationHandler.CheckAdaptation)
		api.POST("/adapted-content/:content_id/generate", cfg.AdaptationHandler.GenerateAdaptedContent)
		// Interactions
		api.POST("/interactions", cfg.InteractionHandler.LogInteraction)
	}

	return router
}
