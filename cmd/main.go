package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/advisors"
	redisclient "github.com/AayushSharma54652/Adaptive-Learning-System/internal/clients/redis"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/db"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/handlers"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/middleware"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/server"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/services"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Database
	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err := databaseService.AutoMigrateAll(); err != nil {
		log.Error("Auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := databaseService.DB()

	// Config
	cfg := services.ConfigFromEnv(log)

	// Repos
	log.Info("Setting up Repos from main...")
	learnerRepo := repos.NewLearnerRepo(theDB, log)
	componentRepo := repos.NewKnowledgeComponentRepo(theDB, log)
	masteryRepo := repos.NewMasteryStateRepo(theDB, log)
	contentRepo := repos.NewContentRepo(theDB, log)
	assessmentItemRepo := repos.NewAssessmentItemRepo(theDB, log)
	responseRepo := repos.NewResponseRepo(theDB, log)
	learningPathRepo := repos.NewLearningPathRepo(theDB, log)
	interactionRepo := repos.NewInteractionRepo(theDB, log)
	failureRepo := repos.NewFailureRepo(theDB, log)
	adaptedContentRepo := repos.NewAdaptedContentRepo(theDB, log)

	// Optional recommendation cache
	var recCache services.RecommendationCache
	cache, err := redisclient.NewRecommendationCache(context.Background(), log)
	if err != nil {
		log.Warn("Recommendation cache unavailable, running uncached", "error", err)
	} else {
		recCache = cache
		defer cache.Close()
	}

	// Advisors
	gapRecommender := advisors.NewGapRecommender(responseRepo, contentRepo, log)
	disengagementDetector := advisors.NewDisengagementDetector(interactionRepo, responseRepo, log)
	difficultyAdvisor := advisors.NewDifficultyAdvisor(masteryRepo, log)

	// Services
	log.Info("Setting up Services from main...")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	failureService := services.NewFailureService(failureRepo, adaptedContentRepo, log)
	masteryService := services.NewMasteryService(theDB, cfg, learnerRepo, masteryRepo, componentRepo, contentRepo, learningPathRepo, log)
	assessmentService := services.NewAssessmentService(theDB, cfg, assessmentItemRepo, contentRepo, masteryRepo, responseRepo, failureService, rng, log)
	progressService := services.NewProgressService(theDB, cfg, learningPathRepo, masteryRepo, responseRepo, interactionRepo, log)
	recommendationService := services.NewRecommendationService(cfg, contentRepo, masteryRepo, learningPathRepo, interactionRepo, progressService, nil, gapRecommender, recCache, log)
	adaptationService := services.NewAdaptationService(cfg, contentRepo, componentRepo, masteryRepo, adaptedContentRepo, failureService, log)
	interactionService := services.NewInteractionService(interactionRepo, log)
	contentService := services.NewContentService(contentRepo, failureService, adaptationService, interactionService, log)

	// Handlers
	log.Info("Setting up handlers from main...")
	learnerHandler := handlers.NewLearnerHandler(log, masteryService, progressService, gapRecommender, disengagementDetector, difficultyAdvisor)
	contentHandler := handlers.NewContentHandler(log, contentService)
	assessmentHandler := handlers.NewAssessmentHandler(log, assessmentService, masteryService, recommendationService)
	recommendationHandler := handlers.NewRecommendationHandler(log, recommendationService)
	adaptationHandler := handlers.NewAdaptationHandler(log, adaptationService, failureService)
	interactionHandler := handlers.NewInteractionHandler(log, interactionService)

	// Middleware
	learnerMiddleware := middleware.NewLearnerMiddleware(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		LearnerMiddleware:     learnerMiddleware,
		LearnerHandler:        learnerHandler,
		ContentHandler:        contentHandler,
		AssessmentHandler:     assessmentHandler,
		RecommendationHandler: recommendationHandler,
		AdaptationHandler:     adaptationHandler,
		InteractionHandler:    interactionHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", "error", err)
	}
}
