package services

import (
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/utils"
)

// Config carries the tunable constants of the adaptation core. Built from
// the environment in main and injected into services; defaults mirror the
// canonical deployment.
type Config struct {
	// LearningRate damps how far one assessment moves a mastery estimate.
	LearningRate float64
	// MasteryThreshold is the total-score cutoff for mastery_achieved.
	MasteryThreshold float64
	// MaxQuestions caps the questions in one generated assessment.
	MaxQuestions int
	// ItemsPerComponent caps nearest-difficulty picks per knowledge component.
	ItemsPerComponent int
	// MaxRecommendations caps the merged recommendation list.
	MaxRecommendations int
	// WeakMasteryCutoff marks components eligible for remedial content.
	WeakMasteryCutoff float64
	// DefaultEvidenceScore substitutes for responses missing an explicit score.
	DefaultEvidenceScore float64
}

func DefaultConfig() Config {
	return Config{
		LearningRate:         0.1,
		MasteryThreshold:     0.8,
		MaxQuestions:         5,
		ItemsPerComponent:    3,
		MaxRecommendations:   5,
		WeakMasteryCutoff:    0.6,
		DefaultEvidenceScore: 0.5,
	}
}

// ConfigFromEnv overlays environment overrides onto the defaults.
func ConfigFromEnv(log *logger.Logger) Config {
	cfg := DefaultConfig()
	cfg.LearningRate = utils.GetEnvAsFloat("MASTERY_LEARNING_RATE", cfg.LearningRate, log)
	cfg.MasteryThreshold = utils.GetEnvAsFloat("MASTERY_THRESHOLD", cfg.MasteryThreshold, log)
	cfg.MaxQuestions = utils.GetEnvAsInt("ASSESSMENT_MAX_QUESTIONS", cfg.MaxQuestions, log)
	cfg.ItemsPerComponent = utils.GetEnvAsInt("ASSESSMENT_ITEMS_PER_COMPONENT", cfg.ItemsPerComponent, log)
	cfg.MaxRecommendations = utils.GetEnvAsInt("RECOMMENDATION_LIMIT", cfg.MaxRecommendations, log)
	cfg.WeakMasteryCutoff = utils.GetEnvAsFloat("WEAK_MASTERY_CUTOFF", cfg.WeakMasteryCutoff, log)
	cfg.DefaultEvidenceScore = utils.GetEnvAsFloat("DEFAULT_EVIDENCE_SCORE", cfg.DefaultEvidenceScore, log)
	return cfg
}
