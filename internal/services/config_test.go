package services

import "testing"

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg := ConfigFromEnv(testLogger(t))
	if cfg != DefaultConfig() {
		t.Fatalf("with no overrides set, got %+v", cfg)
	}
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("MASTERY_LEARNING_RATE", "0.2")
	t.Setenv("MASTERY_THRESHOLD", "0.9")
	t.Setenv("ASSESSMENT_MAX_QUESTIONS", "7")
	t.Setenv("ASSESSMENT_ITEMS_PER_COMPONENT", "4")
	t.Setenv("RECOMMENDATION_LIMIT", "8")
	t.Setenv("WEAK_MASTERY_CUTOFF", "0.5")
	t.Setenv("DEFAULT_EVIDENCE_SCORE", "0.35")

	cfg := ConfigFromEnv(testLogger(t))
	want := Config{
		LearningRate:         0.2,
		MasteryThreshold:     0.9,
		MaxQuestions:         7,
		ItemsPerComponent:    4,
		MaxRecommendations:   8,
		WeakMasteryCutoff:    0.5,
		DefaultEvidenceScore: 0.35,
	}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}
