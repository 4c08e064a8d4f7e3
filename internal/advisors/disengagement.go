package advisors

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

// lookback window for the disengagement heuristics.
const disengagementWindow = 7 * 24 * time.Hour

// Risk levels reported by the detector.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// RiskAssessment summarizes how likely a learner is to drop off, with the
// signals that drove the call.
type RiskAssessment struct {
	AtRisk    bool     `json:"at_risk"`
	RiskLevel string   `json:"risk_level"`
	Signals   []string `json:"signals"`
}

// DisengagementDetector applies simple heuristics over the last week of
// interactions and graded responses.
type DisengagementDetector struct {
	interactions repos.InteractionRepo
	responses    repos.ResponseRepo
	log          *logger.Logger
}

func NewDisengagementDetector(interactions repos.InteractionRepo, responses repos.ResponseRepo, baseLog *logger.Logger) *DisengagementDetector {
	return &DisengagementDetector{
		interactions: interactions,
		responses:    responses,
		log:          baseLog.With("advisor", "DisengagementDetector"),
	}
}

// Detect flags inactivity, exit-heavy sessions, and declining accuracy over
// the lookback window. One signal is medium risk; two or more is high.
func (d *DisengagementDetector) Detect(ctx context.Context, learnerID uuid.UUID) (*RiskAssessment, error) {
	since := time.Now().UTC().Add(-disengagementWindow)

	logs, err := d.interactions.ListSince(ctx, nil, learnerID, since)
	if err != nil {
		return nil, err
	}
	outcomes, err := d.responses.RecentOutcomes(ctx, nil, learnerID, since)
	if err != nil {
		return nil, err
	}

	var signals []string
	if len(logs) == 0 {
		signals = append(signals, "no activity in the last 7 days")
	}
	if exitHeavy(logs) {
		signals = append(signals, "sessions ending in exits more often than completions")
	}
	if decliningAccuracy(outcomes) {
		signals = append(signals, "assessment accuracy declining")
	}

	out := &RiskAssessment{RiskLevel: RiskLow, Signals: signals}
	switch {
	case len(signals) >= 2:
		out.AtRisk = true
		out.RiskLevel = RiskHigh
	case len(signals) == 1:
		out.AtRisk = true
		out.RiskLevel = RiskMedium
	}
	return out, nil
}

func exitHeavy(logs []*types.InteractionLog) bool {
	var exits, completes int
	for _, l := range logs {
		switch l.Type {
		case types.InteractionExit:
			exits++
		case types.InteractionComplete:
			completes++
		}
	}
	return exits > 0 && exits > completes
}

// decliningAccuracy compares the first and second halves of the window's
// graded responses, oldest first. Needs at least four data points.
func decliningAccuracy(outcomes []bool) bool {
	if len(outcomes) < 4 {
		return false
	}
	mid := len(outcomes) / 2
	first := accuracy(outcomes[:mid])
	second := accuracy(outcomes[mid:])
	return second < first
}

func accuracy(outcomes []bool) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	var correct int
	for _, ok := range outcomes {
		if ok {
			correct++
		}
	}
	return float64(correct) / float64(len(outcomes))
}
