package advisors

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

type fakeInteractionRepo struct {
	since []*types.InteractionLog
}

func (f *fakeInteractionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.InteractionLog) error {
	return nil
}

func (f *fakeInteractionRepo) RecentContentIDs(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeInteractionRepo) PositiveUnseenContentIDs(ctx context.Context, tx *gorm.DB, sourceLearnerID, targetLearnerID uuid.UUID, limit int) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeInteractionRepo) ListSince(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, since time.Time) ([]*types.InteractionLog, error) {
	return f.since, nil
}

func (f *fakeInteractionRepo) RecentActivity(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]*types.InteractionLog, error) {
	return f.since, nil
}

func logs(kinds ...string) []*types.InteractionLog {
	out := make([]*types.InteractionLog, len(kinds))
	for i, k := range kinds {
		out[i] = &types.InteractionLog{Type: k}
	}
	return out
}

func TestDetectDisengagement(t *testing.T) {
	cases := []struct {
		name      string
		logs      []*types.InteractionLog
		outcomes  []bool
		atRisk    bool
		riskLevel string
	}{
		{
			name:      "healthy activity",
			logs:      logs(types.InteractionStart, types.InteractionComplete),
			outcomes:  []bool{true, true, true, true},
			atRisk:    false,
			riskLevel: RiskLow,
		},
		{
			name:      "silent week",
			logs:      nil,
			outcomes:  nil,
			atRisk:    true,
			riskLevel: RiskMedium,
		},
		{
			name:      "exit heavy sessions",
			logs:      logs(types.InteractionStart, types.InteractionExit, types.InteractionExit, types.InteractionComplete),
			outcomes:  []bool{true, true, true, true},
			atRisk:    true,
			riskLevel: RiskMedium,
		},
		{
			name:      "exits plus sliding accuracy",
			logs:      logs(types.InteractionExit),
			outcomes:  []bool{true, true, false, false},
			atRisk:    true,
			riskLevel: RiskHigh,
		},
		{
			name:      "too little data to call a decline",
			logs:      logs(types.InteractionComplete),
			outcomes:  []bool{true, false},
			atRisk:    false,
			riskLevel: RiskLow,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDisengagementDetector(
				&fakeInteractionRepo{since: tc.logs},
				&fakeResponseRepo{outcomes: tc.outcomes},
				testLogger(t),
			)
			risk, err := d.Detect(context.Background(), uuid.New())
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if risk.AtRisk != tc.atRisk || risk.RiskLevel != tc.riskLevel {
				t.Fatalf("got atRisk=%v level=%s signals=%v, want atRisk=%v level=%s",
					risk.AtRisk, risk.RiskLevel, risk.Signals, tc.atRisk, tc.riskLevel)
			}
		})
	}
}
