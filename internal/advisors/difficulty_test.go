package advisors

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

type fakeMasteryRepo struct {
	states map[uuid.UUID]float64
}

func (f *fakeMasteryRepo) Get(ctx context.Context, tx *gorm.DB, learnerID, componentID uuid.UUID) (*types.MasteryState, error) {
	mastery, ok := f.states[componentID]
	if !ok {
		return nil, nil
	}
	return &types.MasteryState{
		ID:          uuid.New(),
		LearnerID:   learnerID,
		ComponentID: componentID,
		Mastery:     mastery,
	}, nil
}

func (f *fakeMasteryRepo) ListByLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]*types.MasteryState, error) {
	return nil, nil
}

func (f *fakeMasteryRepo) Upsert(ctx context.Context, tx *gorm.DB, learnerID, componentID uuid.UUID, mastery float64, updatedAt time.Time) error {
	return nil
}

func (f *fakeMasteryRepo) InitForLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, componentIDs []uuid.UUID) error {
	return nil
}

func (f *fakeMasteryRepo) AverageForLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (float64, error) {
	return 0, nil
}

func (f *fakeMasteryRepo) ClosestAverages(ctx context.Context, tx *gorm.DB, excludeLearnerID uuid.UUID, target float64, limit int) ([]repos.LearnerAverage, error) {
	return nil, nil
}

func TestOptimalDifficulty(t *testing.T) {
	learnerID := uuid.New()
	known := uuid.New()
	unknown := uuid.New()

	cases := []struct {
		name    string
		mastery float64
		want    int
	}{
		{name: "low mastery studies easy", mastery: 0.1, want: 1},
		{name: "boundary to medium", mastery: 0.3, want: 2},
		{name: "mid mastery studies medium", mastery: 0.45, want: 2},
		{name: "boundary to hard", mastery: 0.6, want: 3},
		{name: "high mastery studies hard", mastery: 0.9, want: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			advisor := NewDifficultyAdvisor(&fakeMasteryRepo{states: map[uuid.UUID]float64{known: tc.mastery}}, testLogger(t))
			got, err := advisor.OptimalDifficulty(context.Background(), learnerID, known)
			if err != nil {
				t.Fatalf("OptimalDifficulty: %v", err)
			}
			if got != tc.want {
				t.Fatalf("mastery %.2f: got level %d, want %d", tc.mastery, got, tc.want)
			}
		})
	}

	t.Run("unknown component defaults to easy", func(t *testing.T) {
		advisor := NewDifficultyAdvisor(&fakeMasteryRepo{states: map[uuid.UUID]float64{}}, testLogger(t))
		got, err := advisor.OptimalDifficulty(context.Background(), learnerID, unknown)
		if err != nil {
			t.Fatalf("OptimalDifficulty: %v", err)
		}
		if got != 1 {
			t.Fatalf("got level %d, want 1", got)
		}
	})
}
