package advisors

import (
	"context"

	"github.com/google/uuid"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
)

// DifficultyAdvisor maps a learner's mastery of a component to the ordinal
// content difficulty they should study at next.
type DifficultyAdvisor struct {
	masteries repos.MasteryStateRepo
	log       *logger.Logger
}

func NewDifficultyAdvisor(masteries repos.MasteryStateRepo, baseLog *logger.Logger) *DifficultyAdvisor {
	return &DifficultyAdvisor{
		masteries: masteries,
		log:       baseLog.With("advisor", "DifficultyAdvisor"),
	}
}

// OptimalDifficulty returns 1, 2, or 3. Unknown learners study at level 1.
func (d *DifficultyAdvisor) OptimalDifficulty(ctx context.Context, learnerID, componentID uuid.UUID) (int, error) {
	var mastery float64
	state, err := d.masteries.Get(ctx, nil, learnerID, componentID)
	if err != nil {
		return 0, err
	}
	if state != nil {
		mastery = state.Mastery
	}
	switch {
	case mastery < 0.3:
		return 1, nil
	case mastery < 0.6:
		return 2, nil
	default:
		return 3, nil
	}
}
