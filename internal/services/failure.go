package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/repos"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

// FailureService keeps the per-(learner, content) failure streak that gates
// content adaptation. RecordFailure takes a tx so the evaluator can commit
// the streak with the responses it grades.
type FailureService interface {
	RecordFailure(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID, score float64) error
	NeedsAdaptation(ctx context.Context, learnerID, contentID uuid.UUID) (bool, error)
	MarkAdaptationProvided(ctx context.Context, learnerID, contentID uuid.UUID) error
	FailureState(ctx context.Context, learnerID, contentID uuid.UUID) (*types.AssessmentFailure, error)
}

type failureService struct {
	failures repos.FailureRepo
	adapted  repos.AdaptedContentRepo
	log      *logger.Logger
}

func NewFailureService(failures repos.FailureRepo, adapted repos.AdaptedContentRepo, baseLog *logger.Logger) FailureService {
	return &failureService{
		failures: failures,
		adapted:  adapted,
		log:      baseLog.With("service", "FailureService"),
	}
}

// RecordFailure starts or extends the streak. Every repeat failure flips
// adaptation_provided back to false so a fresh adaptation is owed even if
// one was already delivered.
func (s *failureService) RecordFailure(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID, score float64) error {
	now := time.Now().UTC()
	existing, err := s.failures.Get(ctx, tx, learnerID, contentID)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.failures.Create(ctx, tx, &types.AssessmentFailure{
			ID:            uuid.New(),
			LearnerID:     learnerID,
			ContentID:     contentID,
			FailureCount:  1,
			LastScore:     score,
			LastAttemptAt: now,
		})
	}
	return s.failures.RecordRepeat(ctx, tx, existing.ID, score, now)
}

// NeedsAdaptation reports whether the learner should see an adapted variant
// of the content: either one already exists, or there is an unserviced
// failure streak.
func (s *failureService) NeedsAdaptation(ctx context.Context, learnerID, contentID uuid.UUID) (bool, error) {
	exists, err := s.adapted.ExistsFor(ctx, nil, learnerID, contentID)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}
	failure, err := s.failures.Get(ctx, nil, learnerID, contentID)
	if err != nil {
		return false, err
	}
	return failure != nil && failure.FailureCount > 0 && !failure.AdaptationProvided, nil
}

func (s *failureService) MarkAdaptationProvided(ctx context.Context, learnerID, contentID uuid.UUID) error {
	return s.failures.MarkAdaptationProvided(ctx, nil, learnerID, contentID)
}

func (s *failureService) FailureState(ctx context.Context, learnerID, contentID uuid.UUID) (*types.AssessmentFailure, error) {
	return s.failures.Get(ctx, nil, learnerID, contentID)
}
