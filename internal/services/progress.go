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

// PathAdvance reports what happened to the learner's path pointer after an
// assessment outcome was applied.
type PathAdvance struct {
	OnPath        bool       `json:"on_path"`
	Advanced      bool       `json:"advanced"`
	Completed     bool       `json:"completed"`
	NextContentID *uuid.UUID `json:"next_content_id,omitempty"`
}

// ProgressReport aggregates a learner's standing across mastery, path, and
// assessment history.
type ProgressReport struct {
	AverageMastery     float64                 `json:"average_mastery"`
	ComponentsMastered int                     `json:"components_mastered"`
	ComponentsTotal    int                     `json:"components_total"`
	PathCompletion     float64                 `json:"path_completion"`
	PathCompleted      bool                    `json:"path_completed"`
	AssessmentsTotal   int                     `json:"assessments_total"`
	AssessmentAccuracy float64                 `json:"assessment_accuracy"`
	RecentActivity     []*types.InteractionLog `json:"recent_activity"`
}

// ProgressService owns the learner's pointer into the linear path and the
// aggregate progress metrics.
type ProgressService interface {
	ApplyOutcome(ctx context.Context, learnerID, contentID uuid.UUID, masteryAchieved bool) (*PathAdvance, error)
	Report(ctx context.Context, learnerID uuid.UUID) (*ProgressReport, error)
}

type progressService struct {
	db           *gorm.DB
	cfg          Config
	paths        repos.LearningPathRepo
	masteries    repos.MasteryStateRepo
	responses    repos.ResponseRepo
	interactions repos.InteractionRepo
	log          *logger.Logger
}

func NewProgressService(
	db *gorm.DB,
	cfg Config,
	paths repos.LearningPathRepo,
	masteries repos.MasteryStateRepo,
	responses repos.ResponseRepo,
	interactions repos.InteractionRepo,
	baseLog *logger.Logger,
) ProgressService {
	return &progressService{
		db:           db,
		cfg:          cfg,
		paths:        paths,
		masteries:    masteries,
		responses:    responses,
		interactions: interactions,
		log:          baseLog.With("service", "ProgressService"),
	}
}

// ApplyOutcome advances the learner past the content when mastery was
// achieved and the content sits at their current path position. Advancing
// off the final item completes the path. Content off the learner's path is
// a recorded no-op, never an error.
func (s *progressService) ApplyOutcome(ctx context.Context, learnerID, contentID uuid.UUID, masteryAchieved bool) (*PathAdvance, error) {
	pos, err := s.paths.PositionForContent(ctx, nil, learnerID, contentID)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return &PathAdvance{}, nil
	}
	if !masteryAchieved || pos.Completed {
		return &PathAdvance{OnPath: true}, nil
	}

	out := &PathAdvance{OnPath: true, Advanced: true}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paths.Advance(ctx, tx, pos.ID); err != nil {
			return err
		}
		count, err := s.paths.CountItems(ctx, tx, pos.PathID)
		if err != nil {
			return err
		}
		newPos := pos.CurrentPosition + 1
		if newPos >= count {
			out.Completed = true
			return s.paths.Complete(ctx, tx, pos.ID, time.Now().UTC())
		}
		next, err := s.paths.ItemAt(ctx, tx, pos.PathID, newPos)
		if err != nil {
			return err
		}
		if next != nil {
			id := next.ContentID
			out.NextContentID = &id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("path position applied",
		"learner_id", learnerID,
		"content_id", contentID,
		"advanced", out.Advanced,
		"completed", out.Completed,
	)
	return out, nil
}

func (s *progressService) Report(ctx context.Context, learnerID uuid.UUID) (*ProgressReport, error) {
	report := &ProgressReport{RecentActivity: []*types.InteractionLog{}}

	states, err := s.masteries.ListByLearner(ctx, nil, learnerID)
	if err != nil {
		return nil, err
	}
	var sum float64
	for _, st := range states {
		sum += st.Mastery
		if st.Mastery >= s.cfg.MasteryThreshold {
			report.ComponentsMastered++
		}
	}
	report.ComponentsTotal = len(states)
	if len(states) > 0 {
		report.AverageMastery = sum / float64(len(states))
	}

	pos, err := s.paths.ActivePosition(ctx, nil, learnerID)
	if err != nil {
		return nil, err
	}
	if pos != nil {
		count, err := s.paths.CountItems(ctx, nil, pos.PathID)
		if err != nil {
			return nil, err
		}
		report.PathCompleted = pos.Completed
		switch {
		case pos.Completed || count == 0:
			report.PathCompletion = 1
		default:
			report.PathCompletion = float64(pos.CurrentPosition) / float64(count)
		}
	}

	total, correct, err := s.responses.OverallCounts(ctx, nil, learnerID)
	if err != nil {
		return nil, err
	}
	report.AssessmentsTotal = total
	if total > 0 {
		report.AssessmentAccuracy = float64(correct) / float64(total)
	}

	activity, err := s.interactions.RecentActivity(ctx, nil, learnerID, 10)
	if err != nil {
		return nil, err
	}
	report.RecentActivity = activity
	return report, nil
}
