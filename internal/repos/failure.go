package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

type FailureRepo interface {
	Get(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID) (*types.AssessmentFailure, error)
	Create(ctx context.Context, tx *gorm.DB, row *types.AssessmentFailure) error
	RecordRepeat(ctx context.Context, tx *gorm.DB, id uuid.UUID, score float64, at time.Time) error
	MarkAdaptationProvided(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID) error
}

type failureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFailureRepo(db *gorm.DB, baseLog *logger.Logger) FailureRepo {
	return &failureRepo{
		db:  db,
		log: baseLog.With("repo", "FailureRepo"),
	}
}

func (r *failureRepo) Get(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID) (*types.AssessmentFailure, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil || contentID == uuid.Nil {
		return nil, nil
	}
	var row types.AssessmentFailure
	err := transaction.WithContext(ctx).
		Where("learner_id = ? AND content_id = ?", learnerID, contentID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *failureRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AssessmentFailure) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return transaction.WithContext(ctx).Create(row).Error
}

// RecordRepeat increments the failure count, refreshes score and timestamp,
// and resets adaptation_provided so the pipeline reconsiders remediation.
func (r *failureRepo) RecordRepeat(ctx context.Context, tx *gorm.DB, id uuid.UUID, score float64, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.AssessmentFailure{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"failure_count":       gorm.Expr("failure_count + 1"),
			"last_score":          score,
			"last_attempt_at":     at,
			"adaptation_provided": false,
		}).Error
}

func (r *failureRepo) MarkAdaptationProvided(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil || contentID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.AssessmentFailure{}).
		Where("learner_id = ? AND content_id = ?", learnerID, contentID).
		UpdateColumn("adaptation_provided", true).Error
}
