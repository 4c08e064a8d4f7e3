package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

type AdaptedContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.AdaptedContent) error
	Latest(ctx context.Context, tx *gorm.DB, learnerID, originalContentID uuid.UUID) (*types.AdaptedContent, error)
	ExistsFor(ctx context.Context, tx *gorm.DB, learnerID, originalContentID uuid.UUID) (bool, error)
}

type adaptedContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdaptedContentRepo(db *gorm.DB, baseLog *logger.Logger) AdaptedContentRepo {
	return &adaptedContentRepo{
		db:  db,
		log: baseLog.With("repo", "AdaptedContentRepo"),
	}
}

func (r *adaptedContentRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AdaptedContent) error {
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

// Latest resolves the current adaptation for a pair: the most recently
// created row wins.
func (r *adaptedContentRepo) Latest(ctx context.Context, tx *gorm.DB, learnerID, originalContentID uuid.UUID) (*types.AdaptedContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil || originalContentID == uuid.Nil {
		return nil, nil
	}
	var row types.AdaptedContent
	err := transaction.WithContext(ctx).
		Where("learner_id = ? AND original_content_id = ?", learnerID, originalContentID).
		Order("created_at DESC").
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

func (r *adaptedContentRepo) ExistsFor(ctx context.Context, tx *gorm.DB, learnerID, originalContentID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil || originalContentID == uuid.Nil {
		return false, nil
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.AdaptedContent{}).
		Where("learner_id = ? AND original_content_id = ?", learnerID, originalContentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
