package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

type AssessmentItemRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AssessmentItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.AssessmentItem, error)
	NearestByDifficulty(ctx context.Context, tx *gorm.DB, componentID uuid.UUID, target float64, limit int) ([]*types.AssessmentItem, error)
}

type assessmentItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentItemRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentItemRepo {
	return &assessmentItemRepo{
		db:  db,
		log: baseLog.With("repo", "AssessmentItemRepo"),
	}
}

func (r *assessmentItemRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AssessmentItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.AssessmentItem
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
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

func (r *assessmentItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.AssessmentItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AssessmentItem
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// NearestByDifficulty returns the items for a component closest to the
// target difficulty. Ties break on id ascending so selection is
// reproducible.
func (r *assessmentItemRepo) NearestByDifficulty(ctx context.Context, tx *gorm.DB, componentID uuid.UUID, target float64, limit int) ([]*types.AssessmentItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.AssessmentItem
	if componentID == uuid.Nil {
		return results, nil
	}
	if limit <= 0 {
		limit = 3
	}
	err := transaction.WithContext(ctx).
		Where("component_id = ?", componentID).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL:                "ABS(difficulty - ?) ASC, id ASC",
				Vars:               []interface{}{target},
				WithoutParentheses: true,
			},
		}).
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
