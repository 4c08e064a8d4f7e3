package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

type LearningPathRepo interface {
	DefaultPath(ctx context.Context, tx *gorm.DB) (*types.LearningPath, error)
	ActivePosition(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (*types.PathPosition, error)
	PositionForContent(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID) (*types.PathPosition, error)
	ItemAt(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, sequenceOrder int) (*types.LearningPathItem, error)
	NextItemAfter(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, sequenceOrder int) (*types.LearningPathItem, error)
	CountItems(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (int, error)
	CreatePosition(ctx context.Context, tx *gorm.DB, row *types.PathPosition) error
	Advance(ctx context.Context, tx *gorm.DB, positionID uuid.UUID) error
	Complete(ctx context.Context, tx *gorm.DB, positionID uuid.UUID, at time.Time) error
}

type learningPathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPathRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathRepo {
	return &learningPathRepo{
		db:  db,
		log: baseLog.With("repo", "LearningPathRepo"),
	}
}

func (r *learningPathRepo) DefaultPath(ctx context.Context, tx *gorm.DB) (*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.LearningPath
	err := transaction.WithContext(ctx).
		Order("created_at ASC").
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

// ActivePosition returns the learner's most recently started uncompleted
// position, or nil.
func (r *learningPathRepo) ActivePosition(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (*types.PathPosition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil {
		return nil, nil
	}
	var row types.PathPosition
	err := transaction.WithContext(ctx).
		Where("learner_id = ? AND completed = ?", learnerID, false).
		Order("started_at DESC").
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

// PositionForContent returns the learner's uncompleted position on a path
// that contains the given content, or nil when the content is off-path.
func (r *learningPathRepo) PositionForContent(ctx context.Context, tx *gorm.DB, learnerID, contentID uuid.UUID) (*types.PathPosition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil || contentID == uuid.Nil {
		return nil, nil
	}
	var row types.PathPosition
	err := transaction.WithContext(ctx).
		Select("learner_path_position.*").
		Joins("JOIN learning_path_item lpi ON lpi.path_id = learner_path_position.path_id").
		Where("learner_path_position.learner_id = ?", learnerID).
		Where("learner_path_position.completed = ?", false).
		Where("lpi.content_id = ?", contentID).
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

func (r *learningPathRepo) ItemAt(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, sequenceOrder int) (*types.LearningPathItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if pathID == uuid.Nil {
		return nil, nil
	}
	var row types.LearningPathItem
	err := transaction.WithContext(ctx).
		Preload("Content").
		Where("path_id = ? AND sequence_order = ?", pathID, sequenceOrder).
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

func (r *learningPathRepo) NextItemAfter(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, sequenceOrder int) (*types.LearningPathItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if pathID == uuid.Nil {
		return nil, nil
	}
	var row types.LearningPathItem
	err := transaction.WithContext(ctx).
		Preload("Content").
		Where("path_id = ? AND sequence_order > ?", pathID, sequenceOrder).
		Order("sequence_order ASC").
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

func (r *learningPathRepo) CountItems(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if pathID == uuid.Nil {
		return 0, nil
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.LearningPathItem{}).
		Where("path_id = ?", pathID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *learningPathRepo) CreatePosition(ctx context.Context, tx *gorm.DB, row *types.PathPosition) error {
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

func (r *learningPathRepo) Advance(ctx context.Context, tx *gorm.DB, positionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if positionID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.PathPosition{}).
		Where("id = ?", positionID).
		UpdateColumn("current_position", gorm.Expr("current_position + 1")).Error
}

func (r *learningPathRepo) Complete(ctx context.Context, tx *gorm.DB, positionID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if positionID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.PathPosition{}).
		Where("id = ?", positionID).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": at,
		}).Error
}
