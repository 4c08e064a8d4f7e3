package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

type InteractionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.InteractionLog) error
	RecentContentIDs(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]uuid.UUID, error)
	PositiveUnseenContentIDs(ctx context.Context, tx *gorm.DB, sourceLearnerID, targetLearnerID uuid.UUID, limit int) ([]uuid.UUID, error)
	ListSince(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, since time.Time) ([]*types.InteractionLog, error)
	RecentActivity(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]*types.InteractionLog, error)
}

type interactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInteractionRepo(db *gorm.DB, baseLog *logger.Logger) InteractionRepo {
	return &interactionRepo{
		db:  db,
		log: baseLog.With("repo", "InteractionRepo"),
	}
}

func (r *interactionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.InteractionLog) error {
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

// RecentContentIDs returns distinct content the learner touched most
// recently, newest first.
func (r *interactionRepo) RecentContentIDs(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}
	var rows []types.InteractionLog
	err := transaction.WithContext(ctx).
		Select("content_id", "timestamp").
		Where("learner_id = ? AND content_id IS NOT NULL", learnerID).
		Order("timestamp DESC").
		Limit(limit * 4).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, limit)
	ids := make([]uuid.UUID, 0, limit)
	for _, row := range rows {
		if row.ContentID == nil || seen[*row.ContentID] {
			continue
		}
		seen[*row.ContentID] = true
		ids = append(ids, *row.ContentID)
		if len(ids) >= limit {
			break
		}
	}
	return ids, nil
}

// PositiveUnseenContentIDs finds content a similar learner completed, liked
// or bookmarked that the target learner has never touched.
func (r *interactionRepo) PositiveUnseenContentIDs(ctx context.Context, tx *gorm.DB, sourceLearnerID, targetLearnerID uuid.UUID, limit int) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if sourceLearnerID == uuid.Nil || targetLearnerID == uuid.Nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 2
	}
	var ids []uuid.UUID
	err := transaction.WithContext(ctx).
		Raw(`
			SELECT DISTINCT il.content_id
			FROM interaction_log il
			WHERE il.learner_id = ?
			  AND il.type IN (?, ?, ?)
			  AND il.content_id IS NOT NULL
			  AND il.content_id NOT IN (
			      SELECT content_id FROM interaction_log
			      WHERE learner_id = ? AND content_id IS NOT NULL
			  )
			LIMIT ?`,
			sourceLearnerID,
			types.InteractionComplete, types.InteractionLike, types.InteractionBookmark,
			targetLearnerID, limit).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *interactionRepo) ListSince(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, since time.Time) ([]*types.InteractionLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.InteractionLog
	if learnerID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("learner_id = ? AND timestamp > ?", learnerID, since).
		Order("timestamp DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *interactionRepo) RecentActivity(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]*types.InteractionLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.InteractionLog
	if learnerID == uuid.Nil {
		return results, nil
	}
	if limit <= 0 {
		limit = 10
	}
	if err := transaction.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
