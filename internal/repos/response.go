package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

// ComponentAccuracy aggregates a learner's answer history per knowledge
// component. Feeds the knowledge-gap advisor.
type ComponentAccuracy struct {
	ComponentID   uuid.UUID `gorm:"column:component_id"`
	ComponentName string    `gorm:"column:component_name"`
	Total         int       `gorm:"column:total"`
	Correct       int       `gorm:"column:correct"`
}

type ResponseRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.ResponseRecord) error
	AccuracyByComponent(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]ComponentAccuracy, error)
	RecentOutcomes(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, since time.Time) ([]bool, error)
	OverallCounts(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (total int, correct int, err error)
}

type responseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	return &responseRepo{
		db:  db,
		log: baseLog.With("repo", "ResponseRepo"),
	}
}

func (r *responseRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.ResponseRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}

func (r *responseRepo) AccuracyByComponent(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]ComponentAccuracy, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []ComponentAccuracy
	if learnerID == uuid.Nil {
		return results, nil
	}
	err := transaction.WithContext(ctx).
		Raw(`
			SELECT ai.component_id AS component_id,
			       kc.name AS component_name,
			       COUNT(rr.id) AS total,
			       SUM(CASE WHEN rr.is_correct THEN 1 ELSE 0 END) AS correct
			FROM response_record rr
			JOIN assessment_item ai ON rr.assessment_item_id = ai.id
			JOIN knowledge_component kc ON ai.component_id = kc.id
			WHERE rr.learner_id = ?
			GROUP BY ai.component_id, kc.name`,
			learnerID).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// RecentOutcomes returns correctness flags since the cutoff, oldest first.
func (r *responseRepo) RecentOutcomes(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, since time.Time) ([]bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []types.ResponseRecord
	if learnerID == uuid.Nil {
		return nil, nil
	}
	err := transaction.WithContext(ctx).
		Select("is_correct", "created_at").
		Where("learner_id = ? AND created_at > ?", learnerID, since).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	outcomes := make([]bool, 0, len(rows))
	for _, row := range rows {
		outcomes = append(outcomes, row.IsCorrect)
	}
	return outcomes, nil
}

func (r *responseRepo) OverallCounts(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (int, int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil {
		return 0, 0, nil
	}
	var counts struct {
		Total   int `gorm:"column:total"`
		Correct int `gorm:"column:correct"`
	}
	err := transaction.WithContext(ctx).
		Raw(`
			SELECT COUNT(*) AS total,
			       COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct
			FROM response_record
			WHERE learner_id = ?`,
			learnerID).
		Scan(&counts).Error
	if err != nil {
		return 0, 0, err
	}
	return counts.Total, counts.Correct, nil
}
