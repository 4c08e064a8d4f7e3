package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

// LearnerAverage is one row of the similar-learner query: a learner and the
// mean of their mastery estimates.
type LearnerAverage struct {
	LearnerID  uuid.UUID `gorm:"column:learner_id"`
	AvgMastery float64   `gorm:"column:avg_mastery"`
}

type MasteryStateRepo interface {
	Get(ctx context.Context, tx *gorm.DB, learnerID, componentID uuid.UUID) (*types.MasteryState, error)
	ListByLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]*types.MasteryState, error)
	Upsert(ctx context.Context, tx *gorm.DB, learnerID, componentID uuid.UUID, mastery float64, updatedAt time.Time) error
	InitForLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, componentIDs []uuid.UUID) error
	AverageForLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (float64, error)
	ClosestAverages(ctx context.Context, tx *gorm.DB, excludeLearnerID uuid.UUID, target float64, limit int) ([]LearnerAverage, error)
}

type masteryStateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasteryStateRepo(db *gorm.DB, baseLog *logger.Logger) MasteryStateRepo {
	return &masteryStateRepo{
		db:  db,
		log: baseLog.With("repo", "MasteryStateRepo"),
	}
}

func (r *masteryStateRepo) Get(ctx context.Context, tx *gorm.DB, learnerID, componentID uuid.UUID) (*types.MasteryState, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil || componentID == uuid.Nil {
		return nil, nil
	}
	var row types.MasteryState
	err := transaction.WithContext(ctx).
		Where("learner_id = ? AND component_id = ?", learnerID, componentID).
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

func (r *masteryStateRepo) ListByLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]*types.MasteryState, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.MasteryState
	if learnerID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Component").
		Where("learner_id = ?", learnerID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *masteryStateRepo) Upsert(ctx context.Context, tx *gorm.DB, learnerID, componentID uuid.UUID, mastery float64, updatedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil || componentID == uuid.Nil {
		return nil
	}
	row := &types.MasteryState{
		ID:          uuid.New(),
		LearnerID:   learnerID,
		ComponentID: componentID,
		Mastery:     mastery,
		LastUpdated: updatedAt,
		UpdatedAt:   updatedAt,
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "learner_id"}, {Name: "component_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"mastery", "last_updated", "updated_at",
			}),
		}).
		Create(row).Error
}

// InitForLearner seeds a zero-mastery row for every component, skipping pairs
// that already exist.
func (r *masteryStateRepo) InitForLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, componentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil || len(componentIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.MasteryState, 0, len(componentIDs))
	for _, componentID := range componentIDs {
		rows = append(rows, &types.MasteryState{
			ID:          uuid.New(),
			LearnerID:   learnerID,
			ComponentID: componentID,
			Mastery:     0,
			LastUpdated: now,
		})
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "learner_id"}, {Name: "component_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

func (r *masteryStateRepo) AverageForLearner(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if learnerID == uuid.Nil {
		return 0, nil
	}
	var avg *float64
	err := transaction.WithContext(ctx).
		Model(&types.MasteryState{}).
		Select("AVG(mastery)").
		Where("learner_id = ?", learnerID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *masteryStateRepo) ClosestAverages(ctx context.Context, tx *gorm.DB, excludeLearnerID uuid.UUID, target float64, limit int) ([]LearnerAverage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 5
	}
	var results []LearnerAverage
	err := transaction.WithContext(ctx).
		Raw(`
			SELECT learner_id, AVG(mastery) AS avg_mastery
			FROM mastery_state
			WHERE learner_id <> ? AND deleted_at IS NULL
			GROUP BY learner_id
			ORDER BY ABS(AVG(mastery) - ?) ASC
			LIMIT ?`,
			excludeLearnerID, target, limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
