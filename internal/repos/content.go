package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/logger"
	"github.com/AayushSharma54652/Adaptive-Learning-System/internal/types"
)

type ContentRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ContentItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ContentItem, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.ContentItem, error)
	ComponentMaps(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentComponentMap, error)
	EasiestByComponent(ctx context.Context, tx *gorm.DB, componentID uuid.UUID, maxDifficulty, limit int) ([]*types.ContentItem, error)
	SimilarByTags(ctx context.Context, tx *gorm.DB, tags []string, excludeID uuid.UUID, limit int) ([]*types.ContentItem, error)
	AlternativeForComponents(ctx context.Context, tx *gorm.DB, excludeContentID uuid.UUID, componentIDs []uuid.UUID) (*types.ContentItem, error)
	Prerequisites(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentItem, error)
}

type contentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	return &contentRepo{
		db:  db,
		log: baseLog.With("repo", "ContentRepo"),
	}
}

func (r *contentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ContentItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.ContentItem
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

func (r *contentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ContentItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentItem
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

func (r *contentRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.ContentItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentItem
	if err := transaction.WithContext(ctx).
		Order("difficulty ASC, title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ComponentMaps returns the weighted component mappings for a content item
// with components preloaded.
func (r *contentRepo) ComponentMaps(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentComponentMap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentComponentMap
	if contentID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Component").
		Where("content_id = ?", contentID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentRepo) EasiestByComponent(ctx context.Context, tx *gorm.DB, componentID uuid.UUID, maxDifficulty, limit int) ([]*types.ContentItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentItem
	if componentID == uuid.Nil {
		return results, nil
	}
	if limit <= 0 {
		limit = 3
	}
	query := transaction.WithContext(ctx).
		Joins("JOIN content_knowledge_map ckm ON ckm.content_id = content_item.id").
		Where("ckm.component_id = ?", componentID)
	if maxDifficulty > 0 {
		query = query.Where("content_item.difficulty <= ?", maxDifficulty)
	}
	if err := query.
		Order("content_item.difficulty ASC, content_item.id ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// SimilarByTags finds other content sharing at least one tag, in random
// order. Substring match against the stored tag string, same as the
// recommender's seed query.
func (r *contentRepo) SimilarByTags(ctx context.Context, tx *gorm.DB, tags []string, excludeID uuid.UUID, limit int) ([]*types.ContentItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentItem
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	if len(cleaned) == 0 {
		return results, nil
	}
	if limit <= 0 {
		limit = 2
	}
	query := transaction.WithContext(ctx).Where("id <> ?", excludeID)
	tagScope := transaction.Session(&gorm.Session{NewDB: true}).Model(&types.ContentItem{})
	for _, tag := range cleaned {
		tagScope = tagScope.Or("tags LIKE ?", "%"+tag+"%")
	}
	if err := query.
		Where(tagScope).
		Order("RANDOM()").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// AlternativeForComponents picks the easiest other content covering any of
// the given components. Used when a learner fails and should not advance.
func (r *contentRepo) AlternativeForComponents(ctx context.Context, tx *gorm.DB, excludeContentID uuid.UUID, componentIDs []uuid.UUID) (*types.ContentItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(componentIDs) == 0 {
		return nil, nil
	}
	var row types.ContentItem
	err := transaction.WithContext(ctx).
		Joins("JOIN content_knowledge_map ckm ON ckm.content_id = content_item.id").
		Where("content_item.id <> ?", excludeContentID).
		Where("ckm.component_id IN ?", componentIDs).
		Order("content_item.difficulty ASC, content_item.id ASC").
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

func (r *contentRepo) Prerequisites(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) ([]*types.ContentItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ContentItem
	if contentID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Joins("JOIN content_prerequisite cp ON cp.prerequisite_id = content_item.id").
		Where("cp.content_id = ?", contentID).
		Order("content_item.difficulty ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
