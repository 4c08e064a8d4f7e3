package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdaptedContent is a learner-specific simplified/extended variant of a
// content item, produced after assessment failure. Append-only log; the
// current adaptation for a pair is the most recently created row.
type AdaptedContent struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_learner_original,priority:1" json:"learner_id"`
	Learner            *Learner       `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	OriginalContentID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_learner_original,priority:2" json:"original_content_id"`
	OriginalContent    *ContentItem   `gorm:"constraint:OnDelete:CASCADE;foreignKey:OriginalContentID;references:ID" json:"original_content,omitempty"`
	Title              string         `gorm:"column:title;not null" json:"title"`
	Body               datatypes.JSON `gorm:"type:jsonb;column:body;not null" json:"body"`
	AdaptationReason   string         `gorm:"column:adaptation_reason" json:"adaptation_reason"`
	TargetedComponents datatypes.JSON `gorm:"type:jsonb;column:targeted_components" json:"targeted_components,omitempty"`
	CreatedAt          time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (AdaptedContent) TableName() string { return "adapted_content" }
