package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Interaction types the recommender treats as positive signals.
const (
	InteractionComplete = "complete"
	InteractionLike     = "like"
	InteractionBookmark = "bookmark"
	InteractionStart    = "start"
	InteractionExit     = "exit"
)

// InteractionLog is the append-only record of learner activity. Source for
// the similarity and collaborative recommendation candidates and the
// disengagement heuristics.
type InteractionLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"learner_id"`
	Learner   *Learner       `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	ContentID *uuid.UUID     `gorm:"type:uuid;index" json:"content_id,omitempty"`
	Content   *ContentItem   `gorm:"constraint:OnDelete:SET NULL;foreignKey:ContentID;references:ID" json:"content,omitempty"`
	Type      string         `gorm:"column:type;not null;index" json:"type"`
	Timestamp time.Time      `gorm:"column:timestamp;not null;index" json:"timestamp"`
	Details   datatypes.JSON `gorm:"type:jsonb;column:details" json:"details,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (InteractionLog) TableName() string { return "interaction_log" }
