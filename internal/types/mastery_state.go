package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MasteryState holds the learner's estimated proficiency (0..1) for one
// knowledge component. One row per (learner, component); created at learner
// initialization and mutated only by the mastery updater.
type MasteryState struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID   uuid.UUID           `gorm:"type:uuid;not null;index:idx_learner_component,unique,priority:1" json:"learner_id"`
	Learner     *Learner            `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	ComponentID uuid.UUID           `gorm:"type:uuid;not null;index:idx_learner_component,unique,priority:2" json:"component_id"`
	Component   *KnowledgeComponent `gorm:"constraint:OnDelete:CASCADE;foreignKey:ComponentID;references:ID" json:"component,omitempty"`
	Mastery     float64             `gorm:"column:mastery;not null;default:0" json:"mastery"` // 0..1
	LastUpdated time.Time           `gorm:"column:last_updated;not null;default:now()" json:"last_updated"`
	CreatedAt   time.Time           `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"deleted_at,omitempty"`
}

func (MasteryState) TableName() string { return "mastery_state" }
