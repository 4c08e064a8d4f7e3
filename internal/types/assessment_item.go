package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentItem is an authored question tagged against a single knowledge
// component. Difficulty is real-valued so items can sit between the ordinal
// content levels.
type AssessmentItem struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Prompt        string              `gorm:"column:prompt;not null" json:"prompt"`
	Type          string              `gorm:"column:type;not null;default:'multiple_choice'" json:"type"`
	Options       datatypes.JSON      `gorm:"type:jsonb;column:options" json:"options,omitempty"`
	CorrectAnswer string              `gorm:"column:correct_answer;not null" json:"-"`
	Explanation   string              `gorm:"column:explanation" json:"explanation,omitempty"`
	Difficulty    float64             `gorm:"column:difficulty;not null;default:1" json:"difficulty"`
	ComponentID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"component_id"`
	Component     *KnowledgeComponent `gorm:"constraint:OnDelete:CASCADE;foreignKey:ComponentID;references:ID" json:"component,omitempty"`
	CreatedAt     time.Time           `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"deleted_at,omitempty"`
}

func (AssessmentItem) TableName() string { return "assessment_item" }
