package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LearningPath is an ordered content sequence learners progress through
// linearly.
type LearningPath struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningPath) TableName() string { return "learning_path" }

// LearningPathItem pins one content item at a position in a path.
// SequenceOrder starts at 0.
type LearningPathItem struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PathID        uuid.UUID     `gorm:"type:uuid;not null;index:idx_path_sequence,unique,priority:1" json:"path_id"`
	Path          *LearningPath `gorm:"constraint:OnDelete:CASCADE;foreignKey:PathID;references:ID" json:"path,omitempty"`
	ContentID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"content_id"`
	Content       *ContentItem  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContentID;references:ID" json:"content,omitempty"`
	SequenceOrder int           `gorm:"column:sequence_order;not null;index:idx_path_sequence,unique,priority:2" json:"sequence_order"`
	CreatedAt     time.Time     `gorm:"not null;default:now()" json:"created_at"`
}

func (LearningPathItem) TableName() string { return "learning_path_item" }

// PathPosition is a learner's pointer into a path. The core relies on at
// most one uncompleted row per learner being active.
type PathPosition struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID       uuid.UUID     `gorm:"type:uuid;not null;index:idx_learner_path,unique,priority:1" json:"learner_id"`
	Learner         *Learner      `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	PathID          uuid.UUID     `gorm:"type:uuid;not null;index:idx_learner_path,unique,priority:2" json:"path_id"`
	Path            *LearningPath `gorm:"constraint:OnDelete:CASCADE;foreignKey:PathID;references:ID" json:"path,omitempty"`
	CurrentPosition int           `gorm:"column:current_position;not null;default:0" json:"current_position"`
	Completed       bool          `gorm:"column:completed;not null;default:false" json:"completed"`
	StartedAt       time.Time     `gorm:"column:started_at;not null;default:now()" json:"started_at"`
	CompletedAt     *time.Time    `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (PathPosition) TableName() string { return "learner_path_position" }
