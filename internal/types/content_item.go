package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentItem is an authored learning unit. Body is the serialized
// ContentBody document; Tags is the comma-joined tag string the
// similarity recommender substring-matches against.
type ContentItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	Difficulty  int            `gorm:"column:difficulty;not null;default:1" json:"difficulty"` // ordinal 1..3
	Tags        string         `gorm:"column:tags" json:"tags"`
	Body        datatypes.JSON `gorm:"type:jsonb;column:body" json:"body"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentItem) TableName() string { return "content_item" }

// ContentComponentMap links content to the knowledge components it teaches,
// weighted by how strongly the content exercises the component.
type ContentComponentMap struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContentID       uuid.UUID           `gorm:"type:uuid;not null;index:idx_content_component,unique,priority:1" json:"content_id"`
	Content         *ContentItem        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContentID;references:ID" json:"content,omitempty"`
	ComponentID     uuid.UUID           `gorm:"type:uuid;not null;index:idx_content_component,unique,priority:2" json:"component_id"`
	Component       *KnowledgeComponent `gorm:"constraint:OnDelete:CASCADE;foreignKey:ComponentID;references:ID" json:"component,omitempty"`
	RelevanceWeight float64             `gorm:"column:relevance_weight;not null;default:1" json:"relevance_weight"` // (0,1]
	CreatedAt       time.Time           `gorm:"not null;default:now()" json:"created_at"`
}

func (ContentComponentMap) TableName() string { return "content_knowledge_map" }

// ContentPrerequisite records that one content item should be completed
// before another.
type ContentPrerequisite struct {
	ID             uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContentID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_content_prereq,unique,priority:1" json:"content_id"`
	PrerequisiteID uuid.UUID    `gorm:"type:uuid;not null;index:idx_content_prereq,unique,priority:2" json:"prerequisite_id"`
	Prerequisite   *ContentItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:PrerequisiteID;references:ID" json:"prerequisite,omitempty"`
	CreatedAt      time.Time    `gorm:"not null;default:now()" json:"created_at"`
}

func (ContentPrerequisite) TableName() string { return "content_prerequisite" }
