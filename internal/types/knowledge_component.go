package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KnowledgeComponent is an atomic skill that content and assessment items
// are tagged against. Catalog rows are authored externally and never
// mutated by the adaptation core.
type KnowledgeComponent struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null;index" json:"name"`
	Domain      string         `gorm:"column:domain;not null" json:"domain"`
	Description string         `gorm:"column:description" json:"description"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (KnowledgeComponent) TableName() string { return "knowledge_component" }
