package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Learner is the minimal identity row the core keys state against.
// Credentials and profile editing live in the external web layer.
type Learner struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username  string         `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Email     string         `gorm:"column:email" json:"email,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Learner) TableName() string { return "learner" }
