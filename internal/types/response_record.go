package types

import (
	"time"

	"github.com/google/uuid"
)

// ResponseRecord is one submitted answer. Append-only: the core never
// mutates or deletes rows here.
type ResponseRecord struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"learner_id"`
	Learner             *Learner        `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	AssessmentItemID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"assessment_item_id"`
	AssessmentItem      *AssessmentItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentItemID;references:ID" json:"assessment_item,omitempty"`
	SubmittedAnswer     string          `gorm:"column:submitted_answer" json:"submitted_answer"`
	IsCorrect           bool            `gorm:"column:is_correct;not null" json:"is_correct"`
	ResponseTimeSeconds float64         `gorm:"column:response_time_seconds;not null;default:0" json:"response_time_seconds"`
	CreatedAt           time.Time       `gorm:"not null;default:now();index" json:"created_at"`
}

func (ResponseRecord) TableName() string { return "response_record" }
