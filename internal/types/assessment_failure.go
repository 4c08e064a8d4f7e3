package types

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentFailure tracks consecutive failed assessments per
// (learner, content) pair. AdaptationProvided flips back to false on every
// new failure so the pipeline reconsiders remediation; a later success never
// clears the streak.
type AssessmentFailure struct {
	ID                 uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID          uuid.UUID    `gorm:"type:uuid;not null;index:idx_learner_content_failure,unique,priority:1" json:"learner_id"`
	Learner            *Learner     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	ContentID          uuid.UUID    `gorm:"type:uuid;not null;index:idx_learner_content_failure,unique,priority:2" json:"content_id"`
	Content            *ContentItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContentID;references:ID" json:"content,omitempty"`
	FailureCount       int          `gorm:"column:failure_count;not null;default:1" json:"failure_count"`
	LastScore          float64      `gorm:"column:last_score;not null" json:"last_score"`
	LastAttemptAt      time.Time    `gorm:"column:last_attempt_at;not null" json:"last_attempt_at"`
	AdaptationProvided bool         `gorm:"column:adaptation_provided;not null;default:false" json:"adaptation_provided"`
	CreatedAt          time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"not null;default:now()" json:"updated_at"`
}

func (AssessmentFailure) TableName() string { return "assessment_failure" }
