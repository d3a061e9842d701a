package model

import (
	"time"

	"gorm.io/gorm"
)

// TestAttempt is one completed submission. Attempts are append-only and
// ordered by CompletedAt ascending. AttemptNo is assigned inside the
// submission transaction; the unique index makes a duplicate concurrent
// submission collide instead of exceeding the attempt cap.
type TestAttempt struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	TestID         uint           `json:"test_id" gorm:"not null;index;uniqueIndex:idx_attempts_seq"`
	Test           Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	UserID         uint           `json:"user_id" gorm:"not null;index;uniqueIndex:idx_attempts_seq"`
	AttemptNo      int            `json:"attempt_no" gorm:"not null;uniqueIndex:idx_attempts_seq"`
	Answers        string         `json:"answers" gorm:"type:text"` // JSON object: question id -> raw student answer
	Score          float64        `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	CompletedAt    time.Time      `json:"completed_at" gorm:"not null;index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
