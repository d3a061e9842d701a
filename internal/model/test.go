package model

import (
	"time"

	"gorm.io/gorm"
)

// Test is the ordered set of questions for a lecture. UserID is nil for a
// shared test (once mode) and set for per-student tests. The composite index
// backs the idempotent ensure-test path: concurrent first access for the
// same (lecture, student) pair must observe a single test.
type Test struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	LectureID uint           `json:"lecture_id" gorm:"not null;index;uniqueIndex:idx_tests_lecture_user"`
	Lecture   Lecture        `json:"lecture,omitempty" gorm:"foreignKey:LectureID"`
	UserID    *uint          `json:"user_id,omitempty" gorm:"uniqueIndex:idx_tests_lecture_user"`
	Questions []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
