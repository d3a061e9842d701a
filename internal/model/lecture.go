package model

import (
	"time"

	"gorm.io/gorm"
)

// Test generation modes for a lecture.
const (
	GenerationOnce       = "once"        // one shared test, created at publish time
	GenerationPerStudent = "per_student" // a test per (lecture, student), created lazily
)

type Lecture struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	CourseID    uint   `json:"course_id" gorm:"not null;index"`
	Course      Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	Published   bool   `json:"published" gorm:"default:false"`

	// Test configuration, edited by the owning teacher. Edits take effect on
	// the next evaluation; recorded attempts are never altered retroactively.
	GenerateTest       bool    `json:"generate_test" gorm:"default:false"`
	TestGenerationMode string  `json:"test_generation_mode" gorm:"default:'once'"`
	TestMaxAttempts    int     `json:"test_max_attempts" gorm:"default:1"`
	TestShowAnswers    bool    `json:"test_show_answers" gorm:"default:false"`
	TestDeadline       *string `json:"test_deadline,omitempty"`

	Materials []ProcessedMaterial `json:"materials,omitempty" gorm:"foreignKey:LectureID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	DeletedAt gorm.DeletedAt      `gorm:"index" json:"-"`
}
