package model

import (
	"time"

	"gorm.io/gorm"
)

// Question types.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionOpen           = "open"
)

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	CorrectAnswer string         `json:"correct_answer" gorm:"type:text;not null"`
	Options       *string        `json:"options,omitempty" gorm:"type:text"` // JSON array of option strings for multiple_choice
	QuestionType  string         `json:"question_type" gorm:"not null"`
	OrderIndex    int            `json:"order_index" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
