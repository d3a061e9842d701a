package model

import (
	"time"

	"gorm.io/gorm"
)

// ProcessedMaterial holds the extracted text of one lecture material.
// Extraction (transcription, PDF parsing) happens outside this service; the
// question generator only reads the processed text.
type ProcessedMaterial struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	LectureID     uint           `json:"lecture_id" gorm:"not null;index"`
	FileName      string         `json:"file_name"`
	ProcessedText string         `json:"processed_text,omitempty" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
