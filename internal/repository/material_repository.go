package repository

import (
	"github.com/lectio/lectio/internal/model"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	// FindProcessedByLecture returns materials that have extracted text.
	FindProcessedByLecture(lectureID uint) ([]model.ProcessedMaterial, error)
}

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) FindProcessedByLecture(lectureID uint) ([]model.ProcessedMaterial, error) {
	var materials []model.ProcessedMaterial
	err := r.db.
		Where("lecture_id = ? AND processed_text IS NOT NULL AND processed_text <> ''", lectureID).
		Order("id ASC").
		Find(&materials).Error
	return materials, err
}
