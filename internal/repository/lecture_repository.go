package repository

import (
	"github.com/lectio/lectio/internal/model"
	"gorm.io/gorm"
)

type LectureRepository interface {
	FindByID(id uint) (*model.Lecture, error)
	// FindPublishedWithTests returns the course's published lectures that
	// have test generation enabled, in creation order.
	FindPublishedWithTests(courseID uint) ([]model.Lecture, error)
}

type lectureRepository struct {
	db *gorm.DB
}

func NewLectureRepository(db *gorm.DB) LectureRepository {
	return &lectureRepository{db: db}
}

func (r *lectureRepository) FindByID(id uint) (*model.Lecture, error) {
	var lecture model.Lecture
	if err := r.db.First(&lecture, id).Error; err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *lectureRepository) FindPublishedWithTests(courseID uint) ([]model.Lecture, error) {
	var lectures []model.Lecture
	err := r.db.
		Where("course_id = ? AND published = ? AND generate_test = ?", courseID, true, true).
		Order("created_at ASC").
		Find(&lectures).Error
	return lectures, err
}
