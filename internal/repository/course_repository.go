package repository

import (
	"github.com/lectio/lectio/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	FindAllWithLectures() ([]model.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) FindAllWithLectures() ([]model.Course, error) {
	var courses []model.Course
	err := r.db.
		Preload("Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Where("published = ? AND generate_test = ?", true, true).Order("lectures.created_at ASC")
		}).
		Order("courses.id ASC").
		Find(&courses).Error
	return courses, err
}
