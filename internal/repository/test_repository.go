package repository

import (
	"errors"

	"github.com/lectio/lectio/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	// CreateWithQuestions persists the test and its questions in one write.
	CreateWithQuestions(test *model.Test) error
	FindByIDWithQuestions(id uint) (*model.Test, error)
	// FindLatestShared returns the newest shared (user-less) test for a
	// lecture, nil when none exists.
	FindLatestShared(lectureID uint) (*model.Test, error)
	// FindLatestForUser returns the newest per-student test for the
	// (lecture, user) pair, nil when none exists.
	FindLatestForUser(lectureID, userID uint) (*model.Test, error)
	FindAllByLecture(lectureID uint) ([]model.Test, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) CreateWithQuestions(test *model.Test) error {
	return r.db.Create(test).Error
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindLatestShared(lectureID uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).
		Where("lecture_id = ? AND user_id IS NULL", lectureID).
		Order("created_at DESC").
		First(&test).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindLatestForUser(lectureID, userID uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).
		Where("lecture_id = ? AND user_id = ?", lectureID, userID).
		Order("created_at DESC").
		First(&test).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAllByLecture(lectureID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).
		Where("lecture_id = ?", lectureID).
		Order("created_at ASC").
		Find(&tests).Error
	return tests, err
}
