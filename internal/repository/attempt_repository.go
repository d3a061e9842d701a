package repository

import (
	"errors"
	"fmt"

	"github.com/lectio/lectio/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAttemptLimitReached is returned by CreateCapped when the serialized
// recount shows no attempts remain. Expected under duplicate submissions; it
// is policy, not a fault.
var ErrAttemptLimitReached = errors.New("attempt limit reached")

type AttemptRepository interface {
	// FindAllByTestAndUser returns a learner's attempts ordered by
	// completion time ascending, so attempt #1 comes first.
	FindAllByTestAndUser(testID, userID uint) ([]model.TestAttempt, error)
	CountByTestAndUser(testID, userID uint) (int64, error)
	// FindAllByTests returns every attempt on the given tests, newest
	// first, for staff reporting.
	FindAllByTests(testIDs []uint) ([]model.TestAttempt, error)
	// CreateCapped inserts the attempt only if the learner still has
	// attempts left, with the count-and-insert serialized against the test
	// row. Two racing submissions cannot both pass the cap: the second
	// either sees the recount fail or collides on the attempt sequence
	// index.
	CreateCapped(attempt *model.TestAttempt, maxAttempts int) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) FindAllByTestAndUser(testID, userID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.
		Where("test_id = ? AND user_id = ?", testID, userID).
		Order("completed_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) CountByTestAndUser(testID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.TestAttempt{}).
		Where("test_id = ? AND user_id = ?", testID, userID).
		Count(&count).Error
	return count, err
}

func (r *attemptRepository) FindAllByTests(testIDs []uint) ([]model.TestAttempt, error) {
	if len(testIDs) == 0 {
		return nil, nil
	}
	var attempts []model.TestAttempt
	err := r.db.
		Where("test_id IN ?", testIDs).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) CreateCapped(attempt *model.TestAttempt, maxAttempts int) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var test model.Test
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&test, attempt.TestID).Error; err != nil {
			return fmt.Errorf("locking test %d: %w", attempt.TestID, err)
		}

		var used int64
		if err := tx.Model(&model.TestAttempt{}).
			Where("test_id = ? AND user_id = ?", attempt.TestID, attempt.UserID).
			Count(&used).Error; err != nil {
			return fmt.Errorf("counting attempts: %w", err)
		}
		if used >= int64(maxAttempts) {
			return ErrAttemptLimitReached
		}

		attempt.AttemptNo = int(used) + 1
		if err := tx.Create(attempt).Error; err != nil {
			return fmt.Errorf("inserting attempt: %w", err)
		}
		return nil
	})
}
