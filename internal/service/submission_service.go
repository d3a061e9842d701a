package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lectio/lectio/internal/dto"
	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
	"github.com/lectio/lectio/internal/repository"
	"github.com/rs/zerolog/log"
)

// SubmissionService grades and records attempts. Every submission is
// re-validated here against current lecture settings; client-side state is
// never trusted.
type SubmissionService struct {
	lectureRepo repository.LectureRepository
	attemptRepo repository.AttemptRepository
	provision   *ProvisionService
	now         func() time.Time
}

func NewSubmissionService(
	lectureRepo repository.LectureRepository,
	attemptRepo repository.AttemptRepository,
	provision *ProvisionService,
) *SubmissionService {
	return &SubmissionService{
		lectureRepo: lectureRepo,
		attemptRepo: attemptRepo,
		provision:   provision,
		now:         time.Now,
	}
}

// Submit validates, grades and records one attempt for the learner.
func (s *SubmissionService) Submit(ctx context.Context, lectureID, userID uint, answers map[uint]string) (*dto.SubmissionResultDTO, error) {
	lecture, err := s.lectureRepo.FindByID(lectureID)
	if err != nil {
		return nil, ErrLectureNotFound
	}
	if !lecture.Published || !lecture.GenerateTest {
		return nil, ErrNotPublished
	}

	now := s.now()
	deadline, err := engine.EvaluateDeadline(lecture.TestDeadline, now)
	if err != nil {
		return nil, fmt.Errorf("lecture %d: %w", lecture.ID, err)
	}
	if deadline.Passed {
		return nil, ErrDeadlinePassed
	}

	test, err := s.provision.findExisting(lecture, userID)
	if err != nil {
		return nil, fmt.Errorf("looking up test: %w", err)
	}
	if test == nil {
		return nil, ErrTestNotFound
	}

	graded, err := toGradedQuestions(test.Questions)
	if err != nil {
		return nil, err
	}
	results, correct, err := engine.GradeAttempt(graded, answers)
	if err != nil {
		return nil, err
	}

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("encoding answers: %w", err)
	}

	attempt := &model.TestAttempt{
		TestID:         test.ID,
		UserID:         userID,
		Answers:        string(rawAnswers),
		Score:          float64(correct),
		TotalQuestions: len(graded),
		CompletedAt:    now,
	}
	maxAttempts := maxAttemptsOf(lecture)
	if err := s.attemptRepo.CreateCapped(attempt, maxAttempts); err != nil {
		if errors.Is(err, repository.ErrAttemptLimitReached) {
			return nil, ErrAttemptsExhausted
		}
		return nil, fmt.Errorf("recording attempt: %w", err)
	}

	log.Info().Uint("testID", test.ID).Uint("userID", userID).
		Int("attemptNo", attempt.AttemptNo).Int("correct", correct).Int("total", len(graded)).
		Msg("Recorded test attempt")

	showAnswers := lecture.TestShowAnswers && deadline.Passed
	views := make([]engine.ResultView, 0, len(results))
	for _, res := range results {
		views = append(views, engine.ComputeVisibleResult(res, lecture.TestShowAnswers, deadline.Passed, engine.RoleStudent))
	}

	percent := 0.0
	if len(graded) > 0 {
		percent = math.Round(float64(correct)/float64(len(graded))*1000) / 10
	}

	return &dto.SubmissionResultDTO{
		TestID:            test.ID,
		AttemptID:         attempt.ID,
		TotalQuestions:    len(graded),
		CorrectAnswers:    correct,
		ScorePercent:      percent,
		Results:           views,
		AttemptsUsed:      attempt.AttemptNo,
		MaxAttempts:       maxAttempts,
		RemainingAttempts: maxAttempts - attempt.AttemptNo,
		ShowAnswers:       showAnswers,
	}, nil
}
