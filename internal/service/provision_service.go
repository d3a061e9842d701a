package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
	"github.com/lectio/lectio/internal/repository"
	"github.com/rs/zerolog/log"
)

// Materials shorter than this get the smaller question count.
const shortMaterialThreshold = 1000

// ProvisionService lazily materializes tests on first access. Creation is
// idempotent per (lecture, learner): concurrent first accesses converge on
// one stored test via the unique (lecture, user) index.
type ProvisionService struct {
	testRepo     repository.TestRepository
	attemptRepo  repository.AttemptRepository
	materialRepo repository.MaterialRepository
	generator    QuestionGenerator
	now          func() time.Time
}

func NewProvisionService(
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	materialRepo repository.MaterialRepository,
	generator QuestionGenerator,
) *ProvisionService {
	return &ProvisionService{
		testRepo:     testRepo,
		attemptRepo:  attemptRepo,
		materialRepo: materialRepo,
		generator:    generator,
		now:          time.Now,
	}
}

// findExisting resolves the test the lecture's generation mode assigns to
// this learner, nil when none exists yet.
func (s *ProvisionService) findExisting(lecture *model.Lecture, userID uint) (*model.Test, error) {
	if lecture.TestGenerationMode == model.GenerationPerStudent {
		return s.testRepo.FindLatestForUser(lecture.ID, userID)
	}
	return s.testRepo.FindLatestShared(lecture.ID)
}

// EnsureTest returns the learner's test for the lecture, creating it on
// first access. A denial is an expected policy outcome; the error return is
// reserved for faults, including generation failure, which leaves no record
// behind and may be retried.
func (s *ProvisionService) EnsureTest(ctx context.Context, lecture *model.Lecture, userID uint) (*model.Test, *engine.CreationDenied, error) {
	if !lecture.Published || !lecture.GenerateTest {
		return nil, nil, ErrNotPublished
	}

	deadline, err := engine.EvaluateDeadline(lecture.TestDeadline, s.now())
	if err != nil {
		return nil, nil, fmt.Errorf("lecture %d: %w", lecture.ID, err)
	}

	existing, err := s.findExisting(lecture, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("looking up test for lecture %d: %w", lecture.ID, err)
	}
	if existing != nil {
		if deadline.Passed {
			return nil, &engine.CreationDenied{Reason: engine.DenialDeadlinePassed}, nil
		}
		used, err := s.attemptRepo.CountByTestAndUser(existing.ID, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("counting attempts: %w", err)
		}
		if int(used) >= maxAttemptsOf(lecture) {
			return nil, &engine.CreationDenied{Reason: engine.DenialAttemptsExhausted}, nil
		}
		return existing, nil, nil
	}

	if deadline.Passed {
		return nil, &engine.CreationDenied{Reason: engine.DenialDeadlinePassed}, nil
	}

	test, err := s.createTest(ctx, lecture, userID)
	if err != nil {
		return nil, nil, err
	}
	return test, nil, nil
}

func (s *ProvisionService) createTest(ctx context.Context, lecture *model.Lecture, userID uint) (*model.Test, error) {
	materials, err := s.materialRepo.FindProcessedByLecture(lecture.ID)
	if err != nil {
		return nil, fmt.Errorf("loading materials for lecture %d: %w", lecture.ID, err)
	}
	if len(materials) == 0 {
		return nil, fmt.Errorf("lecture %d has no processed materials: %w", lecture.ID, ErrGenerationFailed)
	}

	texts := make([]string, 0, len(materials))
	for _, m := range materials {
		texts = append(texts, m.ProcessedText)
	}
	combined := strings.Join(texts, "\n\n")

	numQuestions := 3
	if len(combined) < shortMaterialThreshold {
		numQuestions = 2
	}

	generated, err := s.generator.GenerateQuestions(ctx, combined, numQuestions)
	if err != nil {
		log.Error().Err(err).Uint("lectureID", lecture.ID).Msg("Question generation failed")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	test := &model.Test{LectureID: lecture.ID}
	if lecture.TestGenerationMode == model.GenerationPerStudent {
		uid := userID
		test.UserID = &uid
	}
	for i, q := range generated {
		question := model.Question{
			QuestionText:  q.QuestionText,
			CorrectAnswer: q.CorrectAnswer,
			QuestionType:  q.QuestionType,
			OrderIndex:    i,
		}
		if len(q.Options) > 0 {
			raw, err := json.Marshal(q.Options)
			if err != nil {
				return nil, fmt.Errorf("encoding options: %w", err)
			}
			encoded := string(raw)
			question.Options = &encoded
		}
		test.Questions = append(test.Questions, question)
	}

	if err := s.testRepo.CreateWithQuestions(test); err != nil {
		// A concurrent first access may have won the unique (lecture, user)
		// index. The stored test is the single source of truth either way.
		if winner, lookupErr := s.findExisting(lecture, userID); lookupErr == nil && winner != nil {
			log.Debug().Uint("lectureID", lecture.ID).Uint("testID", winner.ID).
				Msg("Concurrent test creation resolved to existing test")
			return winner, nil
		}
		return nil, fmt.Errorf("storing generated test: %w", err)
	}

	log.Info().Uint("lectureID", lecture.ID).Uint("testID", test.ID).
		Int("questions", len(test.Questions)).Str("mode", lecture.TestGenerationMode).
		Msg("Generated lecture test")
	return test, nil
}
