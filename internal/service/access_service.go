package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lectio/lectio/internal/dto"
	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
	"github.com/lectio/lectio/internal/repository"
	"gorm.io/gorm"
)

// AccessService answers "where does this learner stand with this lecture's
// test" and serves the test itself, visibility filtered per viewer.
type AccessService struct {
	lectureRepo repository.LectureRepository
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	provision   *ProvisionService
	now         func() time.Time
}

func NewAccessService(
	lectureRepo repository.LectureRepository,
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	provision *ProvisionService,
) *AccessService {
	return &AccessService{
		lectureRepo: lectureRepo,
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		provision:   provision,
		now:         time.Now,
	}
}

func (s *AccessService) lecture(lectureID uint) (*model.Lecture, error) {
	lecture, err := s.lectureRepo.FindByID(lectureID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLectureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading lecture %d: %w", lectureID, err)
	}
	return lecture, nil
}

// evaluate classifies the learner's position without side effects. No test
// is created here; a missing test surfaces as the no-test-yet state.
func (s *AccessService) evaluate(lecture *model.Lecture, userID uint) (engine.Access, *model.Test, error) {
	deadline, err := engine.EvaluateDeadline(lecture.TestDeadline, s.now())
	if err != nil {
		return engine.Access{}, nil, fmt.Errorf("lecture %d: %w", lecture.ID, err)
	}

	test, err := s.provision.findExisting(lecture, userID)
	if err != nil {
		return engine.Access{}, nil, fmt.Errorf("looking up test: %w", err)
	}

	var attempts []model.TestAttempt
	if test != nil {
		attempts, err = s.attemptRepo.FindAllByTestAndUser(test.ID, userID)
		if err != nil {
			return engine.Access{}, nil, fmt.Errorf("loading attempts: %w", err)
		}
	}

	ledger := engine.BuildLedger(lecture.TestMaxAttempts, toAttemptRecords(attempts))
	access := engine.ClassifyAccess(lecture.Published, lecture.GenerateTest, test != nil, ledger, deadline)
	return access, test, nil
}

// EvaluateAccess reports the learner's standing for a lecture test.
func (s *AccessService) EvaluateAccess(lectureID, userID uint) (*dto.AccessDTO, error) {
	lecture, err := s.lecture(lectureID)
	if err != nil {
		return nil, err
	}
	access, _, err := s.evaluate(lecture, userID)
	if err != nil {
		return nil, err
	}
	return &dto.AccessDTO{
		LectureID:         lecture.ID,
		State:             access.State,
		UsedAttempts:      access.Ledger.UsedAttempts,
		MaxAttempts:       access.Ledger.MaxAttempts,
		RemainingAttempts: access.Ledger.RemainingAttempts,
		CanAttempt:        access.CanAttempt(),
		Deadline:          toDeadlineDTO(lecture.TestDeadline, access.Deadline),
	}, nil
}

// GetLectureTest serves the lecture's test to a viewer. Students trigger
// lazy creation on first access and see correct answers only once the
// lecture discloses them; staff always see the full test and never trigger
// creation of a per-student copy for themselves.
func (s *AccessService) GetLectureTest(ctx context.Context, lectureID, userID uint, viewer engine.ViewerRole) (*dto.TestDTO, error) {
	lecture, err := s.lecture(lectureID)
	if err != nil {
		return nil, err
	}

	if viewer.Staff() {
		test, err := s.testRepo.FindLatestShared(lecture.ID)
		if err != nil {
			return nil, fmt.Errorf("looking up test: %w", err)
		}
		if test == nil {
			return nil, ErrTestNotFound
		}
		return s.renderTest(lecture, test, viewer)
	}

	test, denied, err := s.provision.EnsureTest(ctx, lecture, userID)
	if err != nil {
		return nil, err
	}
	if denied != nil {
		if denied.Reason == engine.DenialAttemptsExhausted {
			return nil, ErrAttemptsExhausted
		}
		return nil, ErrDeadlinePassed
	}
	return s.renderTest(lecture, test, viewer)
}

func (s *AccessService) renderTest(lecture *model.Lecture, test *model.Test, viewer engine.ViewerRole) (*dto.TestDTO, error) {
	deadline, err := engine.EvaluateDeadline(lecture.TestDeadline, s.now())
	if err != nil {
		return nil, fmt.Errorf("lecture %d: %w", lecture.ID, err)
	}
	disclose := viewer.Staff() || (lecture.TestShowAnswers && deadline.Passed)

	out := &dto.TestDTO{
		ID:        test.ID,
		LectureID: test.LectureID,
		CreatedAt: test.CreatedAt,
		Questions: make([]dto.QuestionDTO, 0, len(test.Questions)),
	}
	for _, q := range test.Questions {
		options, err := questionOptions(q)
		if err != nil {
			return nil, err
		}
		qd := dto.QuestionDTO{
			ID:           q.ID,
			TestID:       q.TestID,
			QuestionText: q.QuestionText,
			Options:      options,
			QuestionType: q.QuestionType,
			OrderIndex:   q.OrderIndex,
		}
		if disclose {
			answer := q.CorrectAnswer
			qd.CorrectAnswer = &answer
		}
		out.Questions = append(out.Questions, qd)
	}
	return out, nil
}
