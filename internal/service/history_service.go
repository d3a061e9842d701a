package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lectio/lectio/internal/dto"
	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
	"github.com/lectio/lectio/internal/repository"
)

// HistoryService replays a learner's recorded attempts. Results are rebuilt
// from the stored answers against the stored questions, so the history a
// student sees is always derived from what was actually graded.
type HistoryService struct {
	lectureRepo repository.LectureRepository
	attemptRepo repository.AttemptRepository
	provision   *ProvisionService
	now         func() time.Time
}

func NewHistoryService(
	lectureRepo repository.LectureRepository,
	attemptRepo repository.AttemptRepository,
	provision *ProvisionService,
) *HistoryService {
	return &HistoryService{
		lectureRepo: lectureRepo,
		attemptRepo: attemptRepo,
		provision:   provision,
		now:         time.Now,
	}
}

// ListAttempts returns the learner's attempt history for a lecture test,
// with correct answers disclosed per the lecture's visibility settings.
func (s *HistoryService) ListAttempts(lectureID, userID uint, viewer engine.ViewerRole) (*dto.AttemptHistoryDTO, error) {
	lecture, err := s.lectureRepo.FindByID(lectureID)
	if err != nil {
		return nil, ErrLectureNotFound
	}

	deadline, err := engine.EvaluateDeadline(lecture.TestDeadline, s.now())
	if err != nil {
		return nil, fmt.Errorf("lecture %d: %w", lecture.ID, err)
	}

	test, err := s.provision.findExisting(lecture, userID)
	if err != nil {
		return nil, fmt.Errorf("looking up test: %w", err)
	}
	if test == nil {
		return nil, ErrTestNotFound
	}

	attempts, err := s.attemptRepo.FindAllByTestAndUser(test.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("loading attempts: %w", err)
	}

	graded, err := toGradedQuestions(test.Questions)
	if err != nil {
		return nil, err
	}

	out := &dto.AttemptHistoryDTO{
		TestID:      test.ID,
		Attempts:    make([]dto.AttemptDTO, 0, len(attempts)),
		ShowAnswers: lecture.TestShowAnswers && deadline.Passed,
		Deadline:    toDeadlineDTO(lecture.TestDeadline, deadline),
	}
	for _, attempt := range attempts {
		results, err := s.replay(graded, attempt, lecture, deadline, viewer)
		if err != nil {
			return nil, err
		}
		var entry dto.AttemptDTO
		if err := copier.Copy(&entry, &attempt); err != nil {
			return nil, fmt.Errorf("mapping attempt %d: %w", attempt.ID, err)
		}
		entry.Results = results
		out.Attempts = append(out.Attempts, entry)
	}

	ledger := engine.BuildLedger(lecture.TestMaxAttempts, toAttemptRecords(attempts))
	out.UsedAttempts = ledger.UsedAttempts
	out.MaxAttempts = ledger.MaxAttempts
	out.RemainingAttempts = ledger.RemainingAttempts
	out.BestScorePercent = ledger.BestScorePercent
	return out, nil
}

func (s *HistoryService) replay(graded []engine.GradedQuestion, attempt model.TestAttempt, lecture *model.Lecture, deadline engine.DeadlineInfo, viewer engine.ViewerRole) ([]engine.ResultView, error) {
	answers, err := decodeAnswers(attempt.Answers)
	if err != nil {
		return nil, fmt.Errorf("attempt %d: %w", attempt.ID, err)
	}
	results, _, err := engine.GradeAttempt(graded, answers)
	if err != nil {
		return nil, fmt.Errorf("attempt %d: %w", attempt.ID, err)
	}
	views := make([]engine.ResultView, 0, len(results))
	for _, res := range results {
		views = append(views, engine.ComputeVisibleResult(res, lecture.TestShowAnswers, deadline.Passed, viewer))
	}
	return views, nil
}
