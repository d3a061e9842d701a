package service

import (
	"fmt"
	"time"

	"github.com/lectio/lectio/internal/dto"
	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
	"github.com/lectio/lectio/internal/repository"
	"github.com/rs/zerolog/log"
)

// AssignmentService builds the learner's ranked to-do list over a course's
// lecture tests.
type AssignmentService struct {
	lectureRepo repository.LectureRepository
	attemptRepo repository.AttemptRepository
	provision   *ProvisionService
	now         func() time.Time
}

func NewAssignmentService(
	lectureRepo repository.LectureRepository,
	attemptRepo repository.AttemptRepository,
	provision *ProvisionService,
) *AssignmentService {
	return &AssignmentService{
		lectureRepo: lectureRepo,
		attemptRepo: attemptRepo,
		provision:   provision,
		now:         time.Now,
	}
}

// ListAssignments returns the course's testable lectures ranked by urgency:
// live assignments by nearest deadline first, then expired ones, with
// undated entries closing each group.
func (s *AssignmentService) ListAssignments(courseID, userID uint) (*dto.AssignmentListDTO, error) {
	lectures, err := s.lectureRepo.FindPublishedWithTests(courseID)
	if err != nil {
		return nil, fmt.Errorf("loading lectures for course %d: %w", courseID, err)
	}

	now := s.now()
	records := make([]engine.AssignmentRecord, 0, len(lectures))
	for i := range lectures {
		record, err := s.assignmentRecord(&lectures[i], userID, now)
		if err != nil {
			// One lecture with a corrupt deadline must not take down the
			// whole list; it is reported and skipped.
			log.Error().Err(err).Uint("lectureID", lectures[i].ID).Msg("Skipping lecture in assignment list")
			continue
		}
		records = append(records, record)
	}

	return &dto.AssignmentListDTO{
		CourseID:    courseID,
		Assignments: engine.RankAssignments(records),
	}, nil
}

func (s *AssignmentService) assignmentRecord(lecture *model.Lecture, userID uint, now time.Time) (engine.AssignmentRecord, error) {
	deadline, err := engine.EvaluateDeadline(lecture.TestDeadline, now)
	if err != nil {
		return engine.AssignmentRecord{}, err
	}

	test, err := s.provision.findExisting(lecture, userID)
	if err != nil {
		return engine.AssignmentRecord{}, fmt.Errorf("looking up test: %w", err)
	}

	var attempts []model.TestAttempt
	if test != nil {
		attempts, err = s.attemptRepo.FindAllByTestAndUser(test.ID, userID)
		if err != nil {
			return engine.AssignmentRecord{}, fmt.Errorf("loading attempts: %w", err)
		}
	}
	ledger := engine.BuildLedger(lecture.TestMaxAttempts, toAttemptRecords(attempts))

	return engine.AssignmentRecord{
		LectureID:         lecture.ID,
		LectureName:       lecture.Name,
		Deadline:          lecture.TestDeadline,
		DeadlineAt:        deadline.At,
		DeadlinePassed:    deadline.Passed,
		HoursRemaining:    deadline.HoursRemaining,
		Urgent:            deadline.Urgent,
		UsedAttempts:      ledger.UsedAttempts,
		MaxAttempts:       ledger.MaxAttempts,
		RemainingAttempts: ledger.RemainingAttempts,
		HasAttempts:       ledger.HasAttempts,
		BestScoreRounded:  ledger.BestScoreRounded,
	}, nil
}
