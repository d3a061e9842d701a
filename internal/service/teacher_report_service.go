package service

import (
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lectio/lectio/internal/dto"
	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
	"github.com/lectio/lectio/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReportService builds the staff view over every attempt on a lecture's
// tests, across all students and across per-student test copies.
type ReportService struct {
	lectureRepo repository.LectureRepository
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	now         func() time.Time
}

func NewReportService(
	lectureRepo repository.LectureRepository,
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
) *ReportService {
	return &ReportService{
		lectureRepo: lectureRepo,
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		now:         time.Now,
	}
}

// LectureReport returns every recorded attempt on the lecture, graded
// per-question with full answer disclosure. The average is question
// weighted over each student's attempts.
func (s *ReportService) LectureReport(lectureID uint, viewer engine.ViewerRole) (*dto.LectureReportDTO, error) {
	lecture, err := s.lectureRepo.FindByID(lectureID)
	if err != nil {
		return nil, ErrLectureNotFound
	}

	deadline, err := engine.EvaluateDeadline(lecture.TestDeadline, s.now())
	if err != nil {
		return nil, fmt.Errorf("lecture %d: %w", lecture.ID, err)
	}

	tests, err := s.testRepo.FindAllByLecture(lecture.ID)
	if err != nil {
		return nil, fmt.Errorf("loading tests for lecture %d: %w", lecture.ID, err)
	}

	questionsByTest := make(map[uint][]engine.GradedQuestion, len(tests))
	testIDs := make([]uint, 0, len(tests))
	for _, t := range tests {
		graded, err := toGradedQuestions(t.Questions)
		if err != nil {
			return nil, err
		}
		questionsByTest[t.ID] = graded
		testIDs = append(testIDs, t.ID)
	}

	attempts, err := s.attemptRepo.FindAllByTests(testIDs)
	if err != nil {
		return nil, fmt.Errorf("loading attempts: %w", err)
	}

	out := &dto.LectureReportDTO{
		LectureID:   lecture.ID,
		LectureName: lecture.Name,
		MaxAttempts: maxAttemptsOf(lecture),
		ShowAnswers: lecture.TestShowAnswers,
		Deadline:    toDeadlineDTO(lecture.TestDeadline, deadline),
		Attempts:    make([]dto.TeacherAttemptDTO, 0, len(attempts)),
	}

	var scoreSum, questionSum float64
	for _, attempt := range attempts {
		entry, err := s.reportAttempt(attempt, questionsByTest[attempt.TestID], deadline, lecture, viewer)
		if err != nil {
			// A single corrupt attempt record must not hide the rest of the
			// class from the teacher.
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Skipping unreadable attempt in report")
			continue
		}
		out.Attempts = append(out.Attempts, entry)
		scoreSum += attempt.Score
		questionSum += float64(attempt.TotalQuestions)
	}
	out.TotalAttempts = len(out.Attempts)
	if questionSum > 0 {
		out.AverageScore = math.Round(scoreSum/questionSum*1000) / 10
	}
	return out, nil
}

func (s *ReportService) reportAttempt(attempt model.TestAttempt, graded []engine.GradedQuestion, deadline engine.DeadlineInfo, lecture *model.Lecture, viewer engine.ViewerRole) (dto.TeacherAttemptDTO, error) {
	answers, err := decodeAnswers(attempt.Answers)
	if err != nil {
		return dto.TeacherAttemptDTO{}, err
	}
	results, _, err := engine.GradeAttempt(graded, answers)
	if err != nil {
		return dto.TeacherAttemptDTO{}, err
	}
	views := make([]engine.ResultView, 0, len(results))
	for _, res := range results {
		views = append(views, engine.ComputeVisibleResult(res, lecture.TestShowAnswers, deadline.Passed, viewer))
	}
	var entry dto.TeacherAttemptDTO
	if err := copier.Copy(&entry, &attempt); err != nil {
		return dto.TeacherAttemptDTO{}, fmt.Errorf("mapping attempt %d: %w", attempt.ID, err)
	}
	entry.Results = views
	return entry, nil
}
