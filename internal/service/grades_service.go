package service

import (
	"fmt"

	"github.com/lectio/lectio/internal/dto"
	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/repository"
)

// GradesService aggregates a learner's best scores across every course.
type GradesService struct {
	courseRepo  repository.CourseRepository
	attemptRepo repository.AttemptRepository
	provision   *ProvisionService
}

func NewGradesService(
	courseRepo repository.CourseRepository,
	attemptRepo repository.AttemptRepository,
	provision *ProvisionService,
) *GradesService {
	return &GradesService{
		courseRepo:  courseRepo,
		attemptRepo: attemptRepo,
		provision:   provision,
	}
}

// GetGrades returns per-lecture, per-course and overall grades for the
// learner. Lectures the learner never attempted contribute nothing; course
// averages are question weighted, not a mean of lecture percentages.
func (s *GradesService) GetGrades(userID uint) (*dto.GradesDTO, error) {
	courses, err := s.courseRepo.FindAllWithLectures()
	if err != nil {
		return nil, fmt.Errorf("loading courses: %w", err)
	}

	var buckets []engine.LectureAttempts
	courseNames := make(map[uint]string, len(courses))
	for _, course := range courses {
		courseNames[course.ID] = course.Name
		for i := range course.Lectures {
			lecture := &course.Lectures[i]
			test, err := s.provision.findExisting(lecture, userID)
			if err != nil {
				return nil, fmt.Errorf("looking up test for lecture %d: %w", lecture.ID, err)
			}
			if test == nil {
				continue
			}
			attempts, err := s.attemptRepo.FindAllByTestAndUser(test.ID, userID)
			if err != nil {
				return nil, fmt.Errorf("loading attempts: %w", err)
			}
			if len(attempts) == 0 {
				continue
			}
			buckets = append(buckets, engine.LectureAttempts{
				LectureID:   lecture.ID,
				LectureName: lecture.Name,
				CourseID:    course.ID,
				Attempts:    toAttemptRecords(attempts),
			})
		}
	}

	summary := engine.AggregateScores(buckets)

	out := &dto.GradesDTO{
		PerLecture: summary.PerLecture,
		PerCourse:  make([]dto.CourseGradeDTO, 0, len(summary.PerCourse)),
		Overall:    summary.Overall,
	}
	for _, cs := range summary.PerCourse {
		out.PerCourse = append(out.PerCourse, dto.CourseGradeDTO{
			CourseID:   cs.CourseID,
			CourseName: courseNames[cs.CourseID],
			Percent:    cs.Percent,
		})
	}
	return out, nil
}
