package dto

import (
	"time"

	"github.com/lectio/lectio/internal/engine"
)

// DeadlineDTO mirrors engine.DeadlineInfo for API consumers.
type DeadlineDTO struct {
	Deadline       *string  `json:"deadline,omitempty"`
	Passed         bool     `json:"deadline_passed"`
	HoursRemaining *float64 `json:"hours_remaining,omitempty"`
	Urgent         bool     `json:"is_urgent"`
}

// AccessDTO is the evaluated position of one (lecture, learner) pair.
type AccessDTO struct {
	LectureID         uint               `json:"lecture_id"`
	State             engine.AccessState `json:"state"`
	UsedAttempts      int                `json:"used_attempts"`
	MaxAttempts       int                `json:"max_attempts"`
	RemainingAttempts int                `json:"remaining_attempts"`
	CanAttempt        bool               `json:"can_attempt"`
	Deadline          DeadlineDTO        `json:"deadline_info"`
}

// QuestionDTO is one question as served to a viewer. CorrectAnswer is
// present only when disclosure is permitted for that viewer.
type QuestionDTO struct {
	ID            uint     `json:"id"`
	TestID        uint     `json:"test_id"`
	QuestionText  string   `json:"question_text"`
	CorrectAnswer *string  `json:"correct_answer,omitempty"`
	Options       []string `json:"options,omitempty"`
	QuestionType  string   `json:"question_type"`
	OrderIndex    int      `json:"order_index"`
}

// TestDTO is a test with its questions, already visibility filtered.
type TestDTO struct {
	ID        uint          `json:"id"`
	LectureID uint          `json:"lecture_id"`
	CreatedAt time.Time     `json:"created_at"`
	Questions []QuestionDTO `json:"questions"`
}

// SubmissionResultDTO is the graded outcome of one submission.
type SubmissionResultDTO struct {
	TestID            uint                `json:"test_id"`
	AttemptID         uint                `json:"attempt_id"`
	TotalQuestions    int                 `json:"total_questions"`
	CorrectAnswers    int                 `json:"correct_answers"`
	ScorePercent      float64             `json:"score"`
	Results           []engine.ResultView `json:"results"`
	AttemptsUsed      int                 `json:"attempts_used"`
	MaxAttempts       int                 `json:"max_attempts"`
	RemainingAttempts int                 `json:"remaining_attempts"`
	ShowAnswers       bool                `json:"show_answers"`
}

// AttemptDTO is one historical attempt with per-question results.
type AttemptDTO struct {
	ID             uint                `json:"id"`
	AttemptNo      int                 `json:"attempt_no"`
	Score          float64             `json:"score"`
	TotalQuestions int                 `json:"total_questions"`
	CompletedAt    time.Time           `json:"completed_at"`
	Results        []engine.ResultView `json:"results"`
}

// AttemptHistoryDTO is a learner's full history for one lecture test.
type AttemptHistoryDTO struct {
	TestID            uint         `json:"test_id"`
	Attempts          []AttemptDTO `json:"attempts"`
	UsedAttempts      int          `json:"used_attempts"`
	MaxAttempts       int          `json:"max_attempts"`
	RemainingAttempts int          `json:"remaining_attempts"`
	BestScorePercent  *float64     `json:"best_score_percent,omitempty"`
	ShowAnswers       bool         `json:"show_answers"`
	Deadline          DeadlineDTO  `json:"deadline_info"`
}

// AssignmentListDTO is the ranked to-do list of a learner's tests.
type AssignmentListDTO struct {
	CourseID    uint                      `json:"course_id"`
	Assignments []engine.AssignmentRecord `json:"assignments"`
}

// GradesDTO aggregates a learner's best scores across courses.
type GradesDTO struct {
	PerLecture []engine.LectureScore `json:"per_lecture"`
	PerCourse  []CourseGradeDTO      `json:"per_course"`
	Overall    *float64              `json:"overall_gpa,omitempty"`
}

type CourseGradeDTO struct {
	CourseID   uint    `json:"course_id"`
	CourseName string  `json:"course_name,omitempty"`
	Percent    float64 `json:"percent"`
}

// TeacherAttemptDTO is one student attempt in the staff report.
type TeacherAttemptDTO struct {
	ID             uint                `json:"id"`
	TestID         uint                `json:"test_id"`
	UserID         uint                `json:"user_id"`
	AttemptNo      int                 `json:"attempt_no"`
	Score          float64             `json:"score"`
	TotalQuestions int                 `json:"total_questions"`
	CompletedAt    time.Time           `json:"completed_at"`
	Results        []engine.ResultView `json:"results"`
}

// LectureReportDTO is the staff view over every attempt on a lecture test.
type LectureReportDTO struct {
	LectureID     uint                `json:"lecture_id"`
	LectureName   string              `json:"lecture_name"`
	MaxAttempts   int                 `json:"max_attempts"`
	ShowAnswers   bool                `json:"show_answers"`
	Deadline      DeadlineDTO         `json:"deadline_info"`
	AverageScore  float64             `json:"average_score"`
	TotalAttempts int                 `json:"total_attempts"`
	Attempts      []TeacherAttemptDTO `json:"attempts"`
}
