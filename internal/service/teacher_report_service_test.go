package service

import (
	"testing"
	"time"

	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLectureReportCoversAllStudents(t *testing.T) {
	lecture := testableLecture(1)
	testRepo := newFakeTestRepo(twoQuestionTest())
	attemptRepo := newFakeAttemptRepo(
		model.TestAttempt{ID: 1, TestID: 7, UserID: 42, AttemptNo: 1, Answers: `{"101":"1","102":"photosynthesis"}`, Score: 2, TotalQuestions: 2, CompletedAt: refNow.Add(-2 * time.Hour)},
		model.TestAttempt{ID: 2, TestID: 7, UserID: 43, AttemptNo: 1, Answers: `{"101":"0","102":"nope"}`, Score: 0, TotalQuestions: 2, CompletedAt: refNow.Add(-time.Hour)},
	)
	svc := NewReportService(newFakeLectureRepo(lecture), testRepo, attemptRepo)
	svc.now = func() time.Time { return refNow }

	report, err := svc.LectureReport(1, engine.RoleTeacher)
	require.NoError(t, err)

	assert.Equal(t, uint(1), report.LectureID)
	assert.Equal(t, 2, report.TotalAttempts)
	assert.InDelta(t, 50.0, report.AverageScore, 0.001)

	require.Len(t, report.Attempts, 2)
	for _, attempt := range report.Attempts {
		for _, res := range attempt.Results {
			require.NotNil(t, res.CorrectAnswer, "staff always see the correct answer")
		}
	}
}

func TestLectureReportSkipsUnreadableAttempt(t *testing.T) {
	lecture := testableLecture(1)
	testRepo := newFakeTestRepo(twoQuestionTest())
	attemptRepo := newFakeAttemptRepo(
		model.TestAttempt{ID: 1, TestID: 7, UserID: 42, AttemptNo: 1, Answers: `broken`, Score: 1, TotalQuestions: 2, CompletedAt: refNow.Add(-2 * time.Hour)},
		model.TestAttempt{ID: 2, TestID: 7, UserID: 43, AttemptNo: 1, Answers: `{"101":"1","102":"x"}`, Score: 1, TotalQuestions: 2, CompletedAt: refNow.Add(-time.Hour)},
	)
	svc := NewReportService(newFakeLectureRepo(lecture), testRepo, attemptRepo)
	svc.now = func() time.Time { return refNow }

	report, err := svc.LectureReport(1, engine.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalAttempts)
	require.Len(t, report.Attempts, 1)
	assert.Equal(t, uint(43), report.Attempts[0].UserID)
}
