package service

import (
	"context"
	"testing"
	"time"

	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccess(lecture *model.Lecture, testRepo *fakeTestRepo, attemptRepo *fakeAttemptRepo) *AccessService {
	provision := newProvision(testRepo, attemptRepo, nil, &fakeGenerator{})
	svc := NewAccessService(newFakeLectureRepo(lecture), testRepo, attemptRepo, provision)
	svc.now = func() time.Time { return refNow }
	return svc
}

func TestEvaluateAccessStates(t *testing.T) {
	existing := func() *model.Test { return &model.Test{ID: 7, LectureID: 1} }
	usedAttempt := model.TestAttempt{ID: 1, TestID: 7, UserID: 42, AttemptNo: 1, Score: 1, TotalQuestions: 2, CompletedAt: refNow.Add(-time.Hour)}

	tests := []struct {
		name     string
		lecture  *model.Lecture
		testRepo *fakeTestRepo
		attempts *fakeAttemptRepo
		want     engine.AccessState
		canTry   bool
	}{
		{
			name:     "ready with attempts left",
			lecture:  testableLecture(1),
			testRepo: newFakeTestRepo(existing()),
			attempts: newFakeAttemptRepo(),
			want:     engine.StateTestReady,
			canTry:   true,
		},
		{
			name:     "not published",
			lecture:  testableLecture(1, func(l *model.Lecture) { l.Published = false }),
			testRepo: newFakeTestRepo(existing()),
			attempts: newFakeAttemptRepo(),
			want:     engine.StateNotPublished,
		},
		{
			name:     "no test yet",
			lecture:  testableLecture(1),
			testRepo: newFakeTestRepo(),
			attempts: newFakeAttemptRepo(),
			want:     engine.StateNoTestYet,
		},
		{
			name:     "expired",
			lecture:  testableLecture(1, func(l *model.Lecture) { l.TestDeadline = pastDeadline(time.Hour) }),
			testRepo: newFakeTestRepo(existing()),
			attempts: newFakeAttemptRepo(),
			want:     engine.StateExpired,
		},
		{
			name:     "exhausted",
			lecture:  testableLecture(1, func(l *model.Lecture) { l.TestMaxAttempts = 1 }),
			testRepo: newFakeTestRepo(existing()),
			attempts: newFakeAttemptRepo(usedAttempt),
			want:     engine.StateExhausted,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newAccess(tc.lecture, tc.testRepo, tc.attempts)
			access, err := svc.EvaluateAccess(1, 42)
			require.NoError(t, err)
			assert.Equal(t, tc.want, access.State)
			assert.Equal(t, tc.canTry, access.CanAttempt)
		})
	}
}

func TestEvaluateAccessUnknownLecture(t *testing.T) {
	svc := newAccess(testableLecture(1), newFakeTestRepo(), newFakeAttemptRepo())
	_, err := svc.EvaluateAccess(99, 42)
	assert.ErrorIs(t, err, ErrLectureNotFound)
}

func TestGetLectureTestHidesAnswersFromStudents(t *testing.T) {
	lecture := testableLecture(1, func(l *model.Lecture) { l.TestShowAnswers = true })
	svc := newAccess(lecture, newFakeTestRepo(twoQuestionTest()), newFakeAttemptRepo())

	view, err := svc.GetLectureTest(context.Background(), 1, 42, engine.RoleStudent)
	require.NoError(t, err)
	require.Len(t, view.Questions, 2)
	for _, q := range view.Questions {
		assert.Nil(t, q.CorrectAnswer, "answers stay hidden before the deadline")
	}
	assert.Equal(t, []string{"Mercury", "Venus", "Earth"}, view.Questions[0].Options)
}

func TestGetLectureTestStaffAlwaysSeesAnswers(t *testing.T) {
	lecture := testableLecture(1)
	svc := newAccess(lecture, newFakeTestRepo(twoQuestionTest()), newFakeAttemptRepo())

	view, err := svc.GetLectureTest(context.Background(), 1, 5, engine.RoleTeacher)
	require.NoError(t, err)
	require.Len(t, view.Questions, 2)
	require.NotNil(t, view.Questions[0].CorrectAnswer)
	assert.Equal(t, "Venus", *view.Questions[0].CorrectAnswer)
}

func TestGetLectureTestStudentDeniedAfterDeadline(t *testing.T) {
	lecture := testableLecture(1, func(l *model.Lecture) { l.TestDeadline = pastDeadline(time.Hour) })
	svc := newAccess(lecture, newFakeTestRepo(twoQuestionTest()), newFakeAttemptRepo())

	_, err := svc.GetLectureTest(context.Background(), 1, 42, engine.RoleStudent)
	assert.ErrorIs(t, err, ErrDeadlinePassed)
}

func TestGetLectureTestStudentDeniedWhenExhausted(t *testing.T) {
	lecture := testableLecture(1, func(l *model.Lecture) { l.TestMaxAttempts = 1 })
	attemptRepo := newFakeAttemptRepo(model.TestAttempt{
		ID: 1, TestID: 7, UserID: 42, AttemptNo: 1, Score: 2, TotalQuestions: 2, CompletedAt: refNow.Add(-time.Hour),
	})
	svc := newAccess(lecture, newFakeTestRepo(twoQuestionTest()), attemptRepo)

	_, err := svc.GetLectureTest(context.Background(), 1, 42, engine.RoleStudent)
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
}
