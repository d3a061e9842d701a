package service

import (
	"testing"
	"time"

	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistory(lecture *model.Lecture, testRepo *fakeTestRepo, attemptRepo *fakeAttemptRepo) *HistoryService {
	provision := newProvision(testRepo, attemptRepo, nil, &fakeGenerator{})
	svc := NewHistoryService(newFakeLectureRepo(lecture), attemptRepo, provision)
	svc.now = func() time.Time { return refNow }
	return svc
}

func TestListAttemptsReplaysStoredAnswers(t *testing.T) {
	lecture := testableLecture(1)
	attemptRepo := newFakeAttemptRepo(
		model.TestAttempt{ID: 1, TestID: 7, UserID: 42, AttemptNo: 1, Answers: `{"101":"0","102":"nope"}`, Score: 0, TotalQuestions: 2, CompletedAt: refNow.Add(-2 * time.Hour)},
		model.TestAttempt{ID: 2, TestID: 7, UserID: 42, AttemptNo: 2, Answers: `{"101":"1","102":"photosynthesis"}`, Score: 2, TotalQuestions: 2, CompletedAt: refNow.Add(-time.Hour)},
	)
	svc := newHistory(lecture, newFakeTestRepo(twoQuestionTest()), attemptRepo)

	history, err := svc.ListAttempts(1, 42, engine.RoleStudent)
	require.NoError(t, err)

	require.Len(t, history.Attempts, 2)
	assert.Equal(t, 1, history.Attempts[0].AttemptNo, "attempts come back oldest first")
	assert.False(t, history.Attempts[0].Results[0].IsCorrect)
	assert.True(t, history.Attempts[1].Results[0].IsCorrect)

	assert.Equal(t, 2, history.UsedAttempts)
	assert.Equal(t, 0, history.RemainingAttempts)
	require.NotNil(t, history.BestScorePercent)
	assert.InDelta(t, 100.0, *history.BestScorePercent, 0.001)
}

func TestListAttemptsDisclosesOnlyAfterDeadline(t *testing.T) {
	makeLecture := func(deadline *string) *model.Lecture {
		return testableLecture(1, func(l *model.Lecture) {
			l.TestShowAnswers = true
			l.TestDeadline = deadline
		})
	}
	attempt := model.TestAttempt{ID: 1, TestID: 7, UserID: 42, AttemptNo: 1, Answers: `{"101":"0","102":"photosynthesis"}`, Score: 1, TotalQuestions: 2, CompletedAt: refNow.Add(-48 * time.Hour)}

	t.Run("before deadline nothing is shown", func(t *testing.T) {
		svc := newHistory(makeLecture(futureDeadline(time.Hour)), newFakeTestRepo(twoQuestionTest()), newFakeAttemptRepo(attempt))
		history, err := svc.ListAttempts(1, 42, engine.RoleStudent)
		require.NoError(t, err)
		assert.False(t, history.ShowAnswers)
		for _, res := range history.Attempts[0].Results {
			assert.Nil(t, res.CorrectAnswer)
		}
	})

	t.Run("after deadline missed questions are explained", func(t *testing.T) {
		svc := newHistory(makeLecture(pastDeadline(time.Hour)), newFakeTestRepo(twoQuestionTest()), newFakeAttemptRepo(attempt))
		history, err := svc.ListAttempts(1, 42, engine.RoleStudent)
		require.NoError(t, err)
		assert.True(t, history.ShowAnswers)

		results := history.Attempts[0].Results
		require.Len(t, results, 2)
		require.NotNil(t, results[0].CorrectAnswer, "the missed question discloses its answer")
		assert.Equal(t, "Venus", *results[0].CorrectAnswer)
		assert.Nil(t, results[1].CorrectAnswer, "a solved question has nothing to disclose")
	})
}

func TestListAttemptsWithoutTest(t *testing.T) {
	svc := newHistory(testableLecture(1), newFakeTestRepo(), newFakeAttemptRepo())
	_, err := svc.ListAttempts(1, 42, engine.RoleStudent)
	assert.ErrorIs(t, err, ErrTestNotFound)
}

func TestListAttemptsCorruptAnswersFailLoudly(t *testing.T) {
	attemptRepo := newFakeAttemptRepo(model.TestAttempt{
		ID: 1, TestID: 7, UserID: 42, AttemptNo: 1, Answers: `not json`, Score: 0, TotalQuestions: 2, CompletedAt: refNow.Add(-time.Hour),
	})
	svc := newHistory(testableLecture(1), newFakeTestRepo(twoQuestionTest()), attemptRepo)

	_, err := svc.ListAttempts(1, 42, engine.RoleStudent)
	assert.ErrorIs(t, err, engine.ErrInconsistentResult)
}
