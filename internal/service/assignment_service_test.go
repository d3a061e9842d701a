package service

import (
	"testing"
	"time"

	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssignments(lectures []*model.Lecture, testRepo *fakeTestRepo, attemptRepo *fakeAttemptRepo) *AssignmentService {
	provision := newProvision(testRepo, attemptRepo, nil, &fakeGenerator{})
	svc := NewAssignmentService(newFakeLectureRepo(lectures...), attemptRepo, provision)
	svc.now = func() time.Time { return refNow }
	return svc
}

func TestListAssignmentsOrdersByUrgency(t *testing.T) {
	lectures := []*model.Lecture{
		testableLecture(1, func(l *model.Lecture) { l.Name = "No deadline" }),
		testableLecture(2, func(l *model.Lecture) { l.Name = "Due soon"; l.TestDeadline = futureDeadline(6 * time.Hour) }),
		testableLecture(3, func(l *model.Lecture) { l.Name = "Due next week"; l.TestDeadline = futureDeadline(7 * 24 * time.Hour) }),
		testableLecture(4, func(l *model.Lecture) { l.Name = "Missed"; l.TestDeadline = pastDeadline(24 * time.Hour) }),
	}
	svc := newAssignments(lectures, newFakeTestRepo(), newFakeAttemptRepo())

	list, err := svc.ListAssignments(1, 42)
	require.NoError(t, err)
	require.Len(t, list.Assignments, 4)

	ids := make([]uint, 0, 4)
	for _, a := range list.Assignments {
		ids = append(ids, a.LectureID)
	}
	assert.Equal(t, []uint{2, 3, 1, 4}, ids, "live by nearest deadline, undated last among live, expired at the end")

	assert.Equal(t, engine.StatusUrgent, list.Assignments[0].Status)
	assert.Equal(t, engine.StatusAvailable, list.Assignments[1].Status)
	assert.Equal(t, engine.StatusAvailable, list.Assignments[2].Status)
	assert.Equal(t, engine.StatusExpired, list.Assignments[3].Status)
}

func TestListAssignmentsCarriesAttemptLedger(t *testing.T) {
	lectures := []*model.Lecture{testableLecture(1)}
	shared := &model.Test{ID: 7, LectureID: 1}
	attemptRepo := newFakeAttemptRepo(
		model.TestAttempt{ID: 1, TestID: 7, UserID: 42, AttemptNo: 1, Score: 1, TotalQuestions: 2, CompletedAt: refNow.Add(-2 * time.Hour)},
		model.TestAttempt{ID: 2, TestID: 7, UserID: 42, AttemptNo: 2, Score: 2, TotalQuestions: 2, CompletedAt: refNow.Add(-time.Hour)},
	)
	svc := newAssignments(lectures, newFakeTestRepo(shared), attemptRepo)

	list, err := svc.ListAssignments(1, 42)
	require.NoError(t, err)
	require.Len(t, list.Assignments, 1)

	a := list.Assignments[0]
	assert.Equal(t, 2, a.UsedAttempts)
	assert.Equal(t, 0, a.RemainingAttempts)
	assert.True(t, a.HasAttempts)
	require.NotNil(t, a.BestScoreRounded)
	assert.Equal(t, 100, *a.BestScoreRounded)
	assert.Equal(t, engine.StatusExpired, a.Status, "no attempts left counts as expired")
}

func TestListAssignmentsSkipsCorruptDeadline(t *testing.T) {
	lectures := []*model.Lecture{
		testableLecture(1),
		testableLecture(2, func(l *model.Lecture) { l.TestDeadline = strPtr("not-a-date") }),
	}
	svc := newAssignments(lectures, newFakeTestRepo(), newFakeAttemptRepo())

	list, err := svc.ListAssignments(1, 42)
	require.NoError(t, err)
	require.Len(t, list.Assignments, 1)
	assert.Equal(t, uint(1), list.Assignments[0].LectureID)
}
