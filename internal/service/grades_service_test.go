package service

import (
	"testing"
	"time"

	"github.com/lectio/lectio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGradesIsQuestionWeighted(t *testing.T) {
	courses := []model.Course{
		{
			ID:   1,
			Name: "Astronomy",
			Lectures: []model.Lecture{
				*testableLecture(1, func(l *model.Lecture) { l.Name = "Planets" }),
				*testableLecture(2, func(l *model.Lecture) { l.Name = "Stars" }),
			},
		},
	}
	testRepo := newFakeTestRepo(
		&model.Test{ID: 10, LectureID: 1},
		&model.Test{ID: 11, LectureID: 2},
	)
	attemptRepo := newFakeAttemptRepo(
		// Lecture 1: best of two attempts is 4/5.
		model.TestAttempt{ID: 1, TestID: 10, UserID: 42, AttemptNo: 1, Score: 2, TotalQuestions: 5, CompletedAt: refNow.Add(-3 * time.Hour)},
		model.TestAttempt{ID: 2, TestID: 10, UserID: 42, AttemptNo: 2, Score: 4, TotalQuestions: 5, CompletedAt: refNow.Add(-2 * time.Hour)},
		// Lecture 2: a single perfect 1/1.
		model.TestAttempt{ID: 3, TestID: 11, UserID: 42, AttemptNo: 1, Score: 1, TotalQuestions: 1, CompletedAt: refNow.Add(-time.Hour)},
	)
	provision := newProvision(testRepo, attemptRepo, nil, &fakeGenerator{})
	svc := NewGradesService(&fakeCourseRepo{courses: courses}, attemptRepo, provision)

	grades, err := svc.GetGrades(42)
	require.NoError(t, err)

	require.Len(t, grades.PerLecture, 2)
	assert.InDelta(t, 80.0, grades.PerLecture[0].Percent, 0.001)
	assert.InDelta(t, 100.0, grades.PerLecture[1].Percent, 0.001)

	// (4+1)/(5+1), not the mean of 80 and 100.
	require.Len(t, grades.PerCourse, 1)
	assert.Equal(t, "Astronomy", grades.PerCourse[0].CourseName)
	assert.InDelta(t, 83.3, grades.PerCourse[0].Percent, 0.001)

	require.NotNil(t, grades.Overall)
	assert.InDelta(t, 83.3, *grades.Overall, 0.001)
}

func TestGetGradesIgnoresUnattemptedLectures(t *testing.T) {
	courses := []model.Course{
		{ID: 1, Name: "Astronomy", Lectures: []model.Lecture{*testableLecture(1)}},
	}
	testRepo := newFakeTestRepo(&model.Test{ID: 10, LectureID: 1})
	attemptRepo := newFakeAttemptRepo()
	provision := newProvision(testRepo, attemptRepo, nil, &fakeGenerator{})
	svc := NewGradesService(&fakeCourseRepo{courses: courses}, attemptRepo, provision)

	grades, err := svc.GetGrades(42)
	require.NoError(t, err)
	assert.Empty(t, grades.PerLecture)
	assert.Empty(t, grades.PerCourse)
	assert.Nil(t, grades.Overall)
}
