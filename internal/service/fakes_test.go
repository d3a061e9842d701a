package service

import (
	"context"
	"sort"

	"github.com/lectio/lectio/internal/model"
	"github.com/lectio/lectio/internal/repository"
	"gorm.io/gorm"
)

type fakeLectureRepo struct {
	lectures map[uint]*model.Lecture
}

func newFakeLectureRepo(lectures ...*model.Lecture) *fakeLectureRepo {
	repo := &fakeLectureRepo{lectures: map[uint]*model.Lecture{}}
	for _, l := range lectures {
		repo.lectures[l.ID] = l
	}
	return repo
}

func (f *fakeLectureRepo) FindByID(id uint) (*model.Lecture, error) {
	lecture, ok := f.lectures[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lecture, nil
}

func (f *fakeLectureRepo) FindPublishedWithTests(courseID uint) ([]model.Lecture, error) {
	var out []model.Lecture
	for _, l := range f.lectures {
		if l.CourseID == courseID && l.Published && l.GenerateTest {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCourseRepo struct {
	courses []model.Course
}

func (f *fakeCourseRepo) FindAllWithLectures() ([]model.Course, error) {
	return f.courses, nil
}

type fakeTestRepo struct {
	tests  []*model.Test
	nextID uint
}

func newFakeTestRepo(tests ...*model.Test) *fakeTestRepo {
	repo := &fakeTestRepo{nextID: 1}
	for _, t := range tests {
		if t.ID >= repo.nextID {
			repo.nextID = t.ID + 1
		}
		repo.tests = append(repo.tests, t)
	}
	return repo
}

func (f *fakeTestRepo) CreateWithQuestions(test *model.Test) error {
	test.ID = f.nextID
	f.nextID++
	for i := range test.Questions {
		test.Questions[i].ID = test.ID*100 + uint(i) + 1
		test.Questions[i].TestID = test.ID
	}
	f.tests = append(f.tests, test)
	return nil
}

func (f *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	for _, t := range f.tests {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTestRepo) FindLatestShared(lectureID uint) (*model.Test, error) {
	for i := len(f.tests) - 1; i >= 0; i-- {
		t := f.tests[i]
		if t.LectureID == lectureID && t.UserID == nil {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTestRepo) FindLatestForUser(lectureID, userID uint) (*model.Test, error) {
	for i := len(f.tests) - 1; i >= 0; i-- {
		t := f.tests[i]
		if t.LectureID == lectureID && t.UserID != nil && *t.UserID == userID {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTestRepo) FindAllByLecture(lectureID uint) ([]model.Test, error) {
	var out []model.Test
	for _, t := range f.tests {
		if t.LectureID == lectureID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeAttemptRepo struct {
	attempts []model.TestAttempt
	nextID   uint
}

func newFakeAttemptRepo(attempts ...model.TestAttempt) *fakeAttemptRepo {
	repo := &fakeAttemptRepo{nextID: 1}
	for _, a := range attempts {
		if a.ID >= repo.nextID {
			repo.nextID = a.ID + 1
		}
		repo.attempts = append(repo.attempts, a)
	}
	return repo
}

func (f *fakeAttemptRepo) FindAllByTestAndUser(testID, userID uint) ([]model.TestAttempt, error) {
	var out []model.TestAttempt
	for _, a := range f.attempts {
		if a.TestID == testID && a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}

func (f *fakeAttemptRepo) CountByTestAndUser(testID, userID uint) (int64, error) {
	attempts, _ := f.FindAllByTestAndUser(testID, userID)
	return int64(len(attempts)), nil
}

func (f *fakeAttemptRepo) FindAllByTests(testIDs []uint) ([]model.TestAttempt, error) {
	ids := map[uint]bool{}
	for _, id := range testIDs {
		ids[id] = true
	}
	var out []model.TestAttempt
	for _, a := range f.attempts {
		if ids[a.TestID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) CreateCapped(attempt *model.TestAttempt, maxAttempts int) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	used, _ := f.CountByTestAndUser(attempt.TestID, attempt.UserID)
	if used >= int64(maxAttempts) {
		return repository.ErrAttemptLimitReached
	}
	attempt.ID = f.nextID
	f.nextID++
	attempt.AttemptNo = int(used) + 1
	f.attempts = append(f.attempts, *attempt)
	return nil
}

type fakeMaterialRepo struct {
	byLecture map[uint][]model.ProcessedMaterial
}

func (f *fakeMaterialRepo) FindProcessedByLecture(lectureID uint) ([]model.ProcessedMaterial, error) {
	return f.byLecture[lectureID], nil
}

type fakeGenerator struct {
	questions []GeneratedQuestion
	err       error
	calls     int
	lastN     int
	lastText  string
}

func (f *fakeGenerator) GenerateQuestions(_ context.Context, text string, numQuestions int) ([]GeneratedQuestion, error) {
	f.calls++
	f.lastN = numQuestions
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}
