package engine

// ViewerRole identifies who is looking at an attempt.
type ViewerRole string

const (
	RoleStudent ViewerRole = "student"
	RoleTeacher ViewerRole = "teacher"
	RoleAdmin   ViewerRole = "admin"
)

// Staff reports whether the viewer is course staff, exempt from answer
// disclosure rules.
func (r ViewerRole) Staff() bool {
	return r == RoleTeacher || r == RoleAdmin
}

// QuestionResult is the graded outcome of one question within one attempt.
type QuestionResult struct {
	QuestionID    uint
	QuestionText  string
	StudentAnswer string
	IsCorrect     bool
	CorrectAnswer string
	Options       []string
}

// ResultView is a QuestionResult prepared for a specific viewer.
// CorrectAnswer is nil, not empty, whenever disclosure is not permitted, so
// the serving layer omits the field entirely.
type ResultView struct {
	QuestionID    uint     `json:"question_id"`
	QuestionText  string   `json:"question_text"`
	StudentAnswer string   `json:"student_answer"`
	IsCorrect     bool     `json:"is_correct"`
	CorrectAnswer *string  `json:"correct_answer,omitempty"`
	Options       []string `json:"options,omitempty"`
}

// DiscloseCorrectAnswer decides whether the correct answer may be shown.
// Staff always see it. A student sees it only after the deadline, only when
// the lecture allows post-deadline answers, and only for questions they got
// wrong: re-showing an answer the student already produced is noise.
func DiscloseCorrectAnswer(showAnswersAfterDeadline, deadlinePassed, isCorrect bool, viewer ViewerRole) bool {
	if viewer.Staff() {
		return true
	}
	return showAnswersAfterDeadline && deadlinePassed && !isCorrect
}

// ComputeVisibleResult applies the disclosure rule to one result.
func ComputeVisibleResult(res QuestionResult, showAnswersAfterDeadline, deadlinePassed bool, viewer ViewerRole) ResultView {
	view := ResultView{
		QuestionID:    res.QuestionID,
		QuestionText:  res.QuestionText,
		StudentAnswer: res.StudentAnswer,
		IsCorrect:     res.IsCorrect,
		Options:       res.Options,
	}
	if DiscloseCorrectAnswer(showAnswersAfterDeadline, deadlinePassed, res.IsCorrect, viewer) {
		answer := res.CorrectAnswer
		view.CorrectAnswer = &answer
	}
	return view
}
