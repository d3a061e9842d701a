package engine

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInconsistentResult marks a submitted or stored answer referencing a
// question that is not part of the test. This is a data defect; grading
// fails loudly instead of computing a partial score.
var ErrInconsistentResult = errors.New("answer references a question not in the test")

// GradedQuestion is the engine's view of one test question for grading.
type GradedQuestion struct {
	ID            uint
	Text          string
	CorrectAnswer string
	Options       []string
	Type          string // multiple_choice or open
	OrderIndex    int
}

// GradeAttempt grades a full answer set against the test's questions,
// producing one result per question in test order. Multiple-choice answers
// arrive as the selected option index; the displayed student answer is the
// option text. Open answers match case-insensitively with substring
// tolerance in either direction. An unanswered question is simply wrong.
func GradeAttempt(questions []GradedQuestion, answers map[uint]string) ([]QuestionResult, int, error) {
	byID := make(map[uint]struct{}, len(questions))
	for _, q := range questions {
		byID[q.ID] = struct{}{}
	}
	for qid := range answers {
		if _, ok := byID[qid]; !ok {
			return nil, 0, fmt.Errorf("question %d: %w", qid, ErrInconsistentResult)
		}
	}

	ordered := make([]GradedQuestion, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].OrderIndex < ordered[j].OrderIndex })

	results := make([]QuestionResult, 0, len(ordered))
	correct := 0
	for _, q := range ordered {
		res := gradeOne(q, answers[q.ID])
		if res.IsCorrect {
			correct++
		}
		results = append(results, res)
	}
	return results, correct, nil
}

func gradeOne(q GradedQuestion, raw string) QuestionResult {
	res := QuestionResult{
		QuestionID:    q.ID,
		QuestionText:  q.Text,
		CorrectAnswer: q.CorrectAnswer,
		Options:       q.Options,
		StudentAnswer: raw,
	}

	if q.Type == QuestionTypeMultipleChoice {
		selected := -1
		if raw != "" {
			if idx, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				selected = idx
			}
		}
		correctIdx := -1
		for i, opt := range q.Options {
			if opt == q.CorrectAnswer {
				correctIdx = i
				break
			}
		}
		res.IsCorrect = selected >= 0 && selected == correctIdx
		if selected >= 0 && selected < len(q.Options) {
			res.StudentAnswer = q.Options[selected]
		} else {
			res.StudentAnswer = ""
		}
		return res
	}

	student := strings.ToLower(strings.TrimSpace(raw))
	expected := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
	res.IsCorrect = student != "" && expected != "" &&
		(student == expected || strings.Contains(student, expected) || strings.Contains(expected, student))
	return res
}

// Question types, mirrored from the stored model so the engine has no model
// dependency.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeOpen           = "open"
)
