package service

import (
	"encoding/json"
	"fmt"

	"github.com/lectio/lectio/internal/dto"
	"github.com/lectio/lectio/internal/engine"
	"github.com/lectio/lectio/internal/model"
)

// questionOptions decodes the stored JSON options array. A multiple-choice
// question with missing or malformed options is a stored-data fault.
func questionOptions(q model.Question) ([]string, error) {
	if q.Options == nil || *q.Options == "" {
		if q.QuestionType == model.QuestionMultipleChoice {
			return nil, fmt.Errorf("question %d: %w", q.ID, engine.ErrInconsistentResult)
		}
		return nil, nil
	}
	var options []string
	if err := json.Unmarshal([]byte(*q.Options), &options); err != nil {
		return nil, fmt.Errorf("question %d options: %w", q.ID, engine.ErrInconsistentResult)
	}
	return options, nil
}

func toGradedQuestions(questions []model.Question) ([]engine.GradedQuestion, error) {
	graded := make([]engine.GradedQuestion, 0, len(questions))
	for _, q := range questions {
		options, err := questionOptions(q)
		if err != nil {
			return nil, err
		}
		graded = append(graded, engine.GradedQuestion{
			ID:            q.ID,
			Text:          q.QuestionText,
			CorrectAnswer: q.CorrectAnswer,
			Options:       options,
			Type:          q.QuestionType,
			OrderIndex:    q.OrderIndex,
		})
	}
	return graded, nil
}

func toAttemptRecords(attempts []model.TestAttempt) []engine.AttemptRecord {
	records := make([]engine.AttemptRecord, 0, len(attempts))
	for _, a := range attempts {
		records = append(records, engine.AttemptRecord{
			ID:             a.ID,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			CompletedAt:    a.CompletedAt,
		})
	}
	return records
}

func toDeadlineDTO(raw *string, info engine.DeadlineInfo) dto.DeadlineDTO {
	return dto.DeadlineDTO{
		Deadline:       raw,
		Passed:         info.Passed,
		HoursRemaining: info.HoursRemaining,
		Urgent:         info.Urgent,
	}
}

// decodeAnswers parses the stored answers blob of a recorded attempt.
func decodeAnswers(raw string) (map[uint]string, error) {
	answers := map[uint]string{}
	if raw == "" {
		return answers, nil
	}
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, fmt.Errorf("stored answers: %w", engine.ErrInconsistentResult)
	}
	return answers, nil
}

func maxAttemptsOf(lecture *model.Lecture) int {
	if lecture.TestMaxAttempts < 1 {
		return 1
	}
	return lecture.TestMaxAttempts
}
