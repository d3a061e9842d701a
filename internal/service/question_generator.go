package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lectio/lectio/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeneratedQuestion is one question produced by the generation collaborator.
type GeneratedQuestion struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	QuestionType  string   `json:"question_type"`
}

// QuestionGenerator is the external question-creation black box. The engine
// never inspects how questions are produced.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, text string, numQuestions int) ([]GeneratedQuestion, error)
}

type geminiQuestionService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

// NewGeminiQuestionService builds the Gemini-backed generator. With no API
// key configured the service is constructed non-functional and every
// generation call fails, which the provisioning layer reports as a
// retryable creation failure.
func NewGeminiQuestionService(cfg *config.Config) (QuestionGenerator, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Question generation will be non-functional.")
		return &geminiQuestionService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiQuestionService{client: model, cfg: cfg}, nil
}

// Long materials are truncated for the prompt; the model has an input limit
// and the opening of a lecture text carries most of the key concepts.
const maxPromptTextLen = 4000

func (s *geminiQuestionService) GenerateQuestions(ctx context.Context, text string, numQuestions int) ([]GeneratedQuestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("material text is empty")
	}
	if len(text) > maxPromptTextLen {
		text = text[:maxPromptTextLen]
	}

	prompt := fmt.Sprintf(`Based on the following lecture text, create %d multiple-choice questions to check student understanding.

Text:
%s

Requirements:
1. Questions must test understanding of the key concepts in the text.
2. Questions should vary in difficulty.
3. Each question must have 4 options.
4. Exactly one option is correct.
5. Wrong options must be plausible but incorrect.

Respond with JSON only, no prose, in this exact shape:
{
  "questions": [
    {
      "question_text": "...",
      "options": ["...", "...", "...", "..."],
      "correct_answer": "the correct option text, verbatim",
      "question_type": "multiple_choice"
    }
  ]
}`, numQuestions, text)

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during question generation")
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	raw := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw += string(txt)
		}
	}

	questions, err := parseGeneratedQuestions(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse generated questions")
		return nil, err
	}
	return questions, nil
}

// parseGeneratedQuestions tolerates the model wrapping its JSON in a
// markdown code fence.
func parseGeneratedQuestions(raw string) ([]GeneratedQuestion, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx >= 0 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
	}

	var payload struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("unmarshaling generated questions: %w", err)
	}

	valid := payload.Questions[:0]
	for _, q := range payload.Questions {
		if q.QuestionText == "" || q.CorrectAnswer == "" {
			continue
		}
		if q.QuestionType == "" {
			q.QuestionType = "multiple_choice"
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("no usable questions in generation response")
	}
	return valid, nil
}
