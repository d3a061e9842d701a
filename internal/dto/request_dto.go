package dto

// SubmitTestRequest carries a student's answers keyed by question id. For
// multiple-choice questions the value is the selected option index; for open
// questions it is free text.
type SubmitTestRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
