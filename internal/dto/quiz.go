package dto

import (
	"encoding/json"
	"strconv"
	"time"

	"quizmoa/internal/domain"
)

// GenerateQuizRequest is the request body for quiz generation.
// @Description Request body for generating a quiz from study material
type GenerateQuizRequest struct {
	Text       string `json:"text" validate:"required"`
	Title      string `json:"title"`
	Type       string `json:"type" validate:"required"`       // multiple_choice or short_answer
	Count      int    `json:"count" validate:"required"`      // 5~10
	Difficulty string `json:"difficulty" validate:"required"` // easy, medium, hard
}

// QuizItemResponse represents one question in the API response.
type QuizItemResponse struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// QuizContentResponse is a generated quiz as returned to the solving UI.
type QuizContentResponse struct {
	QuizID     string             `json:"quiz_id"`
	Title      string             `json:"title"`
	Type       string             `json:"type"`
	Difficulty string             `json:"difficulty"`
	Count      int                `json:"count"`
	Summary    string             `json:"summary"`
	Quizzes    []QuizItemResponse `json:"quizzes"`
	Remaining  int                `json:"remaining_generations"`
}

// SharedQuizResponse is a shared quiz fetched by token for anonymous solving.
type SharedQuizResponse struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Type       string             `json:"type"`
	Difficulty string             `json:"difficulty"`
	Count      int                `json:"count"`
	Summary    string             `json:"summary"`
	Quizzes    []QuizItemResponse `json:"quizzes"`
}

// SubmittedAnswerDTO is one raw answer in a submission request. Clients send
// either a plain string or an {"answer": ..., "dont_know": ...} object; both
// forms decode into the same value.
type SubmittedAnswerDTO struct {
	Answer   string `json:"answer"`
	DontKnow bool   `json:"dont_know"`
}

// UnmarshalJSON accepts both the plain-string and the structured form.
func (a *SubmittedAnswerDTO) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		a.Answer = plain
		a.DontKnow = false
		return nil
	}

	type structured SubmittedAnswerDTO
	var s structured
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = SubmittedAnswerDTO(s)
	return nil
}

// SubmitQuizRequest is the request body for grading a quiz.
// @Description Request body for submitting quiz answers, keyed by question id
type SubmitQuizRequest struct {
	Answers map[string]SubmittedAnswerDTO `json:"answers" validate:"required"`
}

// ToAnswerSet converts the request answers into the domain answer set.
// Non-numeric keys are dropped; the grading engine treats the question as
// unanswered in that case.
func (r *SubmitQuizRequest) ToAnswerSet() domain.AnswerSet {
	answers := make(domain.AnswerSet, len(r.Answers))
	for key, a := range r.Answers {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		if a.DontKnow {
			answers[id] = domain.Skipped()
		} else {
			answers[id] = domain.Attempted(a.Answer)
		}
	}
	return answers
}

// VerdictResponse is the graded outcome for one question. The field names
// match the submission records consumed by the results UI.
type VerdictResponse struct {
	QuestionID    int    `json:"questionId"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// SubmissionResultResponse is the response for a graded submission.
type SubmissionResultResponse struct {
	SubmissionID   string             `json:"submission_id,omitempty"`
	QuizID         string             `json:"quiz_id"`
	Score          int                `json:"score"`
	CorrectCount   int                `json:"correct_count"`
	TotalCount     int                `json:"total_count"`
	Results        []VerdictResponse  `json:"results"`
	WrongQuestions []QuizItemResponse `json:"wrong_questions"`
	SubmittedAt    time.Time          `json:"submitted_at"`
}

// UpdateSharingRequest toggles the public sharing state of a quiz.
type UpdateSharingRequest struct {
	IsShared bool `json:"is_shared"`
}

// UpdateSharingResponse returns the share token after a sharing update.
// Token is empty when sharing was turned off.
type UpdateSharingResponse struct {
	IsShared    bool   `json:"is_shared"`
	SharedToken string `json:"shared_token,omitempty"`
}

// HistoryItemResponse is one row of a user's submission history.
type HistoryItemResponse struct {
	SubmissionID string    `json:"submission_id"`
	QuizID       string    `json:"quiz_id"`
	QuizTitle    string    `json:"quiz_title"`
	Score        int       `json:"score"`
	CorrectCount int       `json:"correct_count"`
	TotalCount   int       `json:"total_count"`
	IsShared     bool      `json:"is_shared"`
	SharedToken  string    `json:"shared_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryResponse is the paginated submission history of a user.
type HistoryResponse struct {
	Items  []HistoryItemResponse `json:"items"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewQuizItemResponses maps domain quiz items to their response form.
func NewQuizItemResponses(items []domain.QuizItem) []QuizItemResponse {
	out := make([]QuizItemResponse, len(items))
	for i, item := range items {
		out[i] = QuizItemResponse{
			ID:          item.ID,
			Question:    item.Question,
			Options:     item.Options,
			Answer:      item.Answer,
			Explanation: item.Explanation,
		}
	}
	return out
}

// NewSubmissionResultResponse maps a domain QuizResult to its response form.
func NewSubmissionResultResponse(result *domain.QuizResult) *SubmissionResultResponse {
	verdicts := make([]VerdictResponse, len(result.Verdicts))
	for i, v := range result.Verdicts {
		verdicts[i] = VerdictResponse{
			QuestionID:    v.QuestionID,
			Question:      v.QuestionText,
			UserAnswer:    v.SubmittedAnswer,
			CorrectAnswer: v.CorrectAnswer,
			IsCorrect:     v.IsCorrect,
			Explanation:   v.Explanation,
		}
	}
	return &SubmissionResultResponse{
		SubmissionID:   result.SubmissionID,
		QuizID:         result.QuizID,
		Score:          result.ScorePercent,
		CorrectCount:   result.CorrectCount,
		TotalCount:     result.TotalCount,
		Results:        verdicts,
		WrongQuestions: NewQuizItemResponses(result.MissedQuestions),
		SubmittedAt:    result.SubmittedAt,
	}
}
