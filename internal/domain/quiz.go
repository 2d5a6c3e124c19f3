package domain

import (
	"time"
)

// Quiz type constants. Short-answer items carry an empty Options slice.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeShortAnswer    = "short_answer"
)

// Difficulty levels accepted from the generation request.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// QuizItem is one question inside a generated quiz. IDs are 1-based and
// unique within a single quiz; the scoring engine indexes answers by them.
type QuizItem struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// QuizContent is the generated payload stored with a quiz: a summary of the
// study material plus the question list.
type QuizContent struct {
	Summary string     `json:"summary"`
	Quizzes []QuizItem `json:"quizzes"`
}

// Quiz represents a stored quiz in the domain
type Quiz struct {
	ID          string
	UserID      string
	Title       string
	Type        string
	Difficulty  string
	Count       int
	Content     QuizContent
	IsShared    bool
	SharedToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewQuiz creates a new Quiz instance
func NewQuiz(id, userID, title, quizType, difficulty string, content QuizContent) *Quiz {
	now := time.Now()
	return &Quiz{
		ID:         id,
		UserID:     userID,
		Title:      title,
		Type:       quizType,
		Difficulty: difficulty,
		Count:      len(content.Quizzes),
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ValidateDifficulty reports whether diff is one of the accepted levels.
func ValidateDifficulty(diff string) bool {
	switch diff {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ValidateQuizType reports whether t is one of the accepted quiz types.
func ValidateQuizType(t string) bool {
	return t == TypeMultipleChoice || t == TypeShortAnswer
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if !ValidateQuizType(q.Type) {
		return NewInvalidInputError("quiz type must be multiple_choice or short_answer")
	}
	if !ValidateDifficulty(q.Difficulty) {
		return NewInvalidInputError("difficulty must be easy, medium or hard")
	}
	if len(q.Content.Quizzes) == 0 {
		return NewInvalidInputError("quiz content must have at least one question")
	}
	return nil
}

// User represents an authenticated user
type User struct {
	ID              string
	GoogleID        string
	Email           string
	Name            string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
