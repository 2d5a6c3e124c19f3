package domain

import "context"

// GenerationRequest is the input to the quiz generation collaborator.
type GenerationRequest struct {
	Text       string
	Type       string
	Count      int
	Difficulty string
}

// QuizGenerationService defines the interface for the AI-backed quiz
// generation collaborator. The engine does not validate the generated content
// beyond what Score tolerates: an answer that cannot match simply grades as
// incorrect.
type QuizGenerationService interface {
	Generate(ctx context.Context, req GenerationRequest) (*QuizContent, error)
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// SaveQuiz persists a new quiz
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// GetQuizByID retrieves a quiz by its ID
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)

	// GetQuizBySharedToken retrieves a quiz by its share token.
	// Only quizzes with sharing enabled are returned.
	GetQuizBySharedToken(ctx context.Context, token string) (*Quiz, error)

	// UpdateSharing updates the sharing flag and token of a quiz
	UpdateSharing(ctx context.Context, quizID string, isShared bool, token string) error
}

// SubmissionRepository defines the interface for submission persistence
type SubmissionRepository interface {
	// CreateSubmission inserts a new graded submission
	CreateSubmission(ctx context.Context, submission *Submission) error

	// GetSubmissionByID retrieves a submission by its ID
	GetSubmissionByID(ctx context.Context, id string) (*Submission, error)

	// ListByUser returns the user's submissions joined with quiz display
	// data, newest first
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*SubmissionWithQuiz, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
}
