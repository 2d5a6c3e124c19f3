package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizmoa/internal/domain"
	"quizmoa/internal/repository/models"
	"quizmoa/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title.String,
		Type:        m.Type,
		Difficulty:  m.Difficulty,
		Count:       m.Count,
		Content:     domain.QuizContent(m.QuizContent),
		IsShared:    m.IsShared,
		SharedToken: m.SharedToken.String,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	return &models.Quiz{
		ID:          q.ID,
		UserID:      q.UserID,
		Title:       util.StringToNullString(q.Title),
		Type:        q.Type,
		Difficulty:  q.Difficulty,
		Count:       q.Count,
		QuizContent: models.QuizContentColumn(q.Content),
		IsShared:    q.IsShared,
		SharedToken: util.StringToNullString(q.SharedToken),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

// SaveQuiz inserts a new quiz.
func (r *sqlxQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	m := fromDomainQuiz(quiz)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()

	query := `INSERT INTO quizzes (id, user_id, title, type, difficulty, count, quiz_content, is_shared, shared_token, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.Title,
		m.Type,
		m.Difficulty,
		m.Count,
		m.QuizContent,
		m.IsShared,
		m.SharedToken,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// GetQuizByID retrieves a quiz by its ID. Returns (nil, nil) when no row matches.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var m models.Quiz
	query := `SELECT id, user_id, title, type, difficulty, count, quiz_content, is_shared, shared_token, created_at, updated_at
	          FROM quizzes WHERE id = $1`

	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return toDomainQuiz(&m), nil
}

// GetQuizBySharedToken retrieves a quiz by its share token. Only rows with
// sharing enabled are visible through this path.
func (r *sqlxQuizRepository) GetQuizBySharedToken(ctx context.Context, token string) (*domain.Quiz, error) {
	var m models.Quiz
	query := `SELECT id, user_id, title, type, difficulty, count, quiz_content, is_shared, shared_token, created_at, updated_at
	          FROM quizzes WHERE shared_token = $1 AND is_shared = TRUE`

	err := r.db.GetContext(ctx, &m, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by shared token: %w", err)
	}
	return toDomainQuiz(&m), nil
}

// UpdateSharing updates the sharing flag and token of a quiz.
func (r *sqlxQuizRepository) UpdateSharing(ctx context.Context, quizID string, isShared bool, token string) error {
	query := `UPDATE quizzes SET is_shared = $1, shared_token = $2, updated_at = $3 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, isShared, util.StringToNullString(token), time.Now(), quizID)
	if err != nil {
		return fmt.Errorf("failed to update quiz sharing: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewQuizNotFoundError(quizID)
	}
	return nil
}
