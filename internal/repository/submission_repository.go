package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizmoa/internal/domain"
	"quizmoa/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxSubmissionRepository implements domain.SubmissionRepository using sqlx.
type sqlxSubmissionRepository struct {
	db *sqlx.DB
}

// NewSQLXSubmissionRepository creates a new instance of sqlxSubmissionRepository.
func NewSQLXSubmissionRepository(db *sqlx.DB) domain.SubmissionRepository {
	return &sqlxSubmissionRepository{db: db}
}

// fromDomainAnswers flattens an answer set into the stored form. A skipped
// answer is stored as the don't-know marker so it round-trips unambiguously.
func fromDomainAnswers(answers domain.AnswerSet) models.AnswerMap {
	m := make(models.AnswerMap, len(answers))
	for id, a := range answers {
		if a.DontKnow {
			m[id] = domain.DontKnowSentinel
			continue
		}
		m[id] = a.Text
	}
	return m
}

func toDomainAnswers(m models.AnswerMap) domain.AnswerSet {
	set := make(domain.AnswerSet, len(m))
	for id, text := range m {
		if text == domain.DontKnowSentinel {
			set[id] = domain.Skipped()
			continue
		}
		set[id] = domain.Attempted(text)
	}
	return set
}

func toDomainSubmission(m *models.Submission) *domain.Submission {
	if m == nil {
		return nil
	}
	return &domain.Submission{
		ID:           m.ID,
		QuizID:       m.QuizID,
		UserID:       m.UserID.String,
		Answers:      toDomainAnswers(m.UserAnswers),
		ScorePercent: m.Score,
		CorrectCount: m.CorrectCount,
		TotalCount:   m.TotalCount,
		CreatedAt:    m.CreatedAt,
	}
}

// CreateSubmission inserts a graded submission.
func (r *sqlxSubmissionRepository) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	createdAt := sub.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `INSERT INTO quiz_submissions (id, quiz_id, user_id, user_answers, score, correct_count, total_count, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.QuizID,
		nullableUserID(sub.UserID),
		fromDomainAnswers(sub.Answers),
		sub.ScorePercent,
		sub.CorrectCount,
		sub.TotalCount,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func nullableUserID(userID string) sql.NullString {
	if userID == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: userID, Valid: true}
}

// GetSubmissionByID retrieves a submission by its ID. Returns (nil, nil) when
// no row matches.
func (r *sqlxSubmissionRepository) GetSubmissionByID(ctx context.Context, id string) (*domain.Submission, error) {
	var m models.Submission
	query := `SELECT id, quiz_id, user_id, user_answers, score, correct_count, total_count, created_at
	          FROM quiz_submissions WHERE id = $1`

	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission by id: %w", err)
	}
	return toDomainSubmission(&m), nil
}

// submissionWithQuizRow joins a submission with its quiz metadata for history
// listings.
type submissionWithQuizRow struct {
	models.Submission
	QuizTitle   sql.NullString `db:"quiz_title"`
	IsShared    bool           `db:"is_shared"`
	SharedToken sql.NullString `db:"shared_token"`
}

// ListByUser returns a user's submissions, newest first, joined with quiz
// title and sharing state.
func (r *sqlxSubmissionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.SubmissionWithQuiz, error) {
	var rows []submissionWithQuizRow
	query := `SELECT s.id, s.quiz_id, s.user_id, s.user_answers, s.score, s.correct_count, s.total_count, s.created_at,
	                 q.title AS quiz_title, q.is_shared, q.shared_token
	          FROM quiz_submissions s
	          JOIN quizzes q ON q.id = s.quiz_id
	          WHERE s.user_id = $1
	          ORDER BY s.created_at DESC
	          LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions for user: %w", err)
	}

	result := make([]*domain.SubmissionWithQuiz, 0, len(rows))
	for i := range rows {
		row := rows[i]
		result = append(result, &domain.SubmissionWithQuiz{
			Submission:  *toDomainSubmission(&row.Submission),
			QuizTitle:   row.QuizTitle.String,
			IsShared:    row.IsShared,
			SharedToken: row.SharedToken.String,
		})
	}
	return result, nil
}
