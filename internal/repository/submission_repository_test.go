package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"quizmoa/internal/domain"
	"quizmoa/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// --- Converter tests ---

func TestAnswerConversionRoundTrip(t *testing.T) {
	set := domain.AnswerSet{
		1: domain.Attempted("Seoul"),
		2: domain.Skipped(),
		3: domain.Attempted(""),
	}

	stored := fromDomainAnswers(set)
	assert.Equal(t, "Seoul", stored[1])
	assert.Equal(t, domain.DontKnowSentinel, stored[2])
	assert.Equal(t, "", stored[3])

	back := toDomainAnswers(stored)
	assert.Equal(t, domain.Attempted("Seoul"), back[1])
	assert.True(t, back[2].DontKnow, "sentinel text restores the skip flag")
	assert.Equal(t, domain.Attempted(""), back[3])
}

func TestToDomainSubmission(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	m := &models.Submission{
		ID:           "sub1",
		QuizID:       "quiz1",
		UserID:       sql.NullString{String: "user1", Valid: true},
		UserAnswers:  models.AnswerMap{1: "Paris"},
		Score:        100,
		CorrectCount: 1,
		TotalCount:   1,
		CreatedAt:    now,
	}

	sub := toDomainSubmission(m)
	assert.NotNil(t, sub)
	assert.Equal(t, "sub1", sub.ID)
	assert.Equal(t, "user1", sub.UserID)
	assert.Equal(t, domain.Attempted("Paris"), sub.Answers[1])
	assert.Equal(t, 100, sub.ScorePercent)

	m.UserID.Valid = false
	sub = toDomainSubmission(m)
	assert.Equal(t, "", sub.UserID, "anonymous submissions carry no user")

	assert.Nil(t, toDomainSubmission(nil))
}

// --- Adapter method tests ---

func TestSQLXSubmissionRepository_CreateSubmission(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	sub := &domain.Submission{
		ID:     "sub-id",
		QuizID: "quiz-id",
		UserID: "user-id",
		Answers: domain.AnswerSet{
			1: domain.Attempted("Paris"),
			2: domain.Skipped(),
		},
		ScorePercent: 50,
		CorrectCount: 1,
		TotalCount:   2,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO quiz_submissions`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateSubmission(context.Background(), sub)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubmissionRepository_GetSubmissionByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	now := time.Now()
	answers := models.AnswerMap{1: "Paris", 2: domain.DontKnowSentinel}
	raw, err := answers.Value()
	assert.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "quiz_id", "user_id", "user_answers", "score", "correct_count", "total_count", "created_at"}).
		AddRow("sub-id", "quiz-id", sql.NullString{String: "user-id", Valid: true}, raw, 50, 1, 2, now)

	mock.ExpectQuery(`FROM quiz_submissions WHERE id = \$1`).
		WithArgs("sub-id").
		WillReturnRows(rows)

	sub, err := repo.GetSubmissionByID(context.Background(), "sub-id")
	assert.NoError(t, err)
	assert.NotNil(t, sub)
	assert.Equal(t, 50, sub.ScorePercent)
	assert.True(t, sub.Answers[2].DontKnow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubmissionRepository_GetSubmissionByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	mock.ExpectQuery(`FROM quiz_submissions WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	sub, err := repo.GetSubmissionByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, sub)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXSubmissionRepository_ListByUser(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXSubmissionRepository(db)
	defer db.Close()

	now := time.Now()
	answers := models.AnswerMap{1: "Paris"}
	raw, err := answers.Value()
	assert.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "quiz_id", "user_id", "user_answers", "score", "correct_count", "total_count", "created_at", "quiz_title", "is_shared", "shared_token"}).
		AddRow("sub-2", "quiz-1", sql.NullString{String: "user-id", Valid: true}, raw, 100, 1, 1, now, sql.NullString{String: "History Quiz", Valid: true}, true, sql.NullString{String: "tok", Valid: true}).
		AddRow("sub-1", "quiz-1", sql.NullString{String: "user-id", Valid: true}, raw, 0, 0, 1, now.Add(-time.Hour), sql.NullString{String: "History Quiz", Valid: true}, true, sql.NullString{String: "tok", Valid: true})

	mock.ExpectQuery(`JOIN quizzes q ON q\.id = s\.quiz_id`).
		WithArgs("user-id", 20, 0).
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), "user-id", 20, 0)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "sub-2", list[0].ID, "newest submission comes first")
	assert.Equal(t, "History Quiz", list[0].QuizTitle)
	assert.True(t, list[0].IsShared)
	assert.NoError(t, mock.ExpectationsWereMet())
}
