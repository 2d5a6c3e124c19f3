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

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:              m.ID,
		GoogleID:        m.GoogleID,
		Email:           m.Email,
		Name:            m.Name.String,
		ProfileImageURL: m.ProfileImageURL.String,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// GetUserByID retrieves a user by ID. Returns (nil, nil) when no row matches.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var m models.User
	query := `SELECT id, google_id, email, name, profile_image_url, created_at, updated_at
	          FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&m), nil
}

// GetUserByGoogleID retrieves a user by their Google subject ID. Returns
// (nil, nil) when no row matches.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var m models.User
	query := `SELECT id, google_id, email, name, profile_image_url, created_at, updated_at
	          FROM users WHERE google_id = $1`

	err := r.db.GetContext(ctx, &m, query, googleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google id: %w", err)
	}
	return toDomainUser(&m), nil
}

// CreateUser inserts a new user.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	query := `INSERT INTO users (id, google_id, email, name, profile_image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.GoogleID,
		user.Email,
		util.StringToNullString(user.Name),
		util.StringToNullString(user.ProfileImageURL),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUser updates a user's mutable profile fields.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	query := `UPDATE users SET email = $1, name = $2, profile_image_url = $3, updated_at = $4 WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query,
		user.Email,
		util.StringToNullString(user.Name),
		util.StringToNullString(user.ProfileImageURL),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("user not found")
	}
	return nil
}
