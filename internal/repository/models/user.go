package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	ID              string         `db:"id"`
	GoogleID        string         `db:"google_id"`
	Email           string         `db:"email"`
	Name            sql.NullString `db:"name"`
	ProfileImageURL sql.NullString `db:"profile_image_url"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}
