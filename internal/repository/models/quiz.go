package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizmoa/internal/domain"
)

// QuizContentColumn stores a domain.QuizContent as a JSONB column.
type QuizContentColumn domain.QuizContent

// Value implements the driver.Valuer interface
func (c QuizContentColumn) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(domain.QuizContent(c))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (c *QuizContentColumn) Scan(value interface{}) error {
	if value == nil {
		*c = QuizContentColumn{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("QuizContentColumn Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*c = QuizContentColumn{}
		return nil
	}
	return json.Unmarshal(bytesToParse, (*domain.QuizContent)(c))
}

// Quiz is the quizzes table row.
type Quiz struct {
	ID          string            `db:"id"`
	UserID      string            `db:"user_id"`
	Title       sql.NullString    `db:"title"`
	Type        string            `db:"type"`
	Difficulty  string            `db:"difficulty"`
	Count       int               `db:"count"`
	QuizContent QuizContentColumn `db:"quiz_content"`
	IsShared    bool              `db:"is_shared"`
	SharedToken sql.NullString    `db:"shared_token"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}
