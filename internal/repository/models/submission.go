package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AnswerMap stores the raw submitted answers as a JSONB column, keyed by the
// question id. The "don't know" case is stored as the sentinel text, which is
// the shape the results history UI has always consumed.
type AnswerMap map[int]string

// Value implements the driver.Valuer interface
func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("AnswerMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*m = AnswerMap{}
		return nil
	}
	return json.Unmarshal(bytesToParse, m)
}

// Submission is the quiz_submissions table row.
type Submission struct {
	ID           string         `db:"id"`
	QuizID       string         `db:"quiz_id"`
	UserID       sql.NullString `db:"user_id"`
	UserAnswers  AnswerMap      `db:"user_answers"`
	Score        int            `db:"score"`
	CorrectCount int            `db:"correct_count"`
	TotalCount   int            `db:"total_count"`
	CreatedAt    time.Time      `db:"created_at"`
}
