package domain

import (
	"time"
)

// SubmittedAnswer is one raw answer from a solving session. The "don't know"
// state is a tagged case rather than a reserved string compared by value, so a
// genuine answer that happens to equal the sentinel text is still detected by
// the normalizer, while UIs with an explicit skip button set DontKnow directly.
type SubmittedAnswer struct {
	Text     string
	DontKnow bool
}

// Attempted wraps free text as a submitted answer.
func Attempted(text string) SubmittedAnswer {
	return SubmittedAnswer{Text: text}
}

// Skipped returns the explicit "don't know" answer.
func Skipped() SubmittedAnswer {
	return SubmittedAnswer{DontKnow: true}
}

// AnswerSet maps question IDs to raw submitted answers. It is created by the
// caller during a solving session and passed once into Score; the engine never
// retains it across calls.
type AnswerSet map[int]SubmittedAnswer

// Verdict is the graded outcome for one question. SubmittedAnswer holds the
// display form: the trimmed original text, or the sentinel for an unanswered
// question.
type Verdict struct {
	QuestionID      int
	QuestionText    string
	SubmittedAnswer string
	CorrectAnswer   string
	IsCorrect       bool
	Explanation     string
}

// ScoreSummary is the aggregate output of one grading pass. Verdicts follow
// the input question order; MissedQuestions are the original QuizItem values
// whose verdicts came back incorrect, in original relative order.
type ScoreSummary struct {
	ScorePercent    int
	CorrectCount    int
	TotalCount      int
	Verdicts        []Verdict
	MissedQuestions []QuizItem
}

// ResultContext carries the identity and metadata attached to a ScoreSummary
// when it is turned into a QuizResult. SubmissionID comes back from the
// datastore insert and stays empty until then; a zero Timestamp means "now".
type ResultContext struct {
	QuizID       string
	SubmissionID string
	Timestamp    time.Time
}

// QuizResult is a persistable, displayable grading result.
type QuizResult struct {
	QuizID          string
	SubmissionID    string
	ScorePercent    int
	CorrectCount    int
	TotalCount      int
	Verdicts        []Verdict
	MissedQuestions []QuizItem
	SubmittedAt     time.Time
}

// Submission is the persisted record of one graded quiz attempt.
type Submission struct {
	ID           string
	QuizID       string
	UserID       string
	Answers      AnswerSet
	ScorePercent int
	CorrectCount int
	TotalCount   int
	CreatedAt    time.Time
}

// SubmissionWithQuiz is a submission joined with display data of its quiz,
// used by the history listing.
type SubmissionWithQuiz struct {
	Submission
	QuizTitle   string
	IsShared    bool
	SharedToken string
}
