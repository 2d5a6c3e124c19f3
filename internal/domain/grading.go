package domain

import (
	"math"
	"strings"
	"time"
)

// DontKnowSentinel is the reserved text marking a deliberately skipped
// question. It is both accepted on input (legacy clients submit it as a plain
// string) and used as the display value of an unanswered verdict.
const DontKnowSentinel = "잘모르겠음"

// NormalizeAnswer canonicalizes a raw submitted answer for comparison. It
// returns the case-folded, whitespace-trimmed text and whether the question
// counts as answered at all. Empty or whitespace-only text, the sentinel text
// and the explicit skip flag all normalize to unanswered, so callers never
// have to guard against absent or blank input themselves.
func NormalizeAnswer(a SubmittedAnswer) (string, bool) {
	if a.DontKnow {
		return "", false
	}
	trimmed := strings.TrimSpace(a.Text)
	if trimmed == "" || trimmed == DontKnowSentinel {
		return "", false
	}
	return strings.ToLower(trimmed), true
}

// foldAnswerKey normalizes a correct-answer string the same way submitted
// text is normalized, so both sides of the equality check agree.
func foldAnswerKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Score grades a submitted answer set against the question list. It is the
// single source of truth for "is this submission correct": local grading,
// persisted submissions and shared-quiz grading all go through here.
//
// Questions are graded in input order. A question with no entry in answers is
// unanswered; an unanswered question is never correct, even when the correct
// answer is itself empty. A malformed question whose Answer can never match
// (for multiple choice, an Answer not present in Options) is not repaired or
// rejected; it simply grades as incorrect.
//
// Score is pure and deterministic: no I/O, no clock, identical inputs yield
// an identical summary.
func Score(questions []QuizItem, answers AnswerSet) (*ScoreSummary, error) {
	if len(questions) == 0 {
		return nil, NewInvalidInputError("cannot score an empty question set")
	}

	verdicts := make([]Verdict, 0, len(questions))
	missed := make([]QuizItem, 0)
	correctCount := 0

	for _, q := range questions {
		submitted := answers[q.ID] // zero value grades as unanswered

		normalized, answered := NormalizeAnswer(submitted)
		isCorrect := answered && normalized == foldAnswerKey(q.Answer)

		display := DontKnowSentinel
		if answered {
			display = strings.TrimSpace(submitted.Text)
		}

		if isCorrect {
			correctCount++
		} else {
			missed = append(missed, q)
		}

		verdicts = append(verdicts, Verdict{
			QuestionID:      q.ID,
			QuestionText:    q.Question,
			SubmittedAnswer: display,
			CorrectAnswer:   q.Answer,
			IsCorrect:       isCorrect,
			Explanation:     q.Explanation,
		})
	}

	return &ScoreSummary{
		ScorePercent:    roundPercent(correctCount, len(questions)),
		CorrectCount:    correctCount,
		TotalCount:      len(questions),
		Verdicts:        verdicts,
		MissedQuestions: missed,
	}, nil
}

// roundPercent computes round-half-up(correct/total*100). Half-up matches the
// behavior every client of this engine has displayed so far; do not switch to
// banker's rounding.
func roundPercent(correct, total int) int {
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// BuildResult attaches identity and submission metadata to a ScoreSummary.
// SubmissionID is passed through only when the caller already obtained one
// from the datastore; this function never invents an identifier. A zero
// Timestamp defaults to the current time. BuildResult does not persist
// anything: grading stays usable when persistence is down.
func BuildResult(summary *ScoreSummary, rc ResultContext) *QuizResult {
	ts := rc.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &QuizResult{
		QuizID:          rc.QuizID,
		SubmissionID:    rc.SubmissionID,
		ScorePercent:    summary.ScorePercent,
		CorrectCount:    summary.CorrectCount,
		TotalCount:      summary.TotalCount,
		Verdicts:        summary.Verdicts,
		MissedQuestions: summary.MissedQuestions,
		SubmittedAt:     ts,
	}
}
