package service

import (
	"context"
	"encoding/json"
	"time"

	"quizmoa/internal/cache"
	"quizmoa/internal/domain"
	"quizmoa/internal/dto"
	"quizmoa/internal/logger"
	"quizmoa/internal/util"

	"go.uber.org/zap"
)

const anonymousResultCacheTTL = 24 * time.Hour

// SubmissionService grades quiz submissions and serves past results.
type SubmissionService interface {
	// Submit grades the user's answers against the quiz and persists the
	// submission. A grading result is still returned when persistence fails;
	// the submission id is simply absent in that case.
	Submit(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error)

	// GradeShared grades answers against a shared quiz fetched by token.
	// No account is required; the result is kept in the cache so the
	// result view can be reloaded.
	GradeShared(ctx context.Context, token string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error)

	// GetSubmission returns a persisted submission re-graded against its
	// quiz, restricted to the submission's owner.
	GetSubmission(ctx context.Context, userID, submissionID string) (*dto.SubmissionResultResponse, error)
}

type submissionService struct {
	submissions domain.SubmissionRepository
	quizzes     domain.QuizRepository
	cache       domain.Cache
}

// NewSubmissionService creates a new instance of submissionService.
func NewSubmissionService(
	submissions domain.SubmissionRepository,
	quizzes domain.QuizRepository,
	c domain.Cache,
) SubmissionService {
	return &submissionService{
		submissions: submissions,
		quizzes:     quizzes,
		cache:       c,
	}
}

func (s *submissionService) Submit(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error) {
	quiz, err := s.quizzes.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz for grading", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	answers := req.ToAnswerSet()
	summary, err := domain.Score(quiz.Content.Quizzes, answers)
	if err != nil {
		return nil, err
	}

	submission := &domain.Submission{
		ID:           util.NewULID(),
		QuizID:       quizID,
		UserID:       userID,
		Answers:      answers,
		ScorePercent: summary.ScorePercent,
		CorrectCount: summary.CorrectCount,
		TotalCount:   summary.TotalCount,
		CreatedAt:    time.Now(),
	}

	rc := domain.ResultContext{
		QuizID:       quizID,
		SubmissionID: submission.ID,
		Timestamp:    submission.CreatedAt,
	}
	if err := s.submissions.CreateSubmission(ctx, submission); err != nil {
		// The user already earned this grade; losing the history row is
		// not a reason to withhold it.
		logger.Get().Error("Failed to persist submission, returning grade without id",
			zap.Error(err),
			zap.String("quizID", quizID),
			zap.String("userID", userID))
		rc.SubmissionID = ""
	}

	result := domain.BuildResult(summary, rc)
	return dto.NewSubmissionResultResponse(result), nil
}

func (s *submissionService) GradeShared(ctx context.Context, token string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error) {
	quiz, err := s.quizzes.GetQuizBySharedToken(ctx, token)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load shared quiz for grading", err)
	}
	if quiz == nil {
		return nil, domain.NewSharedQuizNotFoundError(token)
	}

	answers := req.ToAnswerSet()
	summary, err := domain.Score(quiz.Content.Quizzes, answers)
	if err != nil {
		return nil, err
	}

	result := domain.BuildResult(summary, domain.ResultContext{QuizID: quiz.ID})
	resp := dto.NewSubmissionResultResponse(result)

	// Anonymous results have no database row; the cache is the only place a
	// result page reload can find them.
	resultID := util.NewULID()
	cacheKey := cache.GenerateCacheKey("submission", "anonymous", resultID)
	if data, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(data), anonymousResultCacheTTL); err != nil {
			logger.Get().Warn("Failed to cache anonymous result", zap.Error(err), zap.String("key", cacheKey))
		} else {
			resp.SubmissionID = resultID
		}
	}

	return resp, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, userID, submissionID string) (*dto.SubmissionResultResponse, error) {
	submission, err := s.submissions.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get submission", err)
	}
	if submission == nil || submission.UserID != userID {
		return nil, domain.NewSubmissionNotFoundError(submissionID)
	}

	quiz, err := s.quizzes.GetQuizByID(ctx, submission.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz for submission", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(submission.QuizID)
	}

	// Grading is deterministic, so re-scoring the stored answers rebuilds
	// the exact verdict list without persisting it.
	summary, err := domain.Score(quiz.Content.Quizzes, submission.Answers)
	if err != nil {
		return nil, err
	}

	result := domain.BuildResult(summary, domain.ResultContext{
		QuizID:       submission.QuizID,
		SubmissionID: submission.ID,
		Timestamp:    submission.CreatedAt,
	})
	return dto.NewSubmissionResultResponse(result), nil
}
