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

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const sharedQuizCacheTTL = 10 * time.Minute

// QuizService defines the interface for quiz-related operations.
type QuizService interface {
	// GenerateQuiz creates a quiz from study material via the generation
	// collaborator, persists it, and charges it against the user's daily
	// quota.
	GenerateQuiz(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.QuizContentResponse, error)

	// GetQuiz returns a quiz owned by the user.
	GetQuiz(ctx context.Context, userID, quizID string) (*dto.SharedQuizResponse, error)

	// GetSharedQuiz returns a publicly shared quiz by its token.
	GetSharedQuiz(ctx context.Context, token string) (*dto.SharedQuizResponse, error)

	// UpdateSharing toggles public sharing on a quiz owned by the user,
	// minting a token on first share and keeping it across re-shares.
	UpdateSharing(ctx context.Context, userID, quizID string, isShared bool) (*dto.UpdateSharingResponse, error)
}

type quizService struct {
	repo      domain.QuizRepository
	generator domain.QuizGenerationService
	usage     UsageService
	cache     domain.Cache
	sf        singleflight.Group
}

// NewQuizService creates a new instance of quizService.
func NewQuizService(
	repo domain.QuizRepository,
	generator domain.QuizGenerationService,
	usage UsageService,
	c domain.Cache,
) QuizService {
	return &quizService{
		repo:      repo,
		generator: generator,
		usage:     usage,
		cache:     c,
	}
}

func (s *quizService) GenerateQuiz(ctx context.Context, userID string, req *dto.GenerateQuizRequest) (*dto.QuizContentResponse, error) {
	if !domain.ValidateQuizType(req.Type) {
		return nil, domain.NewInvalidInputError("type must be multiple_choice or short_answer")
	}
	if !domain.ValidateDifficulty(req.Difficulty) {
		return nil, domain.NewInvalidInputError("difficulty must be easy, medium, or hard")
	}
	if req.Count < 5 || req.Count > 10 {
		return nil, domain.NewInvalidInputError("count must be between 5 and 10")
	}

	remaining, err := s.usage.ConsumeGeneration(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := s.generator.Generate(ctx, domain.GenerationRequest{
		Text:       req.Text,
		Type:       req.Type,
		Count:      req.Count,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = content.Summary
	}

	quiz := domain.NewQuiz(util.NewULID(), userID, title, req.Type, req.Difficulty, *content)
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("Failed to save generated quiz", err)
	}

	logger.Get().Info("Generated quiz",
		zap.String("quizID", quiz.ID),
		zap.String("userID", userID),
		zap.Int("questionCount", quiz.Count),
		zap.Int("remainingGenerations", remaining))

	return &dto.QuizContentResponse{
		QuizID:     quiz.ID,
		Title:      quiz.Title,
		Type:       quiz.Type,
		Difficulty: quiz.Difficulty,
		Count:      quiz.Count,
		Summary:    content.Summary,
		Quizzes:    dto.NewQuizItemResponses(content.Quizzes),
		Remaining:  remaining,
	}, nil
}

func (s *quizService) GetQuiz(ctx context.Context, userID, quizID string) (*dto.SharedQuizResponse, error) {
	quiz, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil || quiz.UserID != userID {
		// Hiding other users' quizzes behind not-found keeps quiz IDs
		// unenumerable.
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	return quizToSharedResponse(quiz), nil
}

func (s *quizService) GetSharedQuiz(ctx context.Context, token string) (*dto.SharedQuizResponse, error) {
	cacheKey := cache.GenerateCacheKey("quiz", "shared", token)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var resp dto.SharedQuizResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
		logger.Get().Warn("Corrupt shared quiz cache entry, refetching", zap.String("key", cacheKey))
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		quiz, err := s.repo.GetQuizBySharedToken(ctx, token)
		if err != nil {
			return nil, domain.NewInternalError("Failed to get shared quiz", err)
		}
		if quiz == nil {
			return nil, domain.NewSharedQuizNotFoundError(token)
		}

		resp := quizToSharedResponse(quiz)
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), sharedQuizCacheTTL); err != nil {
				logger.Get().Warn("Failed to cache shared quiz", zap.Error(err), zap.String("key", cacheKey))
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.SharedQuizResponse), nil
}

func (s *quizService) UpdateSharing(ctx context.Context, userID, quizID string, isShared bool) (*dto.UpdateSharingResponse, error) {
	quiz, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil || quiz.UserID != userID {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	token := quiz.SharedToken
	if isShared && token == "" {
		token = uuid.NewString()
	}
	if !isShared {
		token = ""
	}

	if err := s.repo.UpdateSharing(ctx, quizID, isShared, token); err != nil {
		return nil, err
	}

	// Sharing changes invalidate the shared view immediately.
	if quiz.SharedToken != "" {
		staleKey := cache.GenerateCacheKey("quiz", "shared", quiz.SharedToken)
		if err := s.cache.Delete(ctx, staleKey); err != nil {
			logger.Get().Warn("Failed to invalidate shared quiz cache", zap.Error(err), zap.String("key", staleKey))
		}
	}

	return &dto.UpdateSharingResponse{
		IsShared:    isShared,
		SharedToken: token,
	}, nil
}

func quizToSharedResponse(quiz *domain.Quiz) *dto.SharedQuizResponse {
	return &dto.SharedQuizResponse{
		ID:         quiz.ID,
		Title:      quiz.Title,
		Type:       quiz.Type,
		Difficulty: quiz.Difficulty,
		Count:      quiz.Count,
		Summary:    quiz.Content.Summary,
		Quizzes:    dto.NewQuizItemResponses(quiz.Content.Quizzes),
	}
}
