package service

import (
	"context"

	"quizmoa/internal/domain"
	"quizmoa/internal/dto"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// UserService serves user profile and submission history.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	GetHistory(ctx context.Context, userID string, p dto.Pagination) (*dto.HistoryResponse, error)
}

type userService struct {
	users       domain.UserRepository
	submissions domain.SubmissionRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(users domain.UserRepository, submissions domain.SubmissionRepository) UserService {
	return &userService{
		users:       users,
		submissions: submissions,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}

	return &dto.UserProfileResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
	}, nil
}

func (s *userService) GetHistory(ctx context.Context, userID string, p dto.Pagination) (*dto.HistoryResponse, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := s.submissions.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list submission history", err)
	}

	items := make([]dto.HistoryItemResponse, len(rows))
	for i, row := range rows {
		items[i] = dto.HistoryItemResponse{
			SubmissionID: row.ID,
			QuizID:       row.QuizID,
			QuizTitle:    row.QuizTitle,
			Score:        row.ScorePercent,
			CorrectCount: row.CorrectCount,
			TotalCount:   row.TotalCount,
			IsShared:     row.IsShared,
			SharedToken:  row.SharedToken,
			CreatedAt:    row.CreatedAt,
		}
	}

	return &dto.HistoryResponse{
		Items:  items,
		Limit:  limit,
		Offset: offset,
	}, nil
}
