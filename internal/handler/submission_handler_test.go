package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"quizmoa/internal/domain"
	"quizmoa/internal/dto"
	"quizmoa/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// MockSubmissionService
type MockSubmissionService struct {
	SubmitFunc        func(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error)
	GradeSharedFunc   func(ctx context.Context, token string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error)
	GetSubmissionFunc func(ctx context.Context, userID, submissionID string) (*dto.SubmissionResultResponse, error)
}

func (m *MockSubmissionService) Submit(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, userID, quizID, req)
	}
	panic("MockSubmissionService.SubmitFunc not implemented")
}
func (m *MockSubmissionService) GradeShared(ctx context.Context, token string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error) {
	if m.GradeSharedFunc != nil {
		return m.GradeSharedFunc(ctx, token, req)
	}
	panic("MockSubmissionService.GradeSharedFunc not implemented")
}
func (m *MockSubmissionService) GetSubmission(ctx context.Context, userID, submissionID string) (*dto.SubmissionResultResponse, error) {
	if m.GetSubmissionFunc != nil {
		return m.GetSubmissionFunc(ctx, userID, submissionID)
	}
	panic("MockSubmissionService.GetSubmissionFunc not implemented")
}

func TestSubmitHandler_AcceptsBothAnswerForms(t *testing.T) {
	var captured *dto.SubmitQuizRequest
	mockSvc := &MockSubmissionService{
		SubmitFunc: func(ctx context.Context, userID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error) {
			captured = req
			return &dto.SubmissionResultResponse{QuizID: quizID, Score: 50}, nil
		},
	}
	app := newTestApp("user-1")
	h := handler.NewSubmissionHandler(mockSvc)
	app.Post("/api/quizzes/:id/submissions", h.Submit)

	// Plain string and structured forms side by side in one payload.
	body := []byte(`{"answers": {"1": "Seoul", "2": {"answer": "", "dont_know": true}}}`)
	req := httptest.NewRequest("POST", "/api/quizzes/quiz-1/submissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.NotNil(t, captured)
	set := captured.ToAnswerSet()
	assert.Equal(t, domain.Attempted("Seoul"), set[1])
	assert.True(t, set[2].DontKnow)
}

func TestSubmitHandler_MalformedBody(t *testing.T) {
	app := newTestApp("user-1")
	h := handler.NewSubmissionHandler(&MockSubmissionService{})
	app.Post("/api/quizzes/:id/submissions", h.Submit)

	req := httptest.NewRequest("POST", "/api/quizzes/quiz-1/submissions", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGradeSharedHandler(t *testing.T) {
	mockSvc := &MockSubmissionService{
		GradeSharedFunc: func(ctx context.Context, token string, req *dto.SubmitQuizRequest) (*dto.SubmissionResultResponse, error) {
			assert.Equal(t, "tok-1", token)
			return &dto.SubmissionResultResponse{QuizID: "quiz-1", Score: 80}, nil
		},
	}
	app := newTestApp("")
	h := handler.NewSubmissionHandler(mockSvc)
	app.Post("/api/shared/:token/grade", h.GradeShared)

	body, _ := json.Marshal(map[string]any{"answers": map[string]string{"1": "answer"}})
	req := httptest.NewRequest("POST", "/api/shared/tok-1/grade", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody[dto.SubmissionResultResponse](t, resp.Body)
	assert.Equal(t, 80, out.Score)
}

func TestGetSubmissionHandler_NotFoundMapsTo404(t *testing.T) {
	mockSvc := &MockSubmissionService{
		GetSubmissionFunc: func(ctx context.Context, userID, submissionID string) (*dto.SubmissionResultResponse, error) {
			return nil, domain.NewSubmissionNotFoundError(submissionID)
		},
	}
	app := newTestApp("user-1")
	h := handler.NewSubmissionHandler(mockSvc)
	app.Get("/api/submissions/:id", h.GetSubmission)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/submissions/gone", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
