package handler

import (
	"quizmoa/internal/domain"
	"quizmoa/internal/dto"
	"quizmoa/internal/middleware"
	"quizmoa/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GenerateQuiz godoc
// @Summary Generate a quiz from study material
// @Description Generates a quiz via the AI model, saves it, and counts it against the daily quota
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 200 {object} dto.QuizContentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.Text == "" {
		return domain.NewInvalidInputError("text is required")
	}

	resp, err := h.service.GenerateQuiz(c.Context(), currentUserID(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get one of the user's quizzes
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.SharedQuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	resp, err := h.service.GetQuiz(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetSharedQuiz godoc
// @Summary Get a shared quiz by token
// @Description Public endpoint for solving a quiz shared by another user
// @Tags quiz
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} dto.SharedQuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /shared/{token} [get]
func (h *QuizHandler) GetSharedQuiz(c *fiber.Ctx) error {
	resp, err := h.service.GetSharedQuiz(c.Context(), c.Params("token"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateSharing godoc
// @Summary Toggle public sharing on a quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.UpdateSharingRequest true "Sharing update"
// @Success 200 {object} dto.UpdateSharingResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/sharing [patch]
func (h *QuizHandler) UpdateSharing(c *fiber.Ctx) error {
	var req dto.UpdateSharingRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.UpdateSharing(c.Context(), currentUserID(c), c.Params("id"), req.IsShared)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
