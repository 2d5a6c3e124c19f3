package handler

import (
	"quizmoa/internal/domain"
	"quizmoa/internal/dto"
	"quizmoa/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmissionHandler handles grading and submission lookup requests
type SubmissionHandler struct {
	service service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler instance
func NewSubmissionHandler(service service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
	}
}

// Submit godoc
// @Summary Submit answers for grading
// @Description Grades the answers against the quiz and records the submission
// @Tags submission
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.SubmitQuizRequest true "Answers keyed by question id"
// @Success 200 {object} dto.SubmissionResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/submissions [post]
func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.Submit(c.Context(), currentUserID(c), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GradeShared godoc
// @Summary Grade answers against a shared quiz
// @Description Public endpoint; no account required. The result is cached for reload.
// @Tags submission
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Param request body dto.SubmitQuizRequest true "Answers keyed by question id"
// @Success 200 {object} dto.SubmissionResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /shared/{token}/grade [post]
func (h *SubmissionHandler) GradeShared(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.GradeShared(c.Context(), c.Params("token"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetSubmission godoc
// @Summary Get a past submission with its verdicts
// @Tags submission
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.SubmissionResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *fiber.Ctx) error {
	resp, err := h.service.GetSubmission(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
