package handler

import (
	"quizmoa/internal/dto"
	"quizmoa/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile and history requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags user
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	resp, err := h.service.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHistory godoc
// @Summary Get the user's submission history
// @Tags user
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.HistoryResponse
// @Security BearerAuth
// @Router /users/me/history [get]
func (h *UserHandler) GetHistory(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		p = dto.Pagination{}
	}

	resp, err := h.service.GetHistory(c.Context(), currentUserID(c), p)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
