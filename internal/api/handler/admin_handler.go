package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlink/tutorlink-api/internal/api/metrics"
	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// AdminHandler serves the Admin-only account management endpoints.
type AdminHandler struct {
	accounts ports.AccountService
}

func NewAdminHandler(accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

// Stats handles GET /v1/admin/stats.
//
// @Summary      Dashboard counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.accounts.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{
		TotalUsers:    stats.TotalUsers,
		TotalTutors:   stats.TotalTutors,
		TotalStudents: stats.TotalStudents,
	})
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List live accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   profileResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	profiles, err := h.accounts.ListActive(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

// GetUser handles GET /v1/admin/users/:id. Deleted accounts are returned too.
//
// @Summary      Get an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	acc, err := h.accounts.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(acc))
}

// CreateUser handles POST /v1/admin/users.
//
// @Summary      Create an account with an explicit role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminCreateUserRequest  true  "Account"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req adminCreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	acc, err := h.accounts.AdminCreate(c.Request().Context(), toAdminCreateInput(req), domain.RoleID(req.RoleID))
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(acc.RoleName(), "admin").Inc()
	return c.JSON(http.StatusCreated, toAccountResponse(acc))
}

// UpdateUser handles PUT /v1/admin/users/:id.
//
// @Summary      Edit an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Account id"
// @Param        body  body      updateUserRequest  true  "Profile fields"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.accounts.UpdateProfile(ctx, id, toProfileUpdate(req)); err != nil {
		return err
	}

	acc, err := h.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(acc))
}

// DeleteUser handles DELETE /v1/admin/users/:id. Unknown ids succeed.
//
// @Summary      Soft-delete an account and its tutor profiles
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  int  true  "Account id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.accounts.SoftDelete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
