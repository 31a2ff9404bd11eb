package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// ProfileHandler serves the authenticated account's own profile.
type ProfileHandler struct {
	accounts ports.AccountService
}

func NewProfileHandler(accounts ports.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// Me handles GET /v1/me.
//
// @Summary      Current account profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.accounts.GetProfile(c.Request().Context(), id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(*profile))
}

// UpdateTutorProfile handles PUT /v1/me/tutor-profile.
//
// @Summary      Edit own tutor profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateTutorProfileRequest  true  "Tutor profile fields"
// @Success      200   {object}  tutorProfileResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/me/tutor-profile [put]
func (h *ProfileHandler) UpdateTutorProfile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTutorProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.accounts.UpdateTutorProfile(c.Request().Context(), id.AccountID, toTutorProfileUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTutorProfileResponse(*p))
}
