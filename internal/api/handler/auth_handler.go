package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlink/tutorlink-api/internal/api/metrics"
	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// AuthHandler serves registration, login and the password reset flow.
type AuthHandler struct {
	accounts ports.AccountService
	resets   ports.PasswordResetService
	sessions ports.SessionIssuer
	resetURL string
}

func NewAuthHandler(accounts ports.AccountService, resets ports.PasswordResetService, sessions ports.SessionIssuer, resetURL string) *AuthHandler {
	return &AuthHandler{accounts: accounts, resets: resets, sessions: sessions, resetURL: resetURL}
}

// Register creates a Student or Tutor account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	taken, err := h.accounts.IsEmailTaken(ctx, req.Email)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmailTaken
	}

	taken, err = h.accounts.IsUsernameTaken(ctx, req.Username)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUsernameTaken
	}

	acc, err := h.accounts.Register(ctx, toRegisterInput(req))
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(acc.RoleName(), "self").Inc()
	return c.JSON(http.StatusCreated, registerResponse{User: toAccountResponse(acc)})
}

// Login authenticates an account and returns a signed session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	acc, err := h.accounts.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	if acc == nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return domain.ErrInvalidCredentials
	}

	identity := domain.IdentityOf(acc)
	token, err := h.sessions.Issue(identity)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, Identity: identity})
}

// ForgotPassword mails a reset link to a registered email.
//
// @Summary      Request a password reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	link, err := h.resets.IssueResetLink(c.Request().Context(), req.Email, h.resetURL)
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("issue", "error").Inc()
		return err
	}
	if link == "" {
		metrics.PasswordResetsTotal.WithLabelValues("issue", "not_found").Inc()
		return echo.NewHTTPError(http.StatusNotFound, "email not found")
	}

	metrics.PasswordResetsTotal.WithLabelValues("issue", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "a reset link has been sent to your email"})
}

// ResetPassword consumes a reset token and sets a new password.
//
// @Summary      Reset a password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ok, err := h.resets.ResetPassword(c.Request().Context(), req.Token, req.Password)
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("consume", "error").Inc()
		return err
	}
	if !ok {
		metrics.PasswordResetsTotal.WithLabelValues("consume", "not_found").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid or expired token")
	}

	metrics.PasswordResetsTotal.WithLabelValues("consume", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "password has been reset"})
}
