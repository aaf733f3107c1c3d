package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsroom/publishing-api/internal/api/metrics"
	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
	"github.com/newsroom/publishing-api/internal/pkg/token"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new USER account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userEnvelope{User: toUserResponse(user.View())})
}

// Login authenticates a user, returns an access token and sets the refresh
// token cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Header       200   {string}  Set-Cookie  "refreshToken=<jwt>; Path=/; Max-Age=<ttl>; HttpOnly"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	c.SetCookie(session.Refresh.Cookie)
	return c.JSON(http.StatusOK, loginResponse{
		User:        toUserResponse(session.User.View()),
		AccessToken: session.Access.Token,
	})
}

// Token exchanges the refresh cookie for a new access token and rotates the
// refresh token.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  tokenResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/token [get]
func (h *AuthHandler) Token(c echo.Context) error {
	session, err := h.authService.Refresh(c.Request().Context(), refreshCookie(c))
	if err != nil {
		return err
	}
	metrics.TokensRefreshedTotal.Inc()

	c.SetCookie(session.Refresh.Cookie)
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: session.Access.Token})
}

// ForgotPassword mails a restore link when the email belongs to an account.
// The response is the same either way.
//
// @Summary      Request a password restore link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "if the account exists, a restore link has been sent"})
}

// RestorePassword sets a new password for the authenticated caller.
//
// @Summary      Set a new password
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  restorePasswordRequest  true  "New password, twice"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/restore-password [post]
func (h *AuthHandler) RestorePassword(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req restorePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.authService.RestorePassword(c.Request().Context(), claim, req.Password1); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Logout revokes the refresh token and clears its cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), refreshCookie(c)); err != nil {
		return err
	}

	c.SetCookie(token.ClearRefreshCookie())
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

func refreshCookie(c echo.Context) string {
	cookie, err := c.Cookie(token.RefreshCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
