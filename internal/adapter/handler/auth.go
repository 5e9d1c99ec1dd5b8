package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/errors"
	authDTO "github.com/johnquangdev/joyability/internal/adapter/dto/auth"
	"github.com/johnquangdev/joyability/internal/adapter/presenter"
	"github.com/johnquangdev/joyability/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/joyability/internal/usecase/auth"
	"github.com/johnquangdev/joyability/pkg/config"
)

// RefreshTokenCookie holds the refresh token for browser clients
const RefreshTokenCookie = "refresh_token"

// AuthService is what the auth handler needs from the auth use case
type AuthService interface {
	GoogleLoginURL(ctx context.Context, host string) (*auth.GoogleAuthURLResponse, error)
	HandleGoogleCallback(ctx context.Context, req auth.GoogleCallbackRequest) (*auth.AuthResponse, error)
	GuestLogin(ctx context.Context) (*auth.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Auth handles authentication HTTP requests
type Auth struct {
	service       AuthService
	logger        *zap.Logger
	secureCookies bool
	refreshExpiry time.Duration
}

// NewAuth creates a new auth handler
func NewAuth(service AuthService, logger *zap.Logger, cfg *config.Config) *Auth {
	return &Auth{
		service:       service,
		logger:        logger,
		secureCookies: cfg.IsProduction(),
		refreshExpiry: cfg.JWT.RefreshExpiry,
	}
}

// GuestLogin signs in the local guest identity
// @Summary      Continue as guest
// @Description  Issues tokens for the shared guest identity without contacting any provider
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  auth.AuthResponse
// @Router       /auth/guest [post]
func (h *Auth) GuestLogin(c echo.Context) error {
	resp, err := h.service.GuestLogin(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	h.setSessionCookies(c, resp)
	return HandleSuccess(h.logger, c, presenter.ToAuthResponse(resp))
}

// GoogleLogin handles the initial Google OAuth login request
// @Summary      Start Google sign-in
// @Description  Redirects to Google, or returns the URL when format=json
// @Tags         Auth
// @Produce      json
// @Param        format  query     string  false  "json to receive the URL instead of a redirect"
// @Success      200     {object}  auth.LoginURLResponse
// @Success      307     "Redirect to Google"
// @Failure      403     {object}  common.ErrorResponse  "Unauthorized domain"
// @Failure      503     {object}  common.ErrorResponse  "Google sign-in not configured"
// @Router       /auth/google/login [get]
func (h *Auth) GoogleLogin(c echo.Context) error {
	resp, err := h.service.GoogleLoginURL(c.Request().Context(), c.Request().Host)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if c.QueryParam("format") == "json" {
		return HandleSuccess(h.logger, c, authDTO.LoginURLResponse{URL: resp.URL, State: resp.State})
	}
	return c.Redirect(http.StatusTemporaryRedirect, resp.URL)
}

// GoogleCallback handles the OAuth callback from Google
// @Summary      Google sign-in callback
// @Tags         Auth
// @Produce      json
// @Param        code   query     string  false  "Authorization code"
// @Param        state  query     string  true   "CSRF state"
// @Param        error  query     string  false  "Provider error"
// @Success      200    {object}  auth.AuthResponse
// @Failure      400    {object}  common.ErrorResponse
// @Failure      401    {object}  common.ErrorResponse
// @Router       /auth/google/callback [get]
func (h *Auth) GoogleCallback(c echo.Context) error {
	req := auth.GoogleCallbackRequest{
		Code:  c.QueryParam("code"),
		State: c.QueryParam("state"),
		Error: c.QueryParam("error"),
	}
	if req.Error == "" && (req.Code == "" || req.State == "") {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Missing code or state parameter"))
	}

	resp, err := h.service.HandleGoogleCallback(c.Request().Context(), req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	h.setSessionCookies(c, resp)
	return HandleSuccess(h.logger, c, presenter.ToAuthResponse(resp))
}

// RefreshToken rotates the refresh token
// @Summary      Refresh tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      auth.RefreshTokenRequest  false  "Refresh token, defaults to the cookie"
// @Success      200      {object}  auth.AuthResponse
// @Failure      401      {object}  common.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Auth) RefreshToken(c echo.Context) error {
	var req authDTO.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	token := h.refreshTokenFrom(c, req.RefreshToken)
	if token == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Missing refresh token"))
	}

	resp, err := h.service.Refresh(c.Request().Context(), token)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	h.setSessionCookies(c, resp)
	return HandleSuccess(h.logger, c, presenter.ToAuthResponse(resp))
}

// Logout revokes the refresh token and clears the session cookies
// @Summary      Sign out
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      auth.LogoutRequest  false  "Refresh token, defaults to the cookie"
// @Success      200      {object}  common.MessageResponse
// @Router       /auth/logout [post]
func (h *Auth) Logout(c echo.Context) error {
	var req authDTO.LogoutRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	token := h.refreshTokenFrom(c, req.RefreshToken)
	if token == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Missing refresh token"))
	}

	if err := h.service.Logout(c.Request().Context(), token); err != nil {
		return HandleError(h.logger, c, err)
	}
	h.clearSessionCookies(c)
	return HandleSuccess(h.logger, c, map[string]string{"message": "Logged out successfully"})
}

// Me returns the current identity
// @Summary      Current identity
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  auth.IdentityResponse
// @Failure      401  {object}  common.ErrorResponse
// @Router       /auth/me [get]
func (h *Auth) Me(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToIdentityResponse(id))
}

func (h *Auth) refreshTokenFrom(c echo.Context, body string) string {
	if body != "" {
		return body
	}
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func (h *Auth) setSessionCookies(c echo.Context, resp *auth.AuthResponse) {
	h.setCookie(c, middleware.AccessTokenCookie, resp.AccessToken, int(resp.ExpiresIn))
	h.setCookie(c, RefreshTokenCookie, resp.RefreshToken, int(h.refreshExpiry.Seconds()))
}

func (h *Auth) clearSessionCookies(c echo.Context) {
	h.setCookie(c, middleware.AccessTokenCookie, "", -1)
	h.setCookie(c, RefreshTokenCookie, "", -1)
}

func (h *Auth) setCookie(c echo.Context, name, value string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
