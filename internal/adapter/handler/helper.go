package handler

import (
	"context"
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/errors"
	"github.com/johnquangdev/joyability/internal/adapter/presenter"
	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/joyability/pkg/ai"
	"github.com/johnquangdev/joyability/pkg/jwt"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusOK, data)
}

func handleSuccessStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(err)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	})
}

// handleToolError renders a failed tool run with the message a user should see
func handleToolError(logger *zap.Logger, c echo.Context, tool string, err error) error {
	appErr := toAppError(err)
	if appErr.Code.IsAI() {
		te := presenter.ToolErrorFor(ai.Classify(err), tool)
		appErr = appErr.WithMessage(te.Message).
			WithDetail("title", te.Title).
			WithDetail("type", te.Type).
			WithDetail("retryable", "true").
			WithDetail("tool", tool)
	}
	return HandleError(logger, c, appErr)
}

// toAppError maps domain and client errors onto the HTTP error catalogue
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var domainErr *entities.UnauthorizedDomainError
	var providerErr *entities.ProviderError
	switch {
	case stdErrors.Is(err, entities.ErrEmptyInput):
		return errors.ErrInvalidArgument("Input must not be empty")
	case stdErrors.Is(err, entities.ErrUnknownTool):
		return errors.ErrInvalidArgument("Unknown tool")
	case stdErrors.Is(err, entities.ErrUnknownView):
		return errors.ErrInvalidArgument("Unknown view")
	case stdErrors.Is(err, entities.ErrNoSegments):
		return errors.ErrInvalidArgument("No transcript segments to export")
	case stdErrors.Is(err, entities.ErrConversationNotFound):
		return errors.ErrNotFound("conversation")
	case stdErrors.Is(err, entities.ErrOAuthStateMismatch):
		return errors.ErrOAuthStateMismatch()
	case stdErrors.Is(err, entities.ErrProviderDisabled):
		return errors.ErrProviderDisabled(string(entities.ProviderGoogle))
	case stdErrors.As(err, &domainErr):
		return errors.ErrUnauthorizedDomain(domainErr.Domain)
	case stdErrors.As(err, &providerErr):
		return errors.ErrOAuthFailed(providerErr.Provider, err)
	case stdErrors.Is(err, entities.ErrTokenRevoked), stdErrors.Is(err, entities.ErrInvalidToken):
		return errors.ErrInvalidRefreshToken()
	case stdErrors.Is(err, jwt.ErrExpired):
		return errors.ErrTokenExpired()
	case stdErrors.Is(err, context.Canceled):
		return errors.ErrInternal(err).WithMessage("Request cancelled")
	}

	if ai.Classify(err) != ai.CategoryUnknown || isAIError(err) {
		return errors.FromAI(err)
	}
	return errors.ErrInternal(err)
}

func isAIError(err error) bool {
	var apiErr *ai.APIError
	return stdErrors.As(err, &apiErr) ||
		stdErrors.Is(err, ai.ErrEmptyResponse) ||
		stdErrors.Is(err, ai.ErrNoVideo)
}

// identity returns the caller set by the auth middleware
func identity(c echo.Context) (*entities.Identity, error) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return nil, errors.ErrUnauthenticated()
	}
	return id, nil
}

// bindAndValidate binds the body into req and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument("Validation failed").WithDetail("validation", err.Error())
	}
	return nil
}
