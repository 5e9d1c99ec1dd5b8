package errors

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/johnquangdev/joyability/pkg/ai"
)

// AppError is the error type rendered at the HTTP boundary
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

func (e AppError) Unwrap() error { return e.Raw }

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// WithMessage replaces the user-facing message
func (e AppError) WithMessage(message string) AppError {
	e.Message = message
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

func ErrInvalidRefreshToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_REFRESH_TOKEN,
		Message:  "Invalid refresh token",
	}
}

func ErrOAuthFailed(provider string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_OAUTH_FAILED,
		Message:  fmt.Sprintf("OAuth authentication failed with %s", provider),
	}.WithDetail("provider", provider)
}

func ErrOAuthStateMismatch() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_AUTH_STATE_MISMATCH,
		Message:  "Invalid or expired sign-in state",
	}
}

func ErrProviderDisabled(provider string) AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_AUTH_PROVIDER_DISABLED,
		Message:  fmt.Sprintf("Sign-in with %s is not configured", provider),
	}.WithDetail("provider", provider)
}

// ErrUnauthorizedDomain carries the rejected host so it can be copied into the provider console
func ErrUnauthorizedDomain(domain string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_AUTH_UNAUTHORIZED_DOMAIN,
		Message:  fmt.Sprintf("Domain %s is not authorized for sign-in. Add it to the authorized domains list.", domain),
	}.WithDetail("domain", domain)
}

// AI Errors
func ErrAIQuotaExceeded(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusTooManyRequests,
		Code:     ErrorCode_AI_QUOTA_EXCEEDED,
		Message:  "AI service quota exceeded",
	}
}

func ErrAIContentBlocked(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_AI_CONTENT_BLOCKED,
		Message:  "Content blocked by safety filters",
	}
}

func ErrAINetwork(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_AI_NETWORK,
		Message:  "Could not reach the AI service",
	}
}

func ErrAIMalformedResponse(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_AI_MALFORMED_RESPONSE,
		Message:  "AI service returned an unreadable response",
	}
}

func ErrAIUploadFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_AI_UPLOAD_FAILED,
		Message:  "Uploading the file to the AI service failed",
	}
}

func ErrAIProcessingTimeout(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusGatewayTimeout,
		Code:     ErrorCode_AI_PROCESSING_TIMEOUT,
		Message:  "AI processing timed out",
	}
}

func ErrAIServiceUnavailable(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_AI_SERVICE_UNAVAILABLE,
		Message:  "AI service temporarily unavailable",
	}
}

func ErrAIAuthFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_AI_AUTH_FAILED,
		Message:  "AI service rejected the API key",
	}
}

func ErrAIFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_FAILED,
		Message:  "AI request failed",
	}
}

// FromAI maps an AI client failure to its AppError
func FromAI(err error) AppError {
	category := ai.Classify(err)
	var appErr AppError
	switch category {
	case ai.CategoryQuota:
		appErr = ErrAIQuotaExceeded(err)
	case ai.CategorySafety:
		appErr = ErrAIContentBlocked(err)
	case ai.CategoryNetwork:
		appErr = ErrAINetwork(err)
	case ai.CategoryMalformed:
		appErr = ErrAIMalformedResponse(err)
	case ai.CategoryUpload:
		appErr = ErrAIUploadFailed(err)
	case ai.CategoryTimeout:
		appErr = ErrAIProcessingTimeout(err)
	case ai.CategoryServer:
		appErr = ErrAIServiceUnavailable(err)
	case ai.CategoryAuth:
		appErr = ErrAIAuthFailed(err)
	default:
		appErr = ErrAIFailed(err)
	}
	return appErr.WithDetail("category", string(category))
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	}
}

// ErrPayloadTooLarge reports an upload above the configured limit
func ErrPayloadTooLarge(limitMB int64) AppError {
	return AppError{
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Upload is too large",
	}.WithDetail("limit_mb", strconv.FormatInt(limitMB, 10))
}
