package errors

// ErrorCode is the machine-readable code carried in error responses
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_PERMISSION_DENIED ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1005

	ErrorCode_AUTH_INVALID_TOKEN         ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED         ErrorCode = 2001
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN ErrorCode = 2002
	ErrorCode_AUTH_OAUTH_FAILED          ErrorCode = 2003
	ErrorCode_AUTH_UNAUTHORIZED_DOMAIN   ErrorCode = 2004
	ErrorCode_AUTH_STATE_MISMATCH        ErrorCode = 2005
	ErrorCode_AUTH_PROVIDER_DISABLED     ErrorCode = 2006

	ErrorCode_AI_QUOTA_EXCEEDED      ErrorCode = 3000
	ErrorCode_AI_CONTENT_BLOCKED     ErrorCode = 3001
	ErrorCode_AI_NETWORK             ErrorCode = 3002
	ErrorCode_AI_MALFORMED_RESPONSE  ErrorCode = 3003
	ErrorCode_AI_UPLOAD_FAILED       ErrorCode = 3004
	ErrorCode_AI_PROCESSING_TIMEOUT  ErrorCode = 3005
	ErrorCode_AI_SERVICE_UNAVAILABLE ErrorCode = 3006
	ErrorCode_AI_AUTH_FAILED         ErrorCode = 3007
	ErrorCode_AI_FAILED              ErrorCode = 3008

	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 4000
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN: "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_AUTH_OAUTH_FAILED:          "AUTH_OAUTH_FAILED",
	ErrorCode_AUTH_UNAUTHORIZED_DOMAIN:   "AUTH_UNAUTHORIZED_DOMAIN",
	ErrorCode_AUTH_STATE_MISMATCH:        "AUTH_STATE_MISMATCH",
	ErrorCode_AUTH_PROVIDER_DISABLED:     "AUTH_PROVIDER_DISABLED",
	ErrorCode_AI_QUOTA_EXCEEDED:          "AI_QUOTA_EXCEEDED",
	ErrorCode_AI_CONTENT_BLOCKED:         "AI_CONTENT_BLOCKED",
	ErrorCode_AI_NETWORK:                 "AI_NETWORK",
	ErrorCode_AI_MALFORMED_RESPONSE:      "AI_MALFORMED_RESPONSE",
	ErrorCode_AI_UPLOAD_FAILED:           "AI_UPLOAD_FAILED",
	ErrorCode_AI_PROCESSING_TIMEOUT:      "AI_PROCESSING_TIMEOUT",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_AUTH_FAILED:             "AI_AUTH_FAILED",
	ErrorCode_AI_FAILED:                  "AI_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsAI reports whether c belongs to the AI failure range
func (c ErrorCode) IsAI() bool {
	return c >= ErrorCode_AI_QUOTA_EXCEEDED && c <= ErrorCode_AI_FAILED
}
