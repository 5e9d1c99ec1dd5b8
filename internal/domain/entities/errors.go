package entities

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Identity errors
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
	ErrProviderDisabled   = errors.New("identity provider not configured")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")

	// Tool errors
	ErrEmptyInput           = errors.New("input is empty")
	ErrUnknownTool          = errors.New("unknown tool")
	ErrUnknownView          = errors.New("unknown view")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNoSegments           = errors.New("no transcript segments")
)

// UnauthorizedDomainError is returned when sign-in starts from a host that is not allow-listed
type UnauthorizedDomainError struct {
	Domain string
}

func (e *UnauthorizedDomainError) Error() string {
	return fmt.Sprintf("unauthorized domain %q", e.Domain)
}

// ProviderError carries the error text the identity provider redirected back with
type ProviderError struct {
	Provider string
	Reason   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s sign-in rejected: %s", e.Provider, e.Reason)
}
