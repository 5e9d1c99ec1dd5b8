package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	// ErrEmptyResponse is returned when the model produced no usable text.
	ErrEmptyResponse = errors.New("no response text from model")
	// ErrMalformedResponse is returned when structured output cannot be parsed.
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrUploadInit is returned when the resumable upload did not hand out an upload URL.
	ErrUploadInit = errors.New("failed to initiate resumable upload")
	// ErrFileProcessingFailed is returned when an uploaded file ends in state FAILED.
	ErrFileProcessingFailed = errors.New("file processing failed")
	// ErrProcessingTimeout is returned when a polling loop runs out of attempts or time.
	ErrProcessingTimeout = errors.New("timed out waiting for processing")
	// ErrNoVideo is returned when a finished video operation carries no video.
	ErrNoVideo = errors.New("no video returned")
	// ErrBlocked is returned when the prompt or response was stopped by safety filters.
	ErrBlocked = errors.New("content blocked by safety filters")
)

// APIError is a non-2xx answer from the generative AI REST API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini api error %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini api error %d: %s", e.StatusCode, e.Message)
}

// Category groups failures the way they are reported to users.
type Category string

const (
	CategoryNetwork   Category = "network"
	CategoryAuth      Category = "auth"
	CategoryQuota     Category = "quota"
	CategorySafety    Category = "safety"
	CategoryMalformed Category = "malformed"
	CategoryUpload    Category = "upload"
	CategoryTimeout   Category = "timeout"
	CategoryServer    Category = "server"
	CategoryUnknown   Category = "unknown"
)

// Classify maps an error to a Category. Typed errors are checked first, then
// well-known message markers.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	switch {
	case errors.Is(err, ErrBlocked):
		return CategorySafety
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrNoVideo):
		return CategoryMalformed
	case errors.Is(err, ErrUploadInit), errors.Is(err, ErrFileProcessingFailed):
		return CategoryUpload
	case errors.Is(err, ErrProcessingTimeout), errors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429 || apiErr.Status == "RESOURCE_EXHAUSTED":
			return CategoryQuota
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return CategoryAuth
		case apiErr.StatusCode == 404 && strings.Contains(apiErr.Message, "Requested entity was not found"):
			return CategoryAuth
		case apiErr.StatusCode >= 500:
			return CategoryServer
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return CategoryNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "429", "quota", "resource exhausted", "resource_exhausted"):
		return CategoryQuota
	case containsAny(msg, "safety", "blocked", "harmful"):
		return CategorySafety
	case containsAny(msg, "network", "fetch", "connection"):
		return CategoryNetwork
	case containsAny(msg, "500", "internal"):
		return CategoryServer
	case containsAny(msg, "api key", "permission denied", "unauthenticated", "requested entity was not found"):
		return CategoryAuth
	}
	return CategoryUnknown
}

func containsAny(s string, markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
