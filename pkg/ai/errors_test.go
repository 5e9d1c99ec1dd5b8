package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"blocked sentinel", fmt.Errorf("generate: %w", ErrBlocked), CategorySafety},
		{"malformed sentinel", fmt.Errorf("%w: eof", ErrMalformedResponse), CategoryMalformed},
		{"empty response", ErrEmptyResponse, CategoryMalformed},
		{"upload init", ErrUploadInit, CategoryUpload},
		{"file failed", ErrFileProcessingFailed, CategoryUpload},
		{"processing timeout", ErrProcessingTimeout, CategoryTimeout},
		{"deadline", context.DeadlineExceeded, CategoryTimeout},
		{"api 429", &APIError{StatusCode: 429, Message: "slow down"}, CategoryQuota},
		{"api resource exhausted", &APIError{StatusCode: 400, Status: "RESOURCE_EXHAUSTED"}, CategoryQuota},
		{"api 403", &APIError{StatusCode: 403, Message: "API key not valid"}, CategoryAuth},
		{"api entity not found", &APIError{StatusCode: 404, Message: "Requested entity was not found."}, CategoryAuth},
		{"api 500", &APIError{StatusCode: 500, Message: "oops"}, CategoryServer},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("refused")}, CategoryNetwork},
		{"quota marker", errors.New("Quota exceeded for project"), CategoryQuota},
		{"resource exhausted marker", errors.New("Resource exhausted"), CategoryQuota},
		{"harmful marker", errors.New("response was harmful"), CategorySafety},
		{"fetch marker", errors.New("failed to fetch"), CategoryNetwork},
		{"internal marker", errors.New("internal failure"), CategoryServer},
		{"unknown", errors.New("something odd"), CategoryUnknown},
		{"nil", nil, CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}
	assert.Equal(t, "gemini api error 429 RESOURCE_EXHAUSTED: quota", err.Error())
}
