package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/joyability/pkg/ai"
)

func TestToolErrorFor(t *testing.T) {
	tests := []struct {
		name     string
		category ai.Category
		tool     string
		want     ToolError
	}{
		{
			name:     "quota",
			category: ai.CategoryQuota,
			tool:     ToolTranslate,
			want:     ToolError{Title: "Service Busy", Message: "The AI service is currently experiencing high traffic. Please wait a moment and try again.", Type: ErrorTypeQuota, Retryable: true},
		},
		{
			name:     "safety",
			category: ai.CategorySafety,
			tool:     ToolGrammar,
			want:     ToolError{Title: "Content Blocked", Message: "The text triggered our safety filters. Please try modifying the content.", Type: ErrorTypeSafety, Retryable: true},
		},
		{
			name:     "network",
			category: ai.CategoryNetwork,
			tool:     ToolNikud,
			want:     ToolError{Title: "Network Error", Message: "Please check your internet connection and try again.", Type: ErrorTypeNetwork, Retryable: true},
		},
		{
			name:     "server",
			category: ai.CategoryServer,
			tool:     ToolNikud,
			want:     ToolError{Title: "Server Error", Message: "The AI provider encountered an internal error. Please try again later.", Type: ErrorTypeGeneric, Retryable: true},
		},
		{
			name:     "tool fallback",
			category: ai.CategoryMalformed,
			tool:     ToolNikud,
			want:     ToolError{Title: "Processing Failed", Message: "Unable to add Nikud. Try processing a shorter segment of text.", Type: ErrorTypeGeneric, Retryable: true},
		},
		{
			name:     "video auth",
			category: ai.CategoryAuth,
			tool:     ToolVideo,
			want:     ToolError{Title: "Processing Failed", Message: "Authentication error. Please select your paid API Key again.", Type: ErrorTypeGeneric, Retryable: true},
		},
		{
			name:     "default",
			category: ai.CategoryUnknown,
			tool:     ToolChat,
			want:     ToolError{Title: "Processing Failed", Message: "An unexpected error occurred. Please try again.", Type: ErrorTypeGeneric, Retryable: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToolErrorFor(tt.category, tt.tool))
		})
	}
}
