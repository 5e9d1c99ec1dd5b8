package presenter

import "github.com/johnquangdev/joyability/pkg/ai"

// Tool names used to pick a failure message
const (
	ToolFixer         = "fixer"
	ToolTranslate     = "translate"
	ToolGrammar       = "grammar"
	ToolNikud         = "nikud"
	ToolTranscription = "transcription"
	ToolSummary       = "summary"
	ToolChat          = "chat"
	ToolImage         = "image"
	ToolVideo         = "video"
)

// Error types shown to the user
const (
	ErrorTypeNetwork = "network"
	ErrorTypeSafety  = "safety"
	ErrorTypeQuota   = "quota"
	ErrorTypeGeneric = "generic"
)

const (
	defaultFailureTitle   = "Processing Failed"
	defaultFailureMessage = "An unexpected error occurred. Please try again."
)

// ToolError is what a client shows when a tool fails
type ToolError struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Retryable bool   `json:"retryable"`
}

var toolFallbacks = map[string]string{
	ToolTranslate:     "We couldn't translate this text. Ensure it's not too long and try again.",
	ToolGrammar:       "Grammar correction failed. The AI service might be temporarily unavailable.",
	ToolNikud:         "Unable to add Nikud. Try processing a shorter segment of text.",
	ToolFixer:         "Could not process layout correction.",
	ToolTranscription: "Transcription failed. Please try again.",
	ToolImage:         "Error processing image.",
	ToolVideo:         "Failed to generate video. Please try again.",
}

// ToolErrorFor describes a failure of tool in category
func ToolErrorFor(category ai.Category, tool string) ToolError {
	e := ToolError{Type: ErrorTypeGeneric, Retryable: true}

	switch category {
	case ai.CategoryQuota:
		e.Title = "Service Busy"
		e.Message = "The AI service is currently experiencing high traffic. Please wait a moment and try again."
		e.Type = ErrorTypeQuota
		return e
	case ai.CategorySafety:
		e.Title = "Content Blocked"
		e.Message = "The text triggered our safety filters. Please try modifying the content."
		e.Type = ErrorTypeSafety
		return e
	case ai.CategoryNetwork:
		e.Title = "Network Error"
		e.Message = "Please check your internet connection and try again."
		e.Type = ErrorTypeNetwork
		return e
	case ai.CategoryServer:
		e.Title = "Server Error"
		e.Message = "The AI provider encountered an internal error. Please try again later."
		return e
	case ai.CategoryAuth:
		if tool == ToolVideo {
			e.Title = defaultFailureTitle
			e.Message = "Authentication error. Please select your paid API Key again."
			return e
		}
	}

	e.Title = defaultFailureTitle
	e.Message = defaultFailureMessage
	if msg, ok := toolFallbacks[tool]; ok {
		e.Message = msg
	}
	return e
}

// NoImageHint is shown when the image model answered without an image
const NoImageHint = "Could not generate image. Try a different prompt."
