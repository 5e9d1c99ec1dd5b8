package ai

import (
	"context"
	"strings"
)

// Content is one turn of a conversation
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a piece of a turn; exactly one field is set
type Part struct {
	Text       string    `json:"text,omitempty"`
	InlineData *Blob     `json:"inlineData,omitempty"`
	FileData   *FileData `json:"fileData,omitempty"`
}

// Blob is base64 encoded media sent or received inline
type Blob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// FileData references a file uploaded through the files API
type FileData struct {
	MimeType string `json:"mimeType"`
	FileURI  string `json:"fileUri"`
}

// Schema is the subset of OpenAPI schema used for structured output
type Schema struct {
	Type       string             `json:"type"`
	Items      *Schema            `json:"items,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// GenerationConfig tunes a generateContent call
type GenerationConfig struct {
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema  `json:"responseSchema,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type generateResponse struct {
	Candidates     []candidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// TextContent builds a single user turn holding text
func TextContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// text concatenates the text parts of the first candidate
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// blocked reports whether safety filters stopped the prompt or the answer
func (r *generateResponse) blocked() bool {
	if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
		return true
	}
	if len(r.Candidates) == 0 {
		return false
	}
	c := r.Candidates[0]
	if len(c.Content.Parts) > 0 {
		return false
	}
	switch c.FinishReason {
	case "SAFETY", "BLOCKLIST", "PROHIBITED_CONTENT", "SPII", "IMAGE_SAFETY":
		return true
	}
	return false
}

// generate runs one generateContent call without retry
func (c *Client) generate(ctx context.Context, model string, req generateRequest) (*generateResponse, error) {
	var resp generateResponse
	if err := c.doJSON(ctx, "POST", c.modelURL(model, "generateContent"), req, &resp); err != nil {
		return nil, err
	}
	if resp.blocked() {
		return nil, ErrBlocked
	}
	return &resp, nil
}

// generateText runs a single-prompt text generation inside the retry policy
func (c *Client) generateText(ctx context.Context, model, prompt string) (string, error) {
	return Do(ctx, c.retryPolicy(ctx), func(ctx context.Context) (string, error) {
		resp, err := c.generate(ctx, model, generateRequest{
			Contents: []Content{TextContent("user", prompt)},
		})
		if err != nil {
			return "", err
		}
		return resp.text(), nil
	})
}
