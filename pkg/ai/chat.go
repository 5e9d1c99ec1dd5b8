package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/pkg/jobcontext"
)

// Roles used in conversation history
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Chat sends history plus a new user message to the chat model and returns the reply.
// The caller owns history; it is not modified.
func (c *Client) Chat(ctx context.Context, message string, history []Content) (string, error) {
	ctx = jobcontext.JobBegin(ctx, "chat")

	contents := make([]Content, 0, len(history)+1)
	contents = append(contents, history...)
	contents = append(contents, TextContent(RoleUser, message))

	reply, err := Do(ctx, c.retryPolicy(ctx), func(ctx context.Context) (string, error) {
		resp, err := c.generate(ctx, c.cfg.ModelChat, generateRequest{Contents: contents})
		if err != nil {
			return "", err
		}
		return resp.text(), nil
	})
	if err != nil {
		c.logger.Error("❌ Chat request failed",
			append(jobcontext.Fields(ctx), zap.Int("history_length", len(history)), zap.Error(err))...)
		return "", err
	}
	return reply, nil
}
