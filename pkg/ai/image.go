package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/pkg/jobcontext"
)

// Image is generated image bytes
type Image struct {
	MimeType string
	Data     []byte
}

// DataURL renders the image as a data: URL
func (i *Image) DataURL() string {
	mt := i.MimeType
	if mt == "" {
		mt = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mt, base64.StdEncoding.EncodeToString(i.Data))
}

// EditImage asks the image model to modify data following prompt. A nil image
// with a nil error means the model answered without any image part.
func (c *Client) EditImage(ctx context.Context, data []byte, mimeType, prompt string) (*Image, error) {
	ctx = jobcontext.JobBegin(ctx, "image_edit")

	req := generateRequest{
		Contents: []Content{{
			Role: RoleUser,
			Parts: []Part{
				{InlineData: &Blob{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}},
				{Text: prompt},
			},
		}},
	}

	img, err := Do(ctx, c.retryPolicy(ctx), func(ctx context.Context) (*Image, error) {
		resp, err := c.generate(ctx, c.cfg.ModelImage, req)
		if err != nil {
			return nil, err
		}
		return firstImage(resp)
	})
	if err != nil {
		c.logger.Error("❌ Image edit failed", append(jobcontext.Fields(ctx), zap.Error(err))...)
		return nil, err
	}
	if img == nil {
		c.logger.Info("ℹ️ Image model returned no image", jobcontext.Fields(ctx)...)
	}
	return img, nil
}

func firstImage(resp *generateResponse) (*Image, error) {
	if len(resp.Candidates) == 0 {
		return nil, nil
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: image data: %v", ErrMalformedResponse, err)
		}
		mt := p.InlineData.MimeType
		if mt == "" {
			mt = "image/png"
		}
		return &Image{MimeType: mt, Data: raw}, nil
	}
	return nil, nil
}
