package ai

import (
	"context"
	"fmt"
	"io"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/pkg/jobcontext"
)

// Video is a generated clip
type Video struct {
	MimeType string
	Data     []byte
	URI      string
}

type videoRequest struct {
	Instances  []videoInstance `json:"instances"`
	Parameters videoParameters `json:"parameters"`
}

type videoInstance struct {
	Prompt string `json:"prompt"`
}

type videoParameters struct {
	AspectRatio    string `json:"aspectRatio"`
	Resolution     string `json:"resolution"`
	NumberOfVideos int    `json:"numberOfVideos"`
}

type operation struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

func (o *operation) videoURI() string {
	if o.Response == nil || len(o.Response.GenerateVideoResponse.GeneratedSamples) == 0 {
		return ""
	}
	return o.Response.GenerateVideoResponse.GeneratedSamples[0].Video.URI
}

// GenerateVideo starts a 16:9 720p generation for prompt, waits for the
// long-running operation and downloads the result.
func (c *Client) GenerateVideo(ctx context.Context, prompt string) (*Video, error) {
	ctx = jobcontext.JobBegin(ctx, "video")

	var op operation
	err := c.doJSON(ctx, "POST", c.modelURL(c.cfg.ModelVideo, "predictLongRunning"), videoRequest{
		Instances:  []videoInstance{{Prompt: prompt}},
		Parameters: videoParameters{AspectRatio: "16:9", Resolution: "720p", NumberOfVideos: 1},
	}, &op)
	if err != nil {
		c.logger.Error("❌ Failed to start video generation", append(jobcontext.Fields(ctx), zap.Error(err))...)
		return nil, err
	}
	if op.Name == "" {
		return nil, fmt.Errorf("%w: operation has no name", ErrMalformedResponse)
	}

	c.logger.Info("🎬 Video generation started",
		append(jobcontext.Fields(ctx), zap.String("operation", op.Name))...)

	done, err := c.waitForOperation(ctx, op)
	if err != nil {
		c.logger.Error("❌ Video generation failed",
			append(jobcontext.Fields(ctx), zap.String("operation", op.Name), zap.Error(err))...)
		return nil, err
	}

	uri := done.videoURI()
	if uri == "" {
		return nil, ErrNoVideo
	}

	video, err := c.download(ctx, uri)
	if err != nil {
		return nil, err
	}
	c.logger.Info("✅ Video ready",
		append(jobcontext.Fields(ctx), zap.Int("bytes", len(video.Data)))...)
	return video, nil
}

// waitForOperation polls op until done, bounded by VideoTimeout
func (c *Client) waitForOperation(ctx context.Context, op operation) (*operation, error) {
	if op.Done {
		return &op, operationError(&op)
	}

	timeout := c.cfg.VideoTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	current := op
	check := func(ctx context.Context) (bool, error) {
		var next operation
		if err := c.doJSON(ctx, "GET", fmt.Sprintf("%s/v1beta/%s", c.baseURL, op.Name), nil, &next); err != nil {
			if IsTransient(err) || ctx.Err() != nil {
				return false, err
			}
			return false, backoff.Permanent(err)
		}
		if !next.Done {
			return false, nil
		}
		current = next
		if err := operationError(&next); err != nil {
			return false, backoff.Permanent(err)
		}
		return true, nil
	}
	onErr := func(err error) {
		c.logger.Warn("⚠️ Error polling video operation",
			append(jobcontext.Fields(ctx), zap.String("operation", op.Name), zap.Error(err))...)
	}

	attempts := 1
	if c.cfg.VideoPollInterval > 0 {
		attempts = int(timeout/c.cfg.VideoPollInterval) + 1
	}
	if err := poll(pollCtx, c.cfg.VideoPollInterval, attempts, check, onErr); err != nil {
		return nil, err
	}
	return &current, nil
}

func operationError(op *operation) error {
	if op.Error == nil {
		return nil
	}
	return &APIError{StatusCode: op.Error.Code, Status: op.Error.Status, Message: op.Error.Message}
}

func (c *Client) download(ctx context.Context, uri string) (*Video, error) {
	req, err := c.newRequest(ctx, "GET", uri, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download video: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read video: %w", err)
	}
	mt := resp.Header.Get("Content-Type")
	if mt == "" || mt == "application/octet-stream" {
		mt = "video/mp4"
	}
	return &Video{MimeType: mt, Data: data, URI: uri}, nil
}
