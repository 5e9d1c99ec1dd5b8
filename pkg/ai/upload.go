package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/pkg/jobcontext"
)

// FileState is the processing state of an uploaded file
type FileState string

const (
	FileStateUnspecified FileState = "STATE_UNSPECIFIED"
	FileStateProcessing  FileState = "PROCESSING"
	FileStateActive      FileState = "ACTIVE"
	FileStateFailed      FileState = "FAILED"
)

// UploadedFile is a file stored by the files API
type UploadedFile struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName,omitempty"`
	URI         string    `json:"uri"`
	MimeType    string    `json:"mimeType"`
	State       FileState `json:"state"`
}

// UploadFile stores size bytes from r through the resumable upload protocol:
// a start request that hands out an upload URL, then a single upload+finalize.
func (c *Client) UploadFile(ctx context.Context, displayName, mimeType string, size int64, r io.Reader) (*UploadedFile, error) {
	ctx = jobcontext.JobBegin(ctx, "upload")

	meta, err := json.Marshal(map[string]any{"file": map[string]string{"display_name": displayName}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode upload metadata: %w", err)
	}

	startReq, err := c.newRequest(ctx, "POST", c.uploadBaseURL+"/upload/v1beta/files", bytes.NewReader(meta))
	if err != nil {
		return nil, err
	}
	startReq.Header.Set("X-Goog-Upload-Protocol", "resumable")
	startReq.Header.Set("X-Goog-Upload-Command", "start")
	startReq.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.FormatInt(size, 10))
	startReq.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)
	startReq.Header.Set("Content-Type", "application/json")

	startResp, err := c.do(startReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadInit, err)
	}
	io.Copy(io.Discard, startResp.Body)
	startResp.Body.Close()

	uploadURL := startResp.Header.Get("X-Goog-Upload-URL")
	if uploadURL == "" {
		return nil, ErrUploadInit
	}

	c.logger.Info("📤 Uploading file",
		append(jobcontext.Fields(ctx),
			zap.String("display_name", displayName),
			zap.String("mime_type", mimeType),
			zap.Int64("size", size),
		)...)

	uploadReq, err := c.newRequest(ctx, "POST", uploadURL, r)
	if err != nil {
		return nil, err
	}
	uploadReq.ContentLength = size
	uploadReq.Header.Set("X-Goog-Upload-Offset", "0")
	uploadReq.Header.Set("X-Goog-Upload-Command", "upload, finalize")

	uploadResp, err := c.do(uploadReq)
	if err != nil {
		return nil, fmt.Errorf("file upload failed: %w", err)
	}
	defer uploadResp.Body.Close()

	var body struct {
		File UploadedFile `json:"file"`
	}
	if err := json.NewDecoder(uploadResp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if body.File.URI == "" && body.File.Name == "" {
		return nil, fmt.Errorf("%w: upload response carried no file", ErrUploadInit)
	}

	c.logger.Info("✅ File uploaded",
		append(jobcontext.Fields(ctx),
			zap.String("file_name", body.File.Name),
			zap.String("state", string(body.File.State)),
		)...)
	return &body.File, nil
}

// GetFile fetches the current metadata of an uploaded file. name may be the
// resource name ("files/abc") or the file URI.
func (c *Client) GetFile(ctx context.Context, name string) (*UploadedFile, error) {
	id := name[strings.LastIndex(name, "/")+1:]
	var f UploadedFile
	if err := c.doJSON(ctx, "GET", fmt.Sprintf("%s/v1beta/files/%s", c.baseURL, id), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// WaitForFileActive polls the file until it is ACTIVE. FAILED ends polling with
// ErrFileProcessingFailed; running out of attempts gives ErrProcessingTimeout.
// Poll errors are logged and do not stop polling.
func (c *Client) WaitForFileActive(ctx context.Context, name string) (*UploadedFile, error) {
	var active *UploadedFile
	check := func(ctx context.Context) (bool, error) {
		f, err := c.GetFile(ctx, name)
		if err != nil {
			return false, err
		}
		switch f.State {
		case FileStateActive:
			active = f
			return true, nil
		case FileStateFailed:
			return false, backoff.Permanent(ErrFileProcessingFailed)
		}
		return false, nil
	}
	onErr := func(err error) {
		c.logger.Warn("⚠️ Error polling file status",
			append(jobcontext.Fields(ctx), zap.String("file_name", name), zap.Error(err))...)
	}

	if err := poll(ctx, c.cfg.FilePollInterval, c.cfg.FilePollAttempts, check, onErr); err != nil {
		return nil, err
	}

	// Freshly activated files are occasionally rejected for a few seconds.
	if err := sleepCtx(ctx, c.cfg.FileSettleDelay); err != nil {
		return nil, err
	}
	return active, nil
}
