package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/pkg/jobcontext"
)

// File is an audio upload awaiting transcription. Size may be zero when unknown.
type File struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// Segment is one speaker-labelled slice of a transcript
type Segment struct {
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

// Transcriber turns audio into speaker-labelled segments
type Transcriber interface {
	Transcribe(ctx context.Context, f File) ([]Segment, error)
}

var _ Transcriber = (*Client)(nil)

const transcribePrompt = `Transcribe this audio file. Identify speakers (e.g., Speaker 1, Speaker 2).
Return the result as a JSON array where each item has:
- 'timestamp' (string, format MM:SS)
- 'speaker' (string)
- 'text' (string)

If the audio is in Hebrew, transcribe in Hebrew. If English, in English.`

var transcriptSchema = &Schema{
	Type: "ARRAY",
	Items: &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"timestamp": {Type: "STRING"},
			"speaker":   {Type: "STRING"},
			"text":      {Type: "STRING"},
		},
		Required: []string{"timestamp", "speaker", "text"},
	},
}

// Transcribe implements Transcriber
func (c *Client) Transcribe(ctx context.Context, f File) ([]Segment, error) {
	return c.TranscribeStructured(ctx, f)
}

// TranscribeStructured transcribes f into segments. Files below the inline
// limit are embedded in the request; larger ones go through the files API first.
func (c *Client) TranscribeStructured(ctx context.Context, f File) ([]Segment, error) {
	ctx = jobcontext.JobBegin(ctx, "transcribe")
	mimeType := AudioMimeType(f.Name, f.MimeType)

	c.logger.Info("🎙️ Starting structured transcription",
		append(jobcontext.Fields(ctx),
			zap.String("file_name", f.Name),
			zap.String("mime_type", mimeType),
			zap.Int64("size", f.Size),
		)...)

	media, err := c.mediaPart(ctx, f, mimeType)
	if err != nil {
		c.logger.Error("❌ Transcription upload failed", append(jobcontext.Fields(ctx), zap.Error(err))...)
		return nil, err
	}

	req := generateRequest{
		Contents: []Content{{Role: RoleUser, Parts: []Part{media, {Text: transcribePrompt}}}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   transcriptSchema,
		},
	}

	segments, err := Do(ctx, c.retryPolicy(ctx), func(ctx context.Context) ([]Segment, error) {
		resp, err := c.generate(ctx, c.cfg.ModelFlash, req)
		if err != nil {
			return nil, err
		}
		return parseSegments(resp.text())
	})
	if err != nil {
		c.logger.Error("❌ Transcription failed", append(jobcontext.Fields(ctx), zap.Error(err))...)
		return nil, err
	}

	c.logger.Info("✅ Transcription completed",
		append(jobcontext.Fields(ctx), zap.Int("segment_count", len(segments)))...)
	return segments, nil
}

// mediaPart embeds small files inline and uploads the rest
func (c *Client) mediaPart(ctx context.Context, f File, mimeType string) (Part, error) {
	content, size := f.Content, f.Size
	if size <= 0 {
		data, err := io.ReadAll(content)
		if err != nil {
			return Part{}, fmt.Errorf("failed to read audio: %w", err)
		}
		content, size = bytes.NewReader(data), int64(len(data))
	}

	if size < c.cfg.InlineLimit {
		data, err := io.ReadAll(content)
		if err != nil {
			return Part{}, fmt.Errorf("failed to read audio: %w", err)
		}
		return Part{InlineData: &Blob{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}}, nil
	}

	uploaded, err := c.UploadFile(ctx, f.Name, mimeType, size, content)
	if err != nil {
		return Part{}, err
	}
	ref := uploaded.Name
	if ref == "" {
		ref = uploaded.URI
	}
	active, err := c.WaitForFileActive(ctx, ref)
	if err != nil {
		return Part{}, err
	}
	uri := active.URI
	if uri == "" {
		uri = uploaded.URI
	}
	return Part{FileData: &FileData{MimeType: mimeType, FileURI: uri}}, nil
}

func parseSegments(text string) ([]Segment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}
	var segments []Segment
	if err := json.Unmarshal([]byte(text), &segments); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if segments == nil {
		return nil, ErrEmptyResponse
	}
	for i, seg := range segments {
		if strings.TrimSpace(seg.Timestamp) == "" || strings.TrimSpace(seg.Speaker) == "" || strings.TrimSpace(seg.Text) == "" {
			return nil, fmt.Errorf("%w: segment %d is missing a required field", ErrMalformedResponse, i)
		}
	}
	return segments, nil
}
