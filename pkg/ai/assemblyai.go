package ai

import (
	"context"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/pkg/config"
	"github.com/johnquangdev/joyability/pkg/jobcontext"
)

// AssemblyAITranscriber transcribes through AssemblyAI with speaker labels
type AssemblyAITranscriber struct {
	client *aai.Client
	logger *zap.Logger
}

var _ Transcriber = (*AssemblyAITranscriber)(nil)

// NewAssemblyAITranscriber creates a transcriber from config. Extra options are
// applied after the API key.
func NewAssemblyAITranscriber(cfg config.AssemblyAIConfig, logger *zap.Logger, opts ...aai.ClientOption) *AssemblyAITranscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]aai.ClientOption{aai.WithAPIKey(cfg.APIKey)}, opts...)
	return &AssemblyAITranscriber{
		client: aai.NewClientWithOptions(opts...),
		logger: logger,
	}
}

// Transcribe uploads the audio, waits for the transcript and maps utterances to segments
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, f File) ([]Segment, error) {
	ctx = jobcontext.JobBegin(ctx, "transcribe_assemblyai")

	t.logger.Info("🎙️ Starting AssemblyAI transcription",
		append(jobcontext.Fields(ctx), zap.String("file_name", f.Name), zap.Int64("size", f.Size))...)

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels:     aai.Bool(true),
		LanguageDetection: aai.Bool(true),
	}
	transcript, err := t.client.Transcripts.TranscribeFromReader(ctx, f.Content, params)
	if err != nil {
		t.logger.Error("❌ AssemblyAI transcription failed", append(jobcontext.Fields(ctx), zap.Error(err))...)
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai reported error: %s", msg)
	}

	segments := utteranceSegments(transcript)
	if len(segments) == 0 {
		return nil, ErrEmptyResponse
	}

	t.logger.Info("✅ AssemblyAI transcription completed",
		append(jobcontext.Fields(ctx), zap.Int("segment_count", len(segments)))...)
	return segments, nil
}

// utteranceSegments converts speaker utterances; transcripts without
// utterances collapse into a single segment.
func utteranceSegments(tr aai.Transcript) []Segment {
	if len(tr.Utterances) == 0 {
		if tr.Text == nil || strings.TrimSpace(*tr.Text) == "" {
			return nil
		}
		return []Segment{{Timestamp: FormatTimestamp(0), Speaker: "Speaker A", Text: *tr.Text}}
	}

	segments := make([]Segment, 0, len(tr.Utterances))
	for _, utt := range tr.Utterances {
		var seg Segment
		if utt.Start != nil {
			seg.Timestamp = FormatTimestamp(*utt.Start)
		} else {
			seg.Timestamp = FormatTimestamp(0)
		}
		if utt.Speaker != nil {
			seg.Speaker = "Speaker " + *utt.Speaker
		}
		if utt.Text != nil {
			seg.Text = *utt.Text
		}
		segments = append(segments, seg)
	}
	return segments
}

// FormatTimestamp renders milliseconds as MM:SS. Minutes are not wrapped into hours.
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
