package transcription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/pkg/ai"
)

// SummaryFailedText replaces the summary when generation fails
const SummaryFailedText = "Failed to generate summary."

// DefaultTemplate is the summary template used when none is chosen
const DefaultTemplate = ai.TemplateSalesCall

// Summarizer produces a templated summary of a transcript
type Summarizer interface {
	Summarize(ctx context.Context, transcript, template string) (string, error)
}

// Result is a finished transcription
type Result struct {
	Segments []ai.Segment
	Summary  Summary
}

// Summary is the outcome of one summary request. Failed summaries carry the
// fallback text instead of an error so the transcript is still usable.
type Summary struct {
	Template string
	Text     string
	Failed   bool
}

// Service transcribes audio and derives summaries, search results and subtitles
type Service struct {
	transcriber ai.Transcriber
	summarizer  Summarizer
	logger      *zap.Logger
}

// NewService creates the transcription service
func NewService(transcriber ai.Transcriber, summarizer Summarizer, logger *zap.Logger) *Service {
	return &Service{
		transcriber: transcriber,
		summarizer:  summarizer,
		logger:      logger,
	}
}

// Transcribe turns the audio into segments and summarizes them with template
func (s *Service) Transcribe(ctx context.Context, f ai.File, template string) (*Result, error) {
	start := time.Now()
	segments, err := s.transcriber.Transcribe(ctx, f)
	if err != nil {
		return nil, err
	}
	if segments == nil {
		segments = []ai.Segment{}
	}
	s.logger.Info("✅ Transcription completed",
		zap.String("file", f.Name),
		zap.Int("segments", len(segments)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Result{
		Segments: segments,
		Summary:  s.Summary(ctx, segments, template),
	}, nil
}

// Summary summarizes segments with template. A failure yields the fallback text.
func (s *Service) Summary(ctx context.Context, segments []ai.Segment, template string) Summary {
	if template == "" {
		template = DefaultTemplate
	}
	text, err := s.summarizer.Summarize(ctx, FullText(segments), template)
	if err != nil {
		s.logger.Warn("⚠️ Summary generation failed", zap.String("template", template), zap.Error(err))
		return Summary{Template: template, Text: SummaryFailedText, Failed: true}
	}
	return Summary{Template: template, Text: text}
}

// FullText renders segments as "speaker: text" lines
func FullText(segments []ai.Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, seg.Speaker+": "+seg.Text)
	}
	return strings.Join(lines, "\n")
}

// Search keeps segments whose text or speaker contains query, ignoring case.
// A blank query keeps everything.
func Search(segments []ai.Segment, query string) []ai.Segment {
	if strings.TrimSpace(query) == "" {
		return segments
	}
	lower := strings.ToLower(query)
	out := make([]ai.Segment, 0, len(segments))
	for _, seg := range segments {
		if strings.Contains(strings.ToLower(seg.Text), lower) || strings.Contains(strings.ToLower(seg.Speaker), lower) {
			out = append(out, seg)
		}
	}
	return out
}

// ExportSRT renders segments as SubRip blocks. Each cue starts and ends at
// the segment timestamp.
func ExportSRT(segments []ai.Segment) (string, error) {
	if len(segments) == 0 {
		return "", entities.ErrNoSegments
	}
	var b strings.Builder
	for i, seg := range segments {
		start := seg.Timestamp + ",000"
		if len(seg.Timestamp) == 5 {
			start = "00:" + start
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, start, start, seg.Text)
	}
	return b.String(), nil
}

// ExportFilename names a downloaded subtitle file
func ExportFilename(at time.Time) string {
	return fmt.Sprintf("transcript-%s.srt", at.UTC().Format("2006-01-02T15-04-05Z"))
}
