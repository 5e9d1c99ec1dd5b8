package transcription

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/pkg/ai"
)

type fakeTranscriber struct {
	segments []ai.Segment
	err      error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, file ai.File) ([]ai.Segment, error) {
	return f.segments, f.err
}

type fakeSummarizer struct {
	err        error
	transcript string
	template   string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript, template string) (string, error) {
	f.transcript, f.template = transcript, template
	if f.err != nil {
		return "", f.err
	}
	return "summary of " + template, nil
}

var sample = []ai.Segment{
	{Timestamp: "00:01", Speaker: "Speaker 1", Text: "Hello team"},
	{Timestamp: "00:07", Speaker: "Speaker 2", Text: "Quarterly numbers are up"},
	{Timestamp: "01:02:03", Speaker: "Speaker 1", Text: "Great news"},
}

func TestTranscribeSummarizesWithTemplate(t *testing.T) {
	sum := &fakeSummarizer{}
	s := NewService(&fakeTranscriber{segments: sample}, sum, zap.NewNop())

	res, err := s.Transcribe(context.Background(), ai.File{Name: "a.mp3"}, "")
	require.NoError(t, err)
	assert.Equal(t, sample, res.Segments)
	assert.Equal(t, DefaultTemplate, sum.template)
	assert.Equal(t, "Speaker 1: Hello team\nSpeaker 2: Quarterly numbers are up\nSpeaker 1: Great news", sum.transcript)
	assert.Equal(t, Summary{Template: DefaultTemplate, Text: "summary of Sales Call Template"}, res.Summary)
}

func TestTranscribeKeepsSegmentsWhenSummaryFails(t *testing.T) {
	s := NewService(&fakeTranscriber{segments: sample}, &fakeSummarizer{err: errors.New("503")}, zap.NewNop())

	res, err := s.Transcribe(context.Background(), ai.File{Name: "a.mp3"}, ai.TemplateInterview)
	require.NoError(t, err)
	assert.Len(t, res.Segments, 3)
	assert.True(t, res.Summary.Failed)
	assert.Equal(t, SummaryFailedText, res.Summary.Text)
}

func TestTranscribeFailure(t *testing.T) {
	s := NewService(&fakeTranscriber{err: ai.ErrMalformedResponse}, &fakeSummarizer{}, zap.NewNop())
	_, err := s.Transcribe(context.Background(), ai.File{}, "")
	assert.ErrorIs(t, err, ai.ErrMalformedResponse)
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"   ", 3},
		{"speaker 2", 1},
		{"GREAT", 1},
		{"e", 3},
		{"nothing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Len(t, Search(sample, tt.query), tt.want)
		})
	}
}

func TestExportSRT(t *testing.T) {
	srt, err := ExportSRT(sample)
	require.NoError(t, err)

	want := strings.Join([]string{
		"1\n00:00:01,000 --> 00:00:01,000\nHello team\n",
		"2\n00:00:07,000 --> 00:00:07,000\nQuarterly numbers are up\n",
		"3\n01:02:03,000 --> 01:02:03,000\nGreat news\n",
		"",
	}, "\n")
	assert.Equal(t, want, srt)

	_, err = ExportSRT(nil)
	assert.ErrorIs(t, err, entities.ErrNoSegments)
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "transcript-2025-01-02T03-04-05Z.srt", ExportFilename(at))
}
