package presenter

import (
	dto "github.com/johnquangdev/joyability/internal/adapter/dto/transcription"
	"github.com/johnquangdev/joyability/internal/usecase/transcription"
	"github.com/johnquangdev/joyability/pkg/ai"
)

// ToSegmentDTOs converts transcript segments for the response
func ToSegmentDTOs(segments []ai.Segment) []dto.Segment {
	out := make([]dto.Segment, 0, len(segments))
	for _, s := range segments {
		out = append(out, dto.Segment{Timestamp: s.Timestamp, Speaker: s.Speaker, Text: s.Text})
	}
	return out
}

// FromSegmentDTOs converts request segments to the domain type
func FromSegmentDTOs(segments []dto.Segment) []ai.Segment {
	out := make([]ai.Segment, 0, len(segments))
	for _, s := range segments {
		out = append(out, ai.Segment{Timestamp: s.Timestamp, Speaker: s.Speaker, Text: s.Text})
	}
	return out
}

// ToSummaryResponse converts a summary outcome
func ToSummaryResponse(s transcription.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{Template: s.Template, Text: s.Text, Failed: s.Failed}
}

// ToTranscribeResponse converts a finished transcription
func ToTranscribeResponse(r *transcription.Result) *dto.TranscribeResponse {
	if r == nil {
		return nil
	}
	return &dto.TranscribeResponse{
		Segments: ToSegmentDTOs(r.Segments),
		FullText: transcription.FullText(r.Segments),
		Summary:  ToSummaryResponse(r.Summary),
	}
}
