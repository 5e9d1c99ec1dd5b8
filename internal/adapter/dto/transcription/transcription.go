package transcription

// Segment is one utterance of a transcript
type Segment struct {
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

// SummaryResponse is a templated summary. Failed is set when the fallback text was used.
type SummaryResponse struct {
	Template string `json:"template"`
	Text     string `json:"text"`
	Failed   bool   `json:"failed"`
}

// TranscribeResponse is a finished transcription
type TranscribeResponse struct {
	Segments []Segment       `json:"segments"`
	FullText string          `json:"full_text"`
	Summary  SummaryResponse `json:"summary"`
}

// SearchRequest filters segments by text or speaker
type SearchRequest struct {
	Query    string    `json:"query"`
	Segments []Segment `json:"segments" validate:"dive"`
}

// SearchResponse holds the matching segments
type SearchResponse struct {
	Segments []Segment `json:"segments"`
}

// SummaryRequest summarizes segments with a template
type SummaryRequest struct {
	Template string    `json:"template"`
	Segments []Segment `json:"segments" validate:"required,min=1,dive"`
}

// ExportRequest renders segments as subtitles
type ExportRequest struct {
	Segments []Segment `json:"segments" validate:"required,min=1,dive"`
}

// TemplatesResponse lists the summary templates
type TemplatesResponse struct {
	Templates []string `json:"templates"`
	Default   string   `json:"default"`
}
