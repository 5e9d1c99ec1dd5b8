package tools

// RunRequest runs one text tool
type RunRequest struct {
	Tool  string `json:"tool" validate:"required,oneof=fixer translate grammar nikud"`
	Input string `json:"input" validate:"notblank"`
	Mode  string `json:"mode,omitempty" validate:"omitempty,oneof=AUTO ENG_TO_HEB HEB_TO_ENG"`
}

// RunResponse is the tool output
type RunResponse struct {
	Tool   string `json:"tool"`
	Output string `json:"output"`
}

// HistoryResponse lists recent inputs, newest first
type HistoryResponse struct {
	Items []string `json:"items"`
}
