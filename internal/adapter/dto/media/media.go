package media

// AssetResponse is generated media. Either URL or DataURL is set.
type AssetResponse struct {
	MimeType string `json:"mime_type"`
	URL      string `json:"url,omitempty"`
	DataURL  string `json:"data_url,omitempty"`
}

// ImageEditResponse wraps an edited image. Image is null when the model returned none.
type ImageEditResponse struct {
	Image *AssetResponse `json:"image"`
	Hint  string         `json:"hint,omitempty"`
}

// VideoRequest is a text-to-video prompt
type VideoRequest struct {
	Prompt string `json:"prompt" validate:"notblank"`
}

// VideoResponse wraps a generated video
type VideoResponse struct {
	Video *AssetResponse `json:"video"`
}
