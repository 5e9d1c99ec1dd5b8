package ai

import (
	"path/filepath"
	"strings"
)

const defaultAudioMimeType = "audio/mpeg"

var audioMimeTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"m4a":  "audio/mp4",
	"aac":  "audio/aac",
	"ogg":  "audio/ogg",
	"flac": "audio/flac",
	"webm": "audio/webm",
}

// AudioMimeType picks the declared type when it is meaningful, otherwise
// derives one from the file extension.
func AudioMimeType(name, declared string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if mt, ok := audioMimeTypes[ext]; ok {
		return mt
	}
	return defaultAudioMimeType
}
