package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/infrastructure/storage"
	"github.com/johnquangdev/joyability/pkg/ai"
)

const (
	imagePrefix = "images"
	videoPrefix = "videos"
)

// Generator is the subset of the AI client used for media
type Generator interface {
	EditImage(ctx context.Context, data []byte, mimeType, prompt string) (*ai.Image, error)
	GenerateVideo(ctx context.Context, prompt string) (*ai.Video, error)
}

// Asset is generated media. URL is set when the bytes were stored, otherwise
// Data carries them inline as base64.
type Asset struct {
	MimeType string
	URL      string
	Data     string
}

// DataURL renders an inline asset as a data: URL
func (a *Asset) DataURL() string {
	if a.Data == "" {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", a.MimeType, a.Data)
}

// Service edits images and generates videos
type Service struct {
	ai     Generator
	store  storage.MediaStore
	logger *zap.Logger
}

// NewService creates the media service. store may be nil.
func NewService(gen Generator, store storage.MediaStore, logger *zap.Logger) *Service {
	return &Service{ai: gen, store: store, logger: logger}
}

// EditImage applies prompt to the image. A nil asset with a nil error means
// the model produced no image.
func (s *Service) EditImage(ctx context.Context, data []byte, mimeType, prompt string) (*Asset, error) {
	if len(data) == 0 || strings.TrimSpace(prompt) == "" {
		return nil, entities.ErrEmptyInput
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	img, err := s.ai.EditImage(ctx, data, mimeType, prompt)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, nil
	}
	return s.publish(ctx, imagePrefix, img.Data, img.MimeType), nil
}

// GenerateVideo renders prompt as a short video
func (s *Service) GenerateVideo(ctx context.Context, prompt string) (*Asset, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, entities.ErrEmptyInput
	}

	video, err := s.ai.GenerateVideo(ctx, prompt)
	if err != nil {
		return nil, err
	}
	mimeType := video.MimeType
	if mimeType == "" {
		mimeType = "video/mp4"
	}
	return s.publish(ctx, videoPrefix, video.Data, mimeType), nil
}

// publish stores data when a store is configured. A failed upload falls back
// to returning the bytes inline.
func (s *Service) publish(ctx context.Context, prefix string, data []byte, mimeType string) *Asset {
	asset := &Asset{MimeType: mimeType}
	if s.store != nil {
		url, err := s.store.PutMedia(ctx, prefix, data, mimeType)
		if err == nil {
			asset.URL = url
			return asset
		}
		s.logger.Warn("⚠️ Media upload failed, returning inline",
			zap.String("prefix", prefix),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
	}
	asset.Data = base64.StdEncoding.EncodeToString(data)
	return asset
}
