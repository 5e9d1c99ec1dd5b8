package presenter

import (
	dto "github.com/johnquangdev/joyability/internal/adapter/dto/media"
	"github.com/johnquangdev/joyability/internal/usecase/media"
)

// ToAssetResponse converts generated media
func ToAssetResponse(a *media.Asset) *dto.AssetResponse {
	if a == nil {
		return nil
	}
	return &dto.AssetResponse{MimeType: a.MimeType, URL: a.URL, DataURL: a.DataURL()}
}
