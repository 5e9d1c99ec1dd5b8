package handler

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/errors"
	mediaDTO "github.com/johnquangdev/joyability/internal/adapter/dto/media"
	"github.com/johnquangdev/joyability/internal/adapter/presenter"
	"github.com/johnquangdev/joyability/internal/usecase/media"
)

// MediaService is what the media handler needs
type MediaService interface {
	EditImage(ctx context.Context, data []byte, mimeType, prompt string) (*media.Asset, error)
	GenerateVideo(ctx context.Context, prompt string) (*media.Asset, error)
}

// Media handles the image editor and video creator
type Media struct {
	service     MediaService
	logger      *zap.Logger
	maxUploadMB int64
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(service MediaService, logger *zap.Logger, maxUploadMB int64) *Media {
	return &Media{service: service, logger: logger, maxUploadMB: maxUploadMB}
}

// EditImage edits an uploaded image with a prompt
// @Summary      Edit an image
// @Description  image is null with a hint when the model returned no image
// @Tags         Media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image   formData  file    true  "Source image"
// @Param        prompt  formData  string  true  "Edit instruction"
// @Success      200     {object}  media.ImageEditResponse
// @Failure      400     {object}  common.ErrorResponse
// @Router       /images/edit [post]
func (h *Media) EditImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Missing image file"))
	}
	if h.maxUploadMB > 0 && fh.Size > h.maxUploadMB<<20 {
		return HandleError(h.logger, c, errors.ErrPayloadTooLarge(h.maxUploadMB))
	}

	src, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	asset, err := h.service.EditImage(c.Request().Context(), data, fh.Header.Get(echo.HeaderContentType), c.FormValue("prompt"))
	if err != nil {
		return handleToolError(h.logger, c, presenter.ToolImage, err)
	}
	if asset == nil {
		return HandleSuccess(h.logger, c, mediaDTO.ImageEditResponse{Hint: presenter.NoImageHint})
	}
	return HandleSuccess(h.logger, c, mediaDTO.ImageEditResponse{Image: presenter.ToAssetResponse(asset)})
}

// GenerateVideo renders a prompt as video
// @Summary      Generate a video
// @Description  Blocks until the generation finishes, which can take minutes
// @Tags         Media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      media.VideoRequest  true  "Prompt"
// @Success      200      {object}  media.VideoResponse
// @Failure      400      {object}  common.ErrorResponse
// @Router       /videos [post]
func (h *Media) GenerateVideo(c echo.Context) error {
	var req mediaDTO.VideoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	asset, err := h.service.GenerateVideo(c.Request().Context(), req.Prompt)
	if err != nil {
		return handleToolError(h.logger, c, presenter.ToolVideo, err)
	}
	return HandleSuccess(h.logger, c, mediaDTO.VideoResponse{Video: presenter.ToAssetResponse(asset)})
}
