package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/errors"
	dto "github.com/johnquangdev/joyability/internal/adapter/dto/transcription"
	"github.com/johnquangdev/joyability/internal/adapter/presenter"
	"github.com/johnquangdev/joyability/internal/usecase/transcription"
	"github.com/johnquangdev/joyability/pkg/ai"
)

// TranscriptionService is what the transcription handler needs
type TranscriptionService interface {
	Transcribe(ctx context.Context, f ai.File, template string) (*transcription.Result, error)
	Summary(ctx context.Context, segments []ai.Segment, template string) transcription.Summary
}

// Transcription handles the transcription studio endpoints
type Transcription struct {
	service     TranscriptionService
	logger      *zap.Logger
	maxUploadMB int64
	now         func() time.Time
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service TranscriptionService, logger *zap.Logger, maxUploadMB int64) *Transcription {
	return &Transcription{service: service, logger: logger, maxUploadMB: maxUploadMB, now: time.Now}
}

// Transcribe uploads audio and returns diarized segments with a summary
// @Summary      Transcribe audio
// @Tags         Transcription
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file      formData  file    true   "Audio file"
// @Param        template  formData  string  false  "Summary template"
// @Success      200       {object}  transcription.TranscribeResponse
// @Failure      400       {object}  common.ErrorResponse
// @Failure      413       {object}  common.ErrorResponse
// @Router       /transcriptions [post]
func (h *Transcription) Transcribe(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Missing audio file"))
	}
	if h.maxUploadMB > 0 && fh.Size > h.maxUploadMB<<20 {
		return HandleError(h.logger, c, errors.ErrPayloadTooLarge(h.maxUploadMB))
	}

	src, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	defer src.Close()

	result, err := h.service.Transcribe(c.Request().Context(), ai.File{
		Name:     fh.Filename,
		MimeType: ai.AudioMimeType(fh.Filename, fh.Header.Get(echo.HeaderContentType)),
		Size:     fh.Size,
		Content:  src,
	}, c.FormValue("template"))
	if err != nil {
		return handleToolError(h.logger, c, presenter.ToolTranscription, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTranscribeResponse(result))
}

// Search filters segments
// @Summary      Search a transcript
// @Tags         Transcription
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      transcription.SearchRequest  true  "Segments and query"
// @Success      200      {object}  transcription.SearchResponse
// @Router       /transcriptions/search [post]
func (h *Transcription) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	found := transcription.Search(presenter.FromSegmentDTOs(req.Segments), req.Query)
	return HandleSuccess(h.logger, c, dto.SearchResponse{Segments: presenter.ToSegmentDTOs(found)})
}

// Summary regenerates the summary with another template
// @Summary      Summarize a transcript
// @Description  A failed summary still answers 200 with the fallback text and failed=true
// @Tags         Transcription
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      transcription.SummaryRequest  true  "Segments and template"
// @Success      200      {object}  transcription.SummaryResponse
// @Router       /transcriptions/summary [post]
func (h *Transcription) Summary(c echo.Context) error {
	var req dto.SummaryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	summary := h.service.Summary(c.Request().Context(), presenter.FromSegmentDTOs(req.Segments), req.Template)
	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(summary))
}

// Templates lists the summary templates
// @Summary      Summary templates
// @Tags         Transcription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  transcription.TemplatesResponse
// @Router       /transcriptions/templates [get]
func (h *Transcription) Templates(c echo.Context) error {
	return HandleSuccess(h.logger, c, dto.TemplatesResponse{
		Templates: ai.SummaryTemplates(),
		Default:   transcription.DefaultTemplate,
	})
}

// Export downloads the transcript as SRT subtitles
// @Summary      Export subtitles
// @Tags         Transcription
// @Accept       json
// @Produce      plain
// @Security     BearerAuth
// @Param        request  body      transcription.ExportRequest  true  "Segments"
// @Success      200      {string}  string  "SRT file"
// @Router       /transcriptions/export [post]
func (h *Transcription) Export(c echo.Context) error {
	var req dto.ExportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	srt, err := transcription.ExportSRT(presenter.FromSegmentDTOs(req.Segments))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+transcription.ExportFilename(h.now())+`"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(srt))
}
