package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	toolsDTO "github.com/johnquangdev/joyability/internal/adapter/dto/tools"
	"github.com/johnquangdev/joyability/internal/usecase/texttools"
	"github.com/johnquangdev/joyability/pkg/layout"
)

// TextToolsService is what the tools handler needs
type TextToolsService interface {
	Run(ctx context.Context, uid string, req texttools.Request) (string, error)
	History(ctx context.Context, uid string) ([]string, error)
	ClearHistory(ctx context.Context, uid string) error
}

// Tools handles the text tool endpoints
type Tools struct {
	service TextToolsService
	logger  *zap.Logger
}

// NewToolsHandler creates a new tools handler
func NewToolsHandler(service TextToolsService, logger *zap.Logger) *Tools {
	return &Tools{service: service, logger: logger}
}

// Run applies one text tool
// @Summary      Run a text tool
// @Description  Fixes keyboard layout, translates, corrects grammar or adds Nikud. The input is added to history first.
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      tools.RunRequest  true  "Tool invocation"
// @Success      200      {object}  tools.RunResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      429      {object}  common.ErrorResponse  "Service busy"
// @Router       /tools/text [post]
func (h *Tools) Run(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req toolsDTO.RunRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.service.Run(c.Request().Context(), id.UID, texttools.Request{
		Tool:  texttools.Tool(req.Tool),
		Input: req.Input,
		Mode:  layout.Mode(req.Mode),
	})
	if err != nil {
		return handleToolError(h.logger, c, req.Tool, err)
	}
	return HandleSuccess(h.logger, c, toolsDTO.RunResponse{Tool: req.Tool, Output: out})
}

// History lists recent inputs
// @Summary      Text tool history
// @Tags         Tools
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  tools.HistoryResponse
// @Router       /tools/history [get]
func (h *Tools) History(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	items, err := h.service.History(c.Request().Context(), id.UID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, toolsDTO.HistoryResponse{Items: items})
}

// ClearHistory forgets recent inputs
// @Summary      Clear text tool history
// @Tags         Tools
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  tools.HistoryResponse
// @Router       /tools/history [delete]
func (h *Tools) ClearHistory(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.ClearHistory(c.Request().Context(), id.UID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, toolsDTO.HistoryResponse{Items: []string{}})
}
