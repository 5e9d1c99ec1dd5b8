package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	workspaceDTO "github.com/johnquangdev/joyability/internal/adapter/dto/workspace"
	"github.com/johnquangdev/joyability/internal/usecase/workspace"
)

// WorkspaceService is what the workspace handler needs
type WorkspaceService interface {
	Current(ctx context.Context, uid string) (workspace.View, error)
	Navigate(ctx context.Context, uid, name, tool string) (workspace.View, error)
}

// Workspace handles view navigation
type Workspace struct {
	service WorkspaceService
	logger  *zap.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(service WorkspaceService, logger *zap.Logger) *Workspace {
	return &Workspace{service: service, logger: logger}
}

// Current renders the selected view
// @Summary      Current view
// @Tags         Workspace
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  workspace.Descriptor
// @Router       /workspace/view [get]
func (h *Workspace) Current(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	v, err := h.service.Current(c.Request().Context(), id.UID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, workspace.Render(v))
}

// Navigate switches the selected view
// @Summary      Navigate
// @Tags         Workspace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      workspace.NavigateRequest  true  "Target view"
// @Success      200      {object}  workspace.Descriptor
// @Failure      400      {object}  common.ErrorResponse
// @Router       /workspace/view [put]
func (h *Workspace) Navigate(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req workspaceDTO.NavigateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	v, err := h.service.Navigate(c.Request().Context(), id.UID, req.View, req.ActiveTool)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, workspace.Render(v))
}
