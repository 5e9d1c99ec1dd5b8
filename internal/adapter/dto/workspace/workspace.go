package workspace

// NavigateRequest switches the workspace view
type NavigateRequest struct {
	View       string `json:"view" validate:"required"`
	ActiveTool string `json:"active_tool,omitempty"`
}
