package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/johnquangdev/joyability/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg           *config.Config
	auth          echo.MiddlewareFunc
	authHandler   *Auth
	toolsHandler  *Tools
	transcription *Transcription
	chatHandler   *Chat
	mediaHandler  *Media
	workspace     *Workspace
	liveHandler   *Live
}

// Handlers groups the handlers passed to NewRouter. A nil handler leaves its
// routes answering 501.
type Handlers struct {
	Auth          *Auth
	Tools         *Tools
	Transcription *Transcription
	Chat          *Chat
	Media         *Media
	Workspace     *Workspace
	Live          *Live
}

// NewRouter creates a new router with all handlers. auth guards every route
// that needs an identity.
func NewRouter(cfg *config.Config, auth echo.MiddlewareFunc, h Handlers) *Router {
	return &Router{
		cfg:           cfg,
		auth:          auth,
		authHandler:   h.Auth,
		toolsHandler:  h.Tools,
		transcription: h.Transcription,
		chatHandler:   h.Chat,
		mediaHandler:  h.Media,
		workspace:     h.Workspace,
		liveHandler:   h.Live,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupWorkspaceRoutes(v1)
	rt.setupToolRoutes(v1)
	rt.setupTranscriptionRoutes(v1)
	rt.setupChatRoutes(v1)
	rt.setupMediaRoutes(v1)
	rt.setupLiveRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	if rt.authHandler == nil {
		authGroup.Any("/*", rt.notImplemented)
		return
	}
	authGroup.POST("/guest", rt.authHandler.GuestLogin)
	authGroup.GET("/google/login", rt.authHandler.GoogleLogin)
	authGroup.GET("/google/callback", rt.authHandler.GoogleCallback)
	authGroup.POST("/refresh", rt.authHandler.RefreshToken)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.GET("/me", rt.authHandler.Me, rt.auth)
}

func (rt *Router) setupWorkspaceRoutes(g *echo.Group) {
	group := g.Group("/workspace", rt.auth)
	if rt.workspace == nil {
		group.Any("/*", rt.notImplemented)
		return
	}
	group.GET("/view", rt.workspace.Current)
	group.PUT("/view", rt.workspace.Navigate)
}

func (rt *Router) setupToolRoutes(g *echo.Group) {
	group := g.Group("/tools", rt.auth)
	if rt.toolsHandler == nil {
		group.Any("/*", rt.notImplemented)
		return
	}
	group.POST("/text", rt.toolsHandler.Run)
	group.GET("/history", rt.toolsHandler.History)
	group.DELETE("/history", rt.toolsHandler.ClearHistory)
}

func (rt *Router) setupTranscriptionRoutes(g *echo.Group) {
	group := g.Group("/transcriptions", rt.auth, rt.uploadLimit())
	if rt.transcription == nil {
		group.Any("/*", rt.notImplemented)
		return
	}
	group.POST("", rt.transcription.Transcribe)
	group.GET("/templates", rt.transcription.Templates)
	group.POST("/search", rt.transcription.Search)
	group.POST("/summary", rt.transcription.Summary)
	group.POST("/export", rt.transcription.Export)
}

func (rt *Router) setupChatRoutes(g *echo.Group) {
	group := g.Group("/chat/conversations", rt.auth)
	if rt.chatHandler == nil {
		group.Any("/*", rt.notImplemented)
		return
	}
	group.POST("", rt.chatHandler.Create)
	group.GET("/:id", rt.chatHandler.Get)
	group.DELETE("/:id", rt.chatHandler.Delete)
	group.POST("/:id/messages", rt.chatHandler.Send)
}

func (rt *Router) setupMediaRoutes(g *echo.Group) {
	if rt.mediaHandler == nil {
		g.Any("/images/*", rt.notImplemented, rt.auth)
		g.Any("/videos", rt.notImplemented, rt.auth)
		return
	}
	g.POST("/images/edit", rt.mediaHandler.EditImage, rt.auth, rt.uploadLimit())
	g.POST("/videos", rt.mediaHandler.GenerateVideo, rt.auth)
}

func (rt *Router) setupLiveRoutes(g *echo.Group) {
	if rt.liveHandler == nil {
		g.GET("/live", rt.notImplemented, rt.auth)
		return
	}
	g.GET("/live", rt.liveHandler.Serve, rt.auth)
}

// uploadLimit caps request bodies slightly above the per-file limit to leave
// room for multipart framing
func (rt *Router) uploadLimit() echo.MiddlewareFunc {
	return echomw.BodyLimit(fmt.Sprintf("%dM", rt.cfg.Server.MaxUploadMB+1))
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not available",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "The backing service is not configured",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
