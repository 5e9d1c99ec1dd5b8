package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/joyability/docs"
	"github.com/johnquangdev/joyability/internal/adapter/handler"
	"github.com/johnquangdev/joyability/internal/infrastructure/cache"
	"github.com/johnquangdev/joyability/internal/infrastructure/external/geminilive"
	"github.com/johnquangdev/joyability/internal/infrastructure/external/oauth"
	httpmw "github.com/johnquangdev/joyability/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/joyability/internal/infrastructure/storage"
	"github.com/johnquangdev/joyability/internal/usecase/auth"
	"github.com/johnquangdev/joyability/internal/usecase/chat"
	"github.com/johnquangdev/joyability/internal/usecase/media"
	"github.com/johnquangdev/joyability/internal/usecase/texttools"
	"github.com/johnquangdev/joyability/internal/usecase/transcription"
	"github.com/johnquangdev/joyability/internal/usecase/workspace"
	"github.com/johnquangdev/joyability/pkg/ai"
	"github.com/johnquangdev/joyability/pkg/config"
	"github.com/johnquangdev/joyability/pkg/jwt"
	"github.com/johnquangdev/joyability/pkg/logger"
	pkgvalidator "github.com/johnquangdev/joyability/pkg/validator"
)

// @title           Joyability API
// @version         1.0
// @description     Bilingual productivity assistant: keyboard layout fixer, translation, grammar, Nikud, transcription, chat, image editing, video generation and live voice conversation.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	ctx := context.Background()
	zlog.Info("🔧 Initializing dependencies...")

	// Key-value store for history, workspace, OAuth state and revocations
	zlog.Info("📦 Opening key-value store...", zap.String("backend", cfg.History.Backend))
	store, err := cache.New(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to open key-value store", zap.Error(err))
	}
	defer store.Close()

	// AI client
	zlog.Info("🤖 Initializing AI client...")
	aiClient := ai.NewClient(cfg.Gemini, zlog)
	defer aiClient.Close()

	var transcriber ai.Transcriber = aiClient
	if cfg.TranscribeProvider == "assemblyai" {
		zlog.Info("🎧 Using AssemblyAI for transcription")
		transcriber = ai.NewAssemblyAITranscriber(cfg.AssemblyAI, zlog)
	}

	// Optional media storage
	var mediaStore storage.MediaStore
	if cfg.Storage.Enabled {
		zlog.Info("🗄️  Connecting to MinIO...", zap.String("endpoint", cfg.Storage.Endpoint))
		minioStore, err := storage.NewMinIOStore(ctx, cfg.Storage)
		if err != nil {
			zlog.Fatal("Failed to connect to MinIO", zap.Error(err))
		}
		mediaStore = minioStore
	} else {
		zlog.Info("ℹ️  Media storage disabled, generated media is returned inline")
	}

	// Identity
	zlog.Info("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	var googleProvider auth.GoogleProvider
	if cfg.OAuth.Google.Enabled() {
		zlog.Info("🔐 Google sign-in enabled")
		googleProvider = oauth.NewGoogleProvider(cfg.OAuth.Google)
	} else {
		zlog.Warn("⚠️  Google sign-in not configured, only guest access is available")
	}
	oauthService := auth.NewOAuthService(
		googleProvider,
		oauth.NewStateManager(store),
		jwtManager,
		store,
		cfg.OAuth.AuthorizedDomains,
		zlog,
	)

	// Use cases
	zlog.Info("✨ Initializing services...")
	toolsService := texttools.NewService(aiClient, store, cfg.History.Limit, zlog)
	transcriptionService := transcription.NewService(transcriber, aiClient, zlog)
	chatService := chat.NewService(aiClient, zlog)
	defer chatService.Close()
	mediaService := media.NewService(aiClient, mediaStore, zlog)
	workspaceService := workspace.NewService(store, zlog)
	liveTransport := geminilive.NewTransport(cfg.Gemini, zlog)

	// Setup router with handlers
	zlog.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, httpmw.EchoAuth(oauthService), handler.Handlers{
		Auth:          handler.NewAuth(oauthService, zlog, cfg),
		Tools:         handler.NewToolsHandler(toolsService, zlog),
		Transcription: handler.NewTranscriptionHandler(transcriptionService, zlog, cfg.Server.MaxUploadMB),
		Chat:          handler.NewChatHandler(chatService, zlog),
		Media:         handler.NewMediaHandler(mediaService, zlog, cfg.Server.MaxUploadMB),
		Workspace:     handler.NewWorkspaceHandler(workspaceService, zlog),
		Live:          handler.NewLiveHandler(liveTransport, cfg.Server.AllowedOrigins, zlog),
	})
	router.Setup(e)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Start server
	addr := cfg.GetServerAddr()
	go func() {
		zlog.Info("🚀 Starting server", zap.String("addr", addr), zap.String("environment", cfg.Server.Environment))
		zlog.Info(fmt.Sprintf("🔗 Health check: http://%s/health", addr))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	zlog.Info("✅ Server stopped gracefully")
}
