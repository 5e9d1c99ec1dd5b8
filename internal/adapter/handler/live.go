package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/joyability/pkg/live"
)

// Live bridges a browser WebSocket to a live voice session
type Live struct {
	transport live.Transport
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

// NewLiveHandler creates a new live handler. Upgrades are accepted from
// allowedOrigins, or from any origin when the list contains "*".
func NewLiveHandler(transport live.Transport, allowedOrigins []string, logger *zap.Logger) *Live {
	return &Live{
		transport: transport,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 << 10,
			WriteBufferSize: 64 << 10,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// Serve runs one live conversation for the lifetime of the socket
// @Summary      Live conversation
// @Description  WebSocket. Binary frames carry float32 little-endian microphone samples at 16 kHz. Text frames carry {"type":"mute"|"unmute"|"disconnect","clock":seconds}. The server sends status, audio and stop events.
// @Tags         Live
// @Security     BearerAuth
// @Param        access_token  query  string  false  "Access token for browsers that cannot set headers"
// @Success      101  "Switching Protocols"
// @Router       /live [get]
func (h *Live) Serve(c echo.Context) error {
	uid := ""
	if id, ok := middleware.GetIdentity(c); ok {
		uid = id.UID
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("⚠️ Live upgrade failed", zap.String("uid", uid), zap.Error(err))
		return nil
	}

	client := newBrowserClient(ws, h.logger)
	defer client.close()

	ended := make(chan struct{})
	var endOnce sync.Once
	logger := h.logger.With(zap.String("uid", uid))

	session := live.NewSession(h.transport, client.capture, client.output,
		live.WithLogger(logger),
		live.WithStatusHandler(func(st live.Status) {
			client.sendStatus(st)
			if st.State == live.StateDisconnected {
				endOnce.Do(func() { close(ended) })
			}
		}),
	)

	// The request context is not cancelled when a hijacked connection drops.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client.sendStatus(live.Status{State: live.StateDisconnected, Text: live.StatusReady})
	go client.readLoop(session)

	if err := session.Connect(ctx); err != nil {
		logger.Warn("⚠️ Live session failed to start", zap.Error(err))
		return nil
	}
	logger.Info("🎙️ Live conversation started")

	<-ended
	session.Disconnect()
	logger.Info("👋 Live conversation ended")
	return nil
}
