package geminilive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/pkg/config"
	"github.com/johnquangdev/joyability/pkg/live"
)

// SystemInstruction is the persona given to the voice model
const SystemInstruction = "You are a helpful and energetic bilingual productivity assistant named Joy."

const setupTimeout = 15 * time.Second

// Transport dials the BidiGenerateContent websocket
type Transport struct {
	url    string
	apiKey string
	model  string
	voice  string
	dialer *websocket.Dialer
	logger *zap.Logger
}

var _ live.Transport = (*Transport)(nil)

// NewTransport creates a transport from config
func NewTransport(cfg config.GeminiConfig, logger *zap.Logger) *Transport {
	model := cfg.ModelLive
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}
	return &Transport{
		url:    cfg.LiveURL,
		apiKey: cfg.APIKey,
		model:  model,
		voice:  cfg.LiveVoice,
		dialer: &websocket.Dialer{HandshakeTimeout: setupTimeout},
		logger: logger,
	}
}

// Dial opens the socket, sends the session setup and waits for setupComplete
func (t *Transport) Dial(ctx context.Context) (live.Conn, error) {
	u, err := url.Parse(t.url)
	if err != nil {
		return nil, fmt.Errorf("invalid live url: %w", err)
	}
	q := u.Query()
	q.Set("key", t.apiKey)
	u.RawQuery = q.Encode()

	ws, resp, err := t.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("live handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("live dial failed: %w", err)
	}

	setup := setupMessage{Setup: setup{
		Model: t.model,
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: speechConfig{VoiceConfig: voiceConfig{
				PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: t.voice},
			}},
		},
		SystemInstruction: &content{Parts: []part{{Text: SystemInstruction}}},
	}}
	if err := ws.WriteJSON(setup); err != nil {
		ws.Close()
		return nil, fmt.Errorf("send setup: %w", err)
	}

	if err := waitSetupComplete(ctx, ws); err != nil {
		ws.Close()
		return nil, err
	}

	t.logger.Info("🔌 Live session established", zap.String("model", t.model), zap.String("voice", t.voice))
	return &Conn{ws: ws, logger: t.logger}, nil
}

func waitSetupComplete(ctx context.Context, ws *websocket.Conn) error {
	deadline := time.Now().Add(setupTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	ws.SetReadDeadline(deadline)
	defer ws.SetReadDeadline(time.Time{})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("waiting for setup: %w", err)
		}
		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("waiting for setup: %w", err)
		}
		if msg.SetupComplete != nil {
			return nil
		}
	}
}

// Conn is an established live session. Send is safe for concurrent use.
type Conn struct {
	ws      *websocket.Conn
	logger  *zap.Logger
	writeMu sync.Mutex
	once    sync.Once
}

var _ live.Conn = (*Conn)(nil)

// Send streams one microphone chunk
func (c *Conn) Send(ctx context.Context, b live.Blob) error {
	msg := realtimeInputMessage{}
	msg.RealtimeInput.MediaChunks = []live.Blob{b}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if d, ok := ctx.Deadline(); ok {
		c.ws.SetWriteDeadline(d)
	}
	return c.ws.WriteJSON(msg)
}

// Recv returns the next message that carries audio or a turn event
func (c *Conn) Recv(ctx context.Context) (live.ServerMessage, error) {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return live.ServerMessage{}, live.ErrConnectionClosed
			}
			return live.ServerMessage{}, err
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("⚠️ Ignoring unparseable live message", zap.Error(err))
			continue
		}
		if msg.GoAway != nil {
			c.logger.Info("ℹ️ Live service announced shutdown", zap.String("time_left", msg.GoAway.TimeLeft))
		}
		if msg.ServerContent == nil {
			continue
		}

		out := live.ServerMessage{
			Interrupted:  msg.ServerContent.Interrupted,
			TurnComplete: msg.ServerContent.TurnComplete,
		}
		if turn := msg.ServerContent.ModelTurn; turn != nil {
			for _, p := range turn.Parts {
				if p.InlineData != nil && p.InlineData.Data != "" {
					out.Audio = append(out.Audio, *p.InlineData)
				}
			}
		}
		if len(out.Audio) == 0 && !out.Interrupted && !out.TurnComplete {
			continue
		}
		return out, nil
	}
}

// Close sends a normal closure and closes the socket
func (c *Conn) Close() error {
	var err error
	c.once.Do(func() {
		c.writeMu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		werr := c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		c.writeMu.Unlock()
		err = c.ws.Close()
		if err == nil && werr != nil && !errors.Is(werr, websocket.ErrCloseSent) {
			c.logger.Debug("close frame not sent", zap.Error(werr))
		}
	})
	return err
}

type setupMessage struct {
	Setup setup `json:"setup"`
}

type setup struct {
	Model             string           `json:"model"`
	GenerationConfig  generationConfig `json:"generationConfig"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities"`
	SpeechConfig       speechConfig `json:"speechConfig"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string     `json:"text,omitempty"`
	InlineData *live.Blob `json:"inlineData,omitempty"`
}

type realtimeInputMessage struct {
	RealtimeInput struct {
		MediaChunks []live.Blob `json:"mediaChunks"`
	} `json:"realtimeInput"`
}

type serverMessage struct {
	SetupComplete *struct{} `json:"setupComplete,omitempty"`
	ServerContent *struct {
		ModelTurn    *content `json:"modelTurn,omitempty"`
		Interrupted  bool     `json:"interrupted"`
		TurnComplete bool     `json:"turnComplete"`
	} `json:"serverContent,omitempty"`
	GoAway *struct {
		TimeLeft string `json:"timeLeft"`
	} `json:"goAway,omitempty"`
}
