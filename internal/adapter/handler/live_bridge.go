package handler

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	liveDTO "github.com/johnquangdev/joyability/internal/adapter/dto/live"
	"github.com/johnquangdev/joyability/pkg/live"
)

const (
	captureQueue = 64
	writeTimeout = 5 * time.Second
)

var errOutputClosed = errors.New("audio output closed")

// browserClient is one WebSocket peer. The browser streams microphone audio as
// binary frames of little-endian float32 samples at 16 kHz and sends JSON
// control frames. The server answers with JSON events.
type browserClient struct {
	ws     *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex

	capture *browserCapture
	output  *browserOutput
}

func newBrowserClient(ws *websocket.Conn, logger *zap.Logger) *browserClient {
	c := &browserClient{ws: ws, logger: logger}
	c.capture = &browserCapture{frames: make(chan []float32, captureQueue)}
	c.output = &browserOutput{client: c, start: time.Now()}
	return c
}

func (c *browserClient) writeJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(v)
}

func (c *browserClient) sendStatus(st live.Status) {
	err := c.writeJSON(liveDTO.Event{Type: liveDTO.EventStatus, State: st.State.String(), Text: st.Text})
	if err != nil {
		c.logger.Debug("status not delivered", zap.Error(err))
	}
}

// readLoop dispatches incoming frames until the socket fails. It is the only
// writer to the capture channel and closes it on return.
func (c *browserClient) readLoop(session *live.Session) {
	defer close(c.capture.frames)
	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("live socket read ended", zap.Error(err))
			}
			session.Disconnect()
			return
		}

		switch kind {
		case websocket.BinaryMessage:
			if session.Muted() {
				continue
			}
			c.capture.push(decodeFloat32LE(data))
		case websocket.TextMessage:
			var ctrl liveDTO.Control
			if err := json.Unmarshal(data, &ctrl); err != nil {
				c.logger.Warn("⚠️ Ignoring malformed live control frame", zap.Error(err))
				continue
			}
			if ctrl.Clock > 0 {
				c.output.syncClock(ctrl.Clock)
			}
			switch ctrl.Type {
			case liveDTO.ControlMute:
				session.SetMuted(true)
			case liveDTO.ControlUnmute:
				session.SetMuted(false)
			case liveDTO.ControlDisconnect:
				session.Disconnect()
			}
		}
	}
}

func (c *browserClient) close() {
	c.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	c.writeMu.Unlock()
	c.ws.Close()
}

func decodeFloat32LE(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return out
}

// browserCapture implements live.Capture over the socket's binary frames
type browserCapture struct {
	frames chan []float32

	mu   sync.Mutex
	open bool
}

func (b *browserCapture) Open(ctx context.Context) (<-chan []float32, error) {
	b.mu.Lock()
	b.open = true
	b.mu.Unlock()
	return b.frames, nil
}

func (b *browserCapture) Close() error {
	b.mu.Lock()
	b.open = false
	b.mu.Unlock()
	return nil
}

// push forwards a frame while capture is open. Frames are dropped when the
// session cannot keep up.
func (b *browserCapture) push(frame []float32) {
	b.mu.Lock()
	open := b.open
	b.mu.Unlock()
	if !open || len(frame) == 0 {
		return
	}
	select {
	case b.frames <- frame:
	default:
	}
}

// browserOutput implements live.Output by sending scheduled chunks to the
// browser, which plays each at start_at on its own audio clock.
type browserOutput struct {
	client *browserClient
	start  time.Time

	mu     sync.Mutex
	offset time.Duration
	seq    int64
	closed bool
}

// syncClock aligns Now with the clock the browser reported, in seconds
func (o *browserOutput) syncClock(seconds float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.offset = time.Duration(seconds*float64(time.Second)) - time.Since(o.start)
}

func (o *browserOutput) Now() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return time.Since(o.start) + o.offset
}

func (o *browserOutput) Schedule(buf live.Buffer, at time.Duration) (live.Playback, error) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil, errOutputClosed
	}
	o.seq++
	id := o.seq
	o.mu.Unlock()

	if err := o.client.writeJSON(audioEvent(id, at, buf)); err != nil {
		return nil, err
	}

	pb := &browserPlayback{id: id, output: o, done: make(chan struct{})}
	wait := at + buf.Duration() - o.Now()
	if wait < 0 {
		wait = 0
	}
	pb.timer = time.AfterFunc(wait, pb.finish)
	return pb, nil
}

func audioEvent(id int64, at time.Duration, buf live.Buffer) liveDTO.Event {
	startAt := at.Seconds()
	return liveDTO.Event{
		Type:       liveDTO.EventAudio,
		ID:         id,
		StartAt:    &startAt,
		SampleRate: buf.SampleRate,
		Data:       base64.StdEncoding.EncodeToString(live.EncodePCM16(buf.Samples)),
	}
}

func (o *browserOutput) Close() error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	return nil
}

type browserPlayback struct {
	id     int64
	output *browserOutput
	timer  *time.Timer
	once   sync.Once
	done   chan struct{}
}

func (p *browserPlayback) finish() {
	p.once.Do(func() { close(p.done) })
}

// Stop tells the browser to drop the chunk unless it already finished
func (p *browserPlayback) Stop() {
	select {
	case <-p.done:
		return
	default:
	}
	p.timer.Stop()
	p.output.client.writeJSON(liveDTO.Event{Type: liveDTO.EventStop, ID: p.id})
	p.finish()
}

func (p *browserPlayback) Done() <-chan struct{} { return p.done }

var (
	_ live.Capture  = (*browserCapture)(nil)
	_ live.Output   = (*browserOutput)(nil)
	_ live.Playback = (*browserPlayback)(nil)
)
