// Package live runs a realtime voice conversation: microphone frames go up as
// 16 kHz PCM, reply audio comes back as 24 kHz PCM and is played gaplessly.
package live

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrMicrophoneDenied is returned when the capture device could not be opened.
	ErrMicrophoneDenied = errors.New("microphone access denied")
	// ErrAlreadyConnected is returned by Connect on a session that is not disconnected.
	ErrAlreadyConnected = errors.New("session already connected")
	// ErrConnectionClosed is returned by Conn.Recv once the service closed the session.
	ErrConnectionClosed = errors.New("connection closed")
)

// Status texts reported through the status handler
const (
	StatusReady        = "Ready to connect"
	StatusInitializing = "Initializing audio..."
	StatusConnecting   = "Connecting to Gemini Live..."
	StatusConnected    = "Connected! Start talking."
	StatusClosed       = "Connection closed."
	StatusError        = "Error occurred."
	StatusDisconnected = "Disconnected"
)

// State is the connection state of a session
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Capture is a microphone producing float frames at InputSampleRate
type Capture interface {
	// Open starts capturing. The channel is closed when capture stops.
	Open(ctx context.Context) (<-chan []float32, error)
	Close() error
}

// ServerMessage is one message from the voice service
type ServerMessage struct {
	Audio []Blob
	// Interrupted means the user spoke over the reply; queued audio is dropped.
	Interrupted  bool
	TurnComplete bool
}

// Conn is an open voice service session
type Conn interface {
	Send(ctx context.Context, b Blob) error
	// Recv blocks for the next message. It returns ErrConnectionClosed after a clean close.
	Recv(ctx context.Context) (ServerMessage, error)
	Close() error
}

// Transport opens voice service sessions
type Transport interface {
	Dial(ctx context.Context) (Conn, error)
}

// Status is a state change with its human readable text
type Status struct {
	State State
	Text  string
	Err   error
}

// Option customises a Session
type Option func(*Session)

// WithLogger sets the session logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithStatusHandler registers a callback for every status change
func WithStatusHandler(fn func(Status)) Option {
	return func(s *Session) { s.onStatus = fn }
}

// Session is one live conversation. Muting is independent of the connection state.
type Session struct {
	transport Transport
	capture   Capture
	output    Output
	sched     *Scheduler
	logger    *zap.Logger
	onStatus  func(Status)

	muted atomic.Bool

	mu     sync.Mutex
	state  State
	gen    uint64
	conn   Conn
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession wires a session to its transport and audio devices
func NewSession(transport Transport, capture Capture, output Output, opts ...Option) *Session {
	s := &Session{
		transport: transport,
		capture:   capture,
		output:    output,
		sched:     NewScheduler(output),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current connection state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Scheduler exposes the playback scheduler
func (s *Session) Scheduler() *Scheduler { return s.sched }

// SetMuted toggles the capture->send path
func (s *Session) SetMuted(muted bool) { s.muted.Store(muted) }

// Muted reports whether captured frames are being dropped
func (s *Session) Muted() bool { return s.muted.Load() }

// Connect opens the microphone and the service session, then starts streaming.
// The session ends on Disconnect, on a failure, or when ctx is cancelled.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateDisconnected {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.state = StateConnecting
	s.gen++
	gen := s.gen
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.report(Status{State: StateConnecting, Text: StatusInitializing})

	frames, err := s.capture.Open(runCtx)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrMicrophoneDenied, err)
		s.fail(gen, "Failed to connect: "+ErrMicrophoneDenied.Error(), err)
		return err
	}

	s.report(Status{State: StateConnecting, Text: StatusConnecting})

	conn, err := s.transport.Dial(runCtx)
	if err != nil {
		s.fail(gen, "Failed to connect: "+err.Error(), err)
		return fmt.Errorf("dial voice service: %w", err)
	}

	s.mu.Lock()
	if s.gen != gen {
		// Disconnected while dialing.
		s.mu.Unlock()
		conn.Close()
		return ErrConnectionClosed
	}
	s.conn = conn
	s.state = StateConnected
	s.wg.Add(2)
	s.mu.Unlock()

	s.logger.Info("🎧 Live session connected")
	s.report(Status{State: StateConnected, Text: StatusConnected})

	go s.captureLoop(runCtx, gen, conn, frames)
	go s.receiveLoop(runCtx, gen, conn)
	return nil
}

// Disconnect stops playback, releases the audio devices and closes the session
func (s *Session) Disconnect() {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	s.teardown(gen, Status{State: StateDisconnected, Text: StatusDisconnected})
	s.wg.Wait()
}

func (s *Session) captureLoop(ctx context.Context, gen uint64, conn Conn, frames <-chan []float32) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			s.fail(gen, StatusDisconnected, ctx.Err())
			return
		case frame, ok := <-frames:
			if !ok {
				s.fail(gen, StatusClosed, nil)
				return
			}
			if s.muted.Load() {
				continue
			}
			if err := conn.Send(ctx, NewBlob(frame)); err != nil {
				s.fail(gen, StatusError, err)
				return
			}
		}
	}
}

func (s *Session) receiveLoop(ctx context.Context, gen uint64, conn Conn) {
	defer s.wg.Done()
	for {
		msg, err := conn.Recv(ctx)
		if err != nil {
			switch {
			case errors.Is(err, ErrConnectionClosed):
				s.fail(gen, StatusClosed, nil)
			case ctx.Err() != nil:
				s.fail(gen, StatusDisconnected, nil)
			default:
				s.fail(gen, StatusError, err)
			}
			return
		}

		if msg.Interrupted {
			s.sched.StopAll()
		}
		for _, blob := range msg.Audio {
			buf, err := DecodeBlob(blob)
			if err != nil {
				s.logger.Warn("⚠️ Dropping undecodable audio chunk", zap.Error(err))
				continue
			}
			if _, err := s.sched.Enqueue(buf); err != nil {
				s.logger.Warn("⚠️ Failed to schedule audio chunk", zap.Error(err))
			}
		}
	}
}

func (s *Session) fail(gen uint64, text string, err error) {
	if err != nil {
		s.logger.Warn("⚠️ Live session ended", zap.String("status", text), zap.Error(err))
	}
	s.teardown(gen, Status{State: StateDisconnected, Text: text, Err: err})
}

// teardown runs once per connection attempt; stale callers are ignored
func (s *Session) teardown(gen uint64, st Status) {
	s.mu.Lock()
	if s.gen != gen || s.state == StateDisconnected {
		s.mu.Unlock()
		return
	}
	s.gen++
	s.state = StateDisconnected
	conn := s.conn
	s.conn = nil
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	s.sched.Reset()
	if cancel != nil {
		cancel()
	}
	if err := s.capture.Close(); err != nil {
		s.logger.Warn("⚠️ Failed to close capture", zap.Error(err))
	}
	if err := s.output.Close(); err != nil {
		s.logger.Warn("⚠️ Failed to close output", zap.Error(err))
	}
	if conn != nil {
		conn.Close()
	}

	s.report(st)
}

func (s *Session) report(st Status) {
	if s.onStatus != nil {
		s.onStatus(st)
	}
}
