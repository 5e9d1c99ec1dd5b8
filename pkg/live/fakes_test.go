package live

import (
	"context"
	"errors"
	"sync"
	"time"
)

type fakePlayback struct {
	buf     Buffer
	at      time.Duration
	once    sync.Once
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

func (p *fakePlayback) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.finish()
}

func (p *fakePlayback) finish() { p.once.Do(func() { close(p.done) }) }

func (p *fakePlayback) Done() <-chan struct{} { return p.done }

func (p *fakePlayback) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

type fakeOutput struct {
	mu        sync.Mutex
	now       time.Duration
	scheduled []*fakePlayback
	closed    bool
}

func (o *fakeOutput) Now() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.now
}

func (o *fakeOutput) SetNow(d time.Duration) {
	o.mu.Lock()
	o.now = d
	o.mu.Unlock()
}

func (o *fakeOutput) Schedule(buf Buffer, at time.Duration) (Playback, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	pb := &fakePlayback{buf: buf, at: at, done: make(chan struct{})}
	o.scheduled = append(o.scheduled, pb)
	return pb, nil
}

func (o *fakeOutput) Close() error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	return nil
}

func (o *fakeOutput) Playbacks() []*fakePlayback {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*fakePlayback(nil), o.scheduled...)
}

type fakeCapture struct {
	frames  chan []float32
	openErr error

	mu     sync.Mutex
	closed bool
}

func newFakeCapture() *fakeCapture {
	return &fakeCapture{frames: make(chan []float32)}
}

func (c *fakeCapture) Open(ctx context.Context) (<-chan []float32, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	return c.frames, nil
}

func (c *fakeCapture) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeCapture) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type fakeConn struct {
	sent     chan Blob
	incoming chan ServerMessage
	recvErr  chan error
	done     chan struct{}
	once     sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		sent:     make(chan Blob, 16),
		incoming: make(chan ServerMessage),
		recvErr:  make(chan error, 1),
		done:     make(chan struct{}),
	}
}

func (c *fakeConn) Send(ctx context.Context, b Blob) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	case c.sent <- b:
		return nil
	}
}

func (c *fakeConn) Recv(ctx context.Context) (ServerMessage, error) {
	select {
	case <-c.done:
		return ServerMessage{}, errors.New("use of closed connection")
	case err := <-c.recvErr:
		return ServerMessage{}, err
	case m := <-c.incoming:
		return m, nil
	}
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *fakeConn) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

type fakeTransport struct {
	conn *fakeConn
	err  error
}

func (t *fakeTransport) Dial(ctx context.Context) (Conn, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.conn, nil
}
