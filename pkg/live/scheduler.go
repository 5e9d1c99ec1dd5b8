package live

import (
	"sync"
	"time"
)

// Output plays buffers against its own monotonic clock
type Output interface {
	// Now is the current position of the output clock.
	Now() time.Duration
	// Schedule starts buf at the given clock position.
	Schedule(buf Buffer, at time.Duration) (Playback, error)
	Close() error
}

// Playback is one scheduled buffer. Done is closed once it finished or was stopped.
type Playback interface {
	Stop()
	Done() <-chan struct{}
}

// Scheduler queues buffers back to back on an Output so consecutive chunks
// neither overlap nor leave gaps.
type Scheduler struct {
	out Output

	mu        sync.Mutex
	nextStart time.Duration
	seq       uint64
	active    map[uint64]Playback
}

// NewScheduler creates a scheduler on out
func NewScheduler(out Output) *Scheduler {
	return &Scheduler{out: out, active: make(map[uint64]Playback)}
}

// Enqueue schedules buf at max(next free time, output clock) and returns the chosen start.
func (s *Scheduler) Enqueue(buf Buffer) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.nextStart
	if now := s.out.Now(); now > start {
		start = now
	}

	pb, err := s.out.Schedule(buf, start)
	if err != nil {
		return 0, err
	}
	s.nextStart = start + buf.Duration()

	s.seq++
	id := s.seq
	s.active[id] = pb
	go func() {
		<-pb.Done()
		s.mu.Lock()
		delete(s.active, id)
		s.mu.Unlock()
	}()

	return start, nil
}

// NextStart is the earliest time the next buffer may start
func (s *Scheduler) NextStart() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextStart
}

// Active is the number of scheduled or playing buffers
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// StopAll halts every scheduled and playing buffer
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	active := s.active
	s.active = make(map[uint64]Playback)
	s.mu.Unlock()

	for _, pb := range active {
		pb.Stop()
	}
}

// Reset stops everything and rewinds the next free time
func (s *Scheduler) Reset() {
	s.StopAll()
	s.mu.Lock()
	s.nextStart = 0
	s.mu.Unlock()
}
