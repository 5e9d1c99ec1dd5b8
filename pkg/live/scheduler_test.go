package live

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(d time.Duration) Buffer {
	return Buffer{
		Samples:    make([]float32, int(d*OutputSampleRate/time.Second)),
		SampleRate: OutputSampleRate,
	}
}

func TestSchedulerBackToBack(t *testing.T) {
	out := &fakeOutput{now: time.Second}
	s := NewScheduler(out)

	d1 := 500 * time.Millisecond
	first, err := s.Enqueue(chunk(d1))
	require.NoError(t, err)
	assert.Equal(t, time.Second, first)

	// The clock moves a little, but the first chunk is still playing.
	out.SetNow(1200 * time.Millisecond)
	second, err := s.Enqueue(chunk(250 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, first+d1, second)
	assert.Equal(t, second+250*time.Millisecond, s.NextStart())
	assert.Equal(t, 2, s.Active())
}

func TestSchedulerUnderrunStartsAtClock(t *testing.T) {
	out := &fakeOutput{}
	s := NewScheduler(out)

	_, err := s.Enqueue(chunk(100 * time.Millisecond))
	require.NoError(t, err)

	out.SetNow(3 * time.Second)
	start, err := s.Enqueue(chunk(100 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, start, "a late chunk never starts in the past")
}

func TestSchedulerForgetsFinishedPlayback(t *testing.T) {
	out := &fakeOutput{}
	s := NewScheduler(out)

	_, err := s.Enqueue(chunk(10 * time.Millisecond))
	require.NoError(t, err)
	out.Playbacks()[0].finish()

	assert.Eventually(t, func() bool { return s.Active() == 0 }, time.Second, time.Millisecond)
}

func TestSchedulerResetStopsEverything(t *testing.T) {
	out := &fakeOutput{}
	s := NewScheduler(out)

	for i := 0; i < 3; i++ {
		_, err := s.Enqueue(chunk(time.Second))
		require.NoError(t, err)
	}
	s.Reset()

	for _, pb := range out.Playbacks() {
		assert.True(t, pb.Stopped())
	}
	assert.Zero(t, s.Active())
	assert.Zero(t, s.NextStart())
}
