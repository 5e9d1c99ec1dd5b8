package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/pkg/ai"
)

type fakeChatter struct {
	mu        sync.Mutex
	err       error
	histories [][]ai.Content
}

func (f *fakeChatter) Chat(ctx context.Context, message string, history []ai.Content) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histories = append(f.histories, history)
	if f.err != nil {
		return "", f.err
	}
	return "re: " + message, nil
}

func TestSendBuildsHistoryInOrder(t *testing.T) {
	chatter := &fakeChatter{}
	s := NewService(chatter, zap.NewNop())
	ctx := context.Background()

	conv := s.Create("u1")
	reply, err := s.Send(ctx, "u1", conv.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, entities.ChatRoleModel, reply.Role)
	assert.Equal(t, "re: first", reply.Text)

	_, err = s.Send(ctx, "u1", conv.ID, "second")
	require.NoError(t, err)

	require.Len(t, chatter.histories, 2)
	assert.Empty(t, chatter.histories[0])
	assert.Equal(t, []ai.Content{
		ai.TextContent("user", "first"),
		ai.TextContent("model", "re: first"),
	}, chatter.histories[1])

	got, err := s.Get("u1", conv.ID)
	require.NoError(t, err)
	texts := make([]string, 0, len(got.Messages))
	for _, m := range got.Messages {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{"first", "re: first", "second", "re: second"}, texts)
}

func TestSendFailureAppendsFallback(t *testing.T) {
	chatter := &fakeChatter{err: errors.New("503 overloaded")}
	s := NewService(chatter, zap.NewNop())

	conv := s.Create("u1")
	_, err := s.Send(context.Background(), "u1", conv.ID, "hi")
	require.Error(t, err)

	got, err := s.Get("u1", conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, entities.ChatFallbackReply, got.Messages[1].Text)
	assert.Equal(t, entities.ChatRoleModel, got.Messages[1].Role)
}

func TestConversationsAreScopedAndDeletable(t *testing.T) {
	s := NewService(&fakeChatter{}, zap.NewNop())
	ctx := context.Background()
	conv := s.Create("u1")

	_, err := s.Send(ctx, "u2", conv.ID, "hi")
	assert.ErrorIs(t, err, entities.ErrConversationNotFound)
	_, err = s.Get("u2", conv.ID)
	assert.ErrorIs(t, err, entities.ErrConversationNotFound)

	_, err = s.Send(ctx, "u1", conv.ID, "   ")
	assert.ErrorIs(t, err, entities.ErrEmptyInput)

	require.NoError(t, s.Delete("u1", conv.ID))
	_, err = s.Get("u1", conv.ID)
	assert.ErrorIs(t, err, entities.ErrConversationNotFound)
}

func TestConcurrentSendsStayPaired(t *testing.T) {
	s := NewService(&fakeChatter{}, zap.NewNop())
	conv := s.Create("u1")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Send(context.Background(), "u1", conv.ID, "ping")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get("u1", conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 40)
	for i := 0; i < len(got.Messages); i += 2 {
		assert.Equal(t, entities.ChatRoleUser, got.Messages[i].Role)
		assert.Equal(t, entities.ChatRoleModel, got.Messages[i+1].Role)
	}
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedService(t *testing.T, opts ...Option) (*Service, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewService(&fakeChatter{}, zap.NewNop(), opts...)
	s.now = clock.now
	t.Cleanup(func() { s.Close() })
	return s, clock
}

func TestCreateEvictsOwnersLeastRecentlyActive(t *testing.T) {
	s, clock := newClockedService(t, WithLimits(2, 100))

	first := s.Create("u1")
	clock.advance(time.Second)
	second := s.Create("u1")
	clock.advance(time.Second)

	// Touching the first conversation makes the second the oldest.
	_, err := s.Send(context.Background(), "u1", first.ID, "still here")
	require.NoError(t, err)
	clock.advance(time.Second)

	other := s.Create("u2")
	third := s.Create("u1")

	_, err = s.Get("u1", second.ID)
	assert.ErrorIs(t, err, entities.ErrConversationNotFound)
	for _, id := range []string{first.ID, third.ID} {
		_, err = s.Get("u1", id)
		assert.NoError(t, err)
	}
	_, err = s.Get("u2", other.ID)
	assert.NoError(t, err)
}

func TestCreateEnforcesTotalCap(t *testing.T) {
	s, clock := newClockedService(t, WithLimits(0, 3))

	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, s.Create(fmt.Sprintf("guest-%d", i)).ID)
		clock.advance(time.Second)
	}

	s.mu.RLock()
	assert.Len(t, s.conversations, 3)
	s.mu.RUnlock()
	_, err := s.Get("guest-0", ids[0])
	assert.ErrorIs(t, err, entities.ErrConversationNotFound)
	_, err = s.Get("guest-4", ids[4])
	assert.NoError(t, err)
}

func TestIdleConversationsExpire(t *testing.T) {
	s, clock := newClockedService(t, WithIdleTTL(time.Hour))

	idle := s.Create("u1")
	clock.advance(30 * time.Minute)
	active := s.Create("u1")
	clock.advance(45 * time.Minute)

	_, err := s.Get("u1", idle.ID)
	assert.ErrorIs(t, err, entities.ErrConversationNotFound)
	_, err = s.Get("u1", active.ID)
	require.NoError(t, err)

	// Creating prunes idle conversations nobody asked for.
	abandoned := s.Create("u2")
	clock.advance(2 * time.Hour)
	s.Create("u3")
	s.mu.RLock()
	_, ok := s.conversations[abandoned.ID]
	s.mu.RUnlock()
	assert.False(t, ok)
}
