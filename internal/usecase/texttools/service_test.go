package texttools

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/infrastructure/cache"
	"github.com/johnquangdev/joyability/pkg/layout"
)

type fakeAI struct {
	err   error
	calls []string
}

func (f *fakeAI) record(op, text string) (string, error) {
	f.calls = append(f.calls, op)
	if f.err != nil {
		return "", f.err
	}
	return op + ":" + text, nil
}

func (f *fakeAI) Translate(ctx context.Context, text string) (string, error) {
	return f.record("translate", text)
}

func (f *fakeAI) FixGrammar(ctx context.Context, text string) (string, error) {
	return f.record("grammar", text)
}

func (f *fakeAI) AddNikud(ctx context.Context, text string) (string, error) {
	return f.record("nikud", text)
}

func newService(t *testing.T, ai TextAI) (*Service, *cache.MemoryStore) {
	t.Helper()
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewService(ai, store, DefaultHistoryLimit, zap.NewNop()), store
}

func TestRunDispatchesTools(t *testing.T) {
	ai := &fakeAI{}
	s, _ := newService(t, ai)
	ctx := context.Background()

	out, err := s.Run(ctx, "u1", Request{Tool: ToolFixer, Input: "hello"})
	require.NoError(t, err)
	assert.Equal(t, layout.Fix("hello"), out)
	assert.Empty(t, ai.calls, "fixer never calls the AI service")

	out, err = s.Run(ctx, "u1", Request{Tool: ToolFixer, Input: "שלום", Mode: layout.ModeToHebrew})
	require.NoError(t, err)
	assert.Equal(t, "שלום", out)

	for _, tool := range []Tool{ToolTranslate, ToolGrammar, ToolNikud} {
		out, err := s.Run(ctx, "u1", Request{Tool: tool, Input: "x"})
		require.NoError(t, err)
		assert.Equal(t, string(tool)+":x", out)
	}
}

func TestRunRejectsBlankAndUnknown(t *testing.T) {
	s, _ := newService(t, &fakeAI{})
	ctx := context.Background()

	_, err := s.Run(ctx, "u1", Request{Tool: ToolTranslate, Input: "  \n"})
	assert.ErrorIs(t, err, entities.ErrEmptyInput)

	_, err = s.Run(ctx, "u1", Request{Tool: "summarize", Input: "x"})
	assert.ErrorIs(t, err, entities.ErrUnknownTool)

	h, err := s.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestRunRecordsHistoryEvenOnFailure(t *testing.T) {
	s, _ := newService(t, &fakeAI{err: errors.New("429 quota")})
	ctx := context.Background()

	_, err := s.Run(ctx, "u1", Request{Tool: ToolTranslate, Input: "hi"})
	require.Error(t, err)

	h, err := s.History(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, h)
}

func TestHistoryDedupesAndCaps(t *testing.T) {
	s, store := newService(t, &fakeAI{})
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := s.AddHistory(ctx, "u1", fmt.Sprintf("t%d", i))
		require.NoError(t, err)
	}
	h, err := s.AddHistory(ctx, "u1", "t5")
	require.NoError(t, err)

	assert.Len(t, h, 10)
	assert.Equal(t, []string{"t5", "t11", "t10", "t9", "t8", "t7", "t6", "t4", "t3", "t2"}, h)

	raw, ok, err := store.Get(ctx, "joyability_text_history:u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["t5","t11","t10","t9","t8","t7","t6","t4","t3","t2"]`, raw)

	other, err := s.History(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other, "history is scoped per identity")

	require.NoError(t, s.ClearHistory(ctx, "u1"))
	h, err = s.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestHistoryLimitNeverExceedsTen(t *testing.T) {
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	s := NewService(&fakeAI{}, store, 50, zap.NewNop())
	ctx := context.Background()

	var h []string
	for i := 0; i < 20; i++ {
		var err error
		h, err = s.AddHistory(ctx, "u1", fmt.Sprintf("t%d", i))
		require.NoError(t, err)
	}
	assert.Len(t, h, DefaultHistoryLimit)
}

func TestHistoryCorruptValueIsReset(t *testing.T) {
	s, store := newService(t, &fakeAI{})
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "joyability_text_history:u1", "{not json", 0))

	h, err := s.AddHistory(ctx, "u1", "fresh")
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, h)
}

func TestHistoryConcurrentAdds(t *testing.T) {
	s, _ := newService(t, &fakeAI{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.AddHistory(ctx, "u1", fmt.Sprintf("t%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	h, err := s.History(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, h, 10, "no add is lost")
}
