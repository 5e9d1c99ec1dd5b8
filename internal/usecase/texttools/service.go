package texttools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/infrastructure/cache"
	"github.com/johnquangdev/joyability/pkg/keylock"
	"github.com/johnquangdev/joyability/pkg/layout"
)

// Tool names one of the text tools
type Tool string

const (
	ToolFixer     Tool = "fixer"
	ToolTranslate Tool = "translate"
	ToolGrammar   Tool = "grammar"
	ToolNikud     Tool = "nikud"
)

// IsValid reports whether t is a known tool
func (t Tool) IsValid() bool {
	switch t {
	case ToolFixer, ToolTranslate, ToolGrammar, ToolNikud:
		return true
	}
	return false
}

// HistoryKey is the base store key for text history
const HistoryKey = "joyability_text_history"

// DefaultHistoryLimit caps how many inputs are remembered
const DefaultHistoryLimit = 10

// TextAI is the subset of the AI client the tools need
type TextAI interface {
	Translate(ctx context.Context, text string) (string, error)
	FixGrammar(ctx context.Context, text string) (string, error)
	AddNikud(ctx context.Context, text string) (string, error)
}

// Request is one tool invocation
type Request struct {
	Tool  Tool
	Input string
	// Mode applies to the fixer only. Empty means automatic.
	Mode layout.Mode
}

// Service runs the text tools and keeps each identity's recent inputs
type Service struct {
	ai     TextAI
	store  cache.Store
	limit  int
	locks  *keylock.Map
	logger *zap.Logger
}

// NewService creates the text tools service. limit is clamped to
// DefaultHistoryLimit.
func NewService(ai TextAI, store cache.Store, limit int, logger *zap.Logger) *Service {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return &Service{
		ai:     ai,
		store:  store,
		limit:  limit,
		locks:  keylock.New(),
		logger: logger,
	}
}

// Run records the input in history and then applies the tool. The input is
// remembered even when the tool fails.
func (s *Service) Run(ctx context.Context, uid string, req Request) (string, error) {
	if strings.TrimSpace(req.Input) == "" {
		return "", entities.ErrEmptyInput
	}
	if !req.Tool.IsValid() {
		return "", fmt.Errorf("%w: %q", entities.ErrUnknownTool, req.Tool)
	}

	if _, err := s.AddHistory(ctx, uid, req.Input); err != nil {
		s.logger.Warn("⚠️ Failed to record text history", zap.String("uid", uid), zap.Error(err))
	}

	switch req.Tool {
	case ToolFixer:
		mode := req.Mode
		if mode == "" {
			mode = layout.ModeAuto
		}
		return layout.Convert(req.Input, mode), nil
	case ToolTranslate:
		return s.ai.Translate(ctx, req.Input)
	case ToolGrammar:
		return s.ai.FixGrammar(ctx, req.Input)
	default:
		return s.ai.AddNikud(ctx, req.Input)
	}
}

func historyKey(uid string) string {
	return HistoryKey + ":" + uid
}

// History returns the identity's recent inputs, most recent first
func (s *Service) History(ctx context.Context, uid string) ([]string, error) {
	return s.load(ctx, uid)
}

// AddHistory moves text to the front of the history, dropping duplicates and
// anything past the limit
func (s *Service) AddHistory(ctx context.Context, uid, text string) ([]string, error) {
	unlock := s.locks.Lock(uid)
	defer unlock()

	current, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, s.limit)
	next = append(next, text)
	for _, item := range current {
		if len(next) == s.limit {
			break
		}
		if item != text {
			next = append(next, item)
		}
	}

	if err := s.save(ctx, uid, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ClearHistory empties the identity's history
func (s *Service) ClearHistory(ctx context.Context, uid string) error {
	unlock := s.locks.Lock(uid)
	defer unlock()
	return s.save(ctx, uid, []string{})
}

func (s *Service) load(ctx context.Context, uid string) ([]string, error) {
	raw, ok, err := s.store.Get(ctx, historyKey(uid))
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if !ok || raw == "" {
		return []string{}, nil
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn("⚠️ Discarding unreadable text history", zap.String("uid", uid), zap.Error(err))
		return []string{}, nil
	}
	if len(items) > s.limit {
		items = items[:s.limit]
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, uid string, items []string) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, historyKey(uid), string(raw), 0); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
