package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/internal/infrastructure/cache"
	"github.com/johnquangdev/joyability/pkg/keylock"
)

// ViewTTL is how long an idle workspace remembers its view
const ViewTTL = 7 * 24 * time.Hour

const viewKeyPrefix = "joyability_workspace_view:"

type storedView struct {
	View       Name   `json:"view"`
	ActiveTool string `json:"active_tool,omitempty"`
}

// Service keeps the selected view per identity
type Service struct {
	store  cache.Store
	locks  *keylock.Map
	logger *zap.Logger
}

// NewService creates the workspace router
func NewService(store cache.Store, logger *zap.Logger) *Service {
	return &Service{store: store, locks: keylock.New(), logger: logger}
}

// Current returns the identity's view, Dashboard when none is stored
func (s *Service) Current(ctx context.Context, uid string) (View, error) {
	raw, ok, err := s.store.Get(ctx, viewKeyPrefix+uid)
	if err != nil {
		return nil, fmt.Errorf("load view: %w", err)
	}
	if !ok {
		return Dashboard{}, nil
	}

	var sv storedView
	if err := json.Unmarshal([]byte(raw), &sv); err != nil {
		s.logger.Warn("⚠️ Discarding unreadable workspace view", zap.String("uid", uid), zap.Error(err))
		return Dashboard{}, nil
	}
	v, err := Parse(string(sv.View), sv.ActiveTool)
	if err != nil {
		return Dashboard{}, nil
	}
	return v, nil
}

// Navigate switches the identity to the named view. Opening the text tools
// without a tool keeps the previously open one.
func (s *Service) Navigate(ctx context.Context, uid, name, tool string) (View, error) {
	unlock := s.locks.Lock(uid)
	defer unlock()

	if Name(name) == NameTools && tool == "" {
		if cur, err := s.Current(ctx, uid); err == nil {
			if tt, ok := cur.(TextTools); ok {
				tool = string(tt.ActiveTool)
			}
		}
	}

	v, err := Parse(name, tool)
	if err != nil {
		return nil, err
	}

	sv := storedView{View: v.Name()}
	if tt, ok := v.(TextTools); ok {
		sv.ActiveTool = string(tt.ActiveTool)
	}
	data, err := json.Marshal(sv)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, viewKeyPrefix+uid, string(data), ViewTTL); err != nil {
		return nil, fmt.Errorf("save view: %w", err)
	}
	return v, nil
}
