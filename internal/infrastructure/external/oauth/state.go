package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/johnquangdev/joyability/internal/infrastructure/cache"
)

const stateTTL = 15 * time.Minute

// StateManager issues one-time OAuth state tokens for CSRF protection
type StateManager struct {
	store      cache.Store
	expiration time.Duration
}

// NewStateManager creates a state manager on top of store
func NewStateManager(store cache.Store) *StateManager {
	return &StateManager{
		store:      store,
		expiration: stateTTL,
	}
}

func stateKey(state string) string {
	return fmt.Sprintf("oauth:state:%s", state)
}

// GenerateState creates and stores a random state token
func (sm *StateManager) GenerateState(ctx context.Context) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	if err := sm.store.Set(ctx, stateKey(state), "valid", sm.expiration); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return state, nil
}

// ValidateState consumes a state token. A token validates at most once.
func (sm *StateManager) ValidateState(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	key := stateKey(state)

	value, ok, err := sm.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read oauth state: %w", err)
	}
	if !ok || value != "valid" {
		return false, nil
	}

	if err := sm.store.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return true, nil
}
