package chat

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/pkg/ai"
)

// Chatter sends a message with prior turns to the chat model
type Chatter interface {
	Chat(ctx context.Context, message string, history []ai.Content) (string, error)
}

const (
	// DefaultIdleTTL drops conversations nobody has touched for this long
	DefaultIdleTTL = 24 * time.Hour
	// DefaultMaxPerOwner is how many conversations one identity may hold
	DefaultMaxPerOwner = 20
	// DefaultMaxConversations caps conversations across all identities
	DefaultMaxConversations = 10000
)

type conversation struct {
	id         string
	owner      string
	createdAt  time.Time
	lastActive atomic.Int64 // unix nanos

	// mu is held for a whole send so turns append in call order.
	mu       sync.Mutex
	messages []entities.ChatMessage
}

// Conversation is a snapshot of a conversation
type Conversation struct {
	ID        string
	CreatedAt time.Time
	Messages  []entities.ChatMessage
}

// Service keeps conversations in process memory. Idle conversations expire
// and each owner holds a bounded number; the oldest is evicted first.
type Service struct {
	ai     Chatter
	logger *zap.Logger
	now    func() time.Time

	idleTTL     time.Duration
	maxPerOwner int
	maxTotal    int

	mu            sync.RWMutex
	conversations map[string]*conversation

	stop chan struct{}
	once sync.Once
}

// Option configures the chat service
type Option func(*Service)

// WithIdleTTL sets how long an untouched conversation is kept
func WithIdleTTL(d time.Duration) Option {
	return func(s *Service) { s.idleTTL = d }
}

// WithLimits sets the per-owner and total conversation caps
func WithLimits(perOwner, total int) Option {
	return func(s *Service) {
		s.maxPerOwner = perOwner
		s.maxTotal = total
	}
}

// NewService creates the chat service and starts its sweeper
func NewService(chatter Chatter, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		ai:            chatter,
		logger:        logger,
		now:           time.Now,
		idleTTL:       DefaultIdleTTL,
		maxPerOwner:   DefaultMaxPerOwner,
		maxTotal:      DefaultMaxConversations,
		conversations: make(map[string]*conversation),
		stop:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.sweep(5 * time.Minute)
	return s
}

// Close stops the sweeper
func (s *Service) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

// Create starts an empty conversation owned by uid
func (s *Service) Create(uid string) Conversation {
	now := s.now()
	conv := &conversation{
		id:        uuid.NewString(),
		owner:     uid,
		createdAt: now,
	}
	conv.lastActive.Store(now.UnixNano())

	s.mu.Lock()
	s.removeIdleLocked(now)
	s.evictLocked(uid)
	s.conversations[conv.id] = conv
	s.mu.Unlock()

	return Conversation{ID: conv.id, CreatedAt: conv.createdAt, Messages: []entities.ChatMessage{}}
}

func (s *Service) lookup(uid, id string) (*conversation, error) {
	now := s.now()
	s.mu.RLock()
	conv, ok := s.conversations[id]
	s.mu.RUnlock()
	if !ok || conv.owner != uid {
		return nil, entities.ErrConversationNotFound
	}
	if s.idle(conv, now) {
		s.mu.Lock()
		delete(s.conversations, id)
		s.mu.Unlock()
		return nil, entities.ErrConversationNotFound
	}
	conv.lastActive.Store(now.UnixNano())
	return conv, nil
}

func (s *Service) idle(conv *conversation, now time.Time) bool {
	return s.idleTTL > 0 && now.Sub(time.Unix(0, conv.lastActive.Load())) > s.idleTTL
}

func (s *Service) removeIdleLocked(now time.Time) int {
	removed := 0
	for id, conv := range s.conversations {
		if s.idle(conv, now) {
			delete(s.conversations, id)
			removed++
		}
	}
	return removed
}

// evictLocked makes room for one more conversation owned by uid
func (s *Service) evictLocked(uid string) {
	for s.maxPerOwner > 0 {
		id, count := s.oldestLocked(func(c *conversation) bool { return c.owner == uid })
		if count < s.maxPerOwner {
			break
		}
		delete(s.conversations, id)
		s.logger.Info("🧹 Evicted oldest conversation", zap.String("uid", uid), zap.String("conversation_id", id))
	}
	for s.maxTotal > 0 && len(s.conversations) >= s.maxTotal {
		id, _ := s.oldestLocked(func(*conversation) bool { return true })
		delete(s.conversations, id)
	}
}

// oldestLocked returns the least recently active matching conversation and
// how many conversations matched
func (s *Service) oldestLocked(match func(*conversation) bool) (string, int) {
	var (
		oldestID string
		oldestAt int64
		count    int
	)
	for id, conv := range s.conversations {
		if !match(conv) {
			continue
		}
		count++
		if at := conv.lastActive.Load(); oldestID == "" || at < oldestAt {
			oldestID, oldestAt = id, at
		}
	}
	return oldestID, count
}

func (s *Service) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			removed := s.removeIdleLocked(s.now())
			s.mu.Unlock()
			if removed > 0 {
				s.logger.Debug("swept idle conversations", zap.Int("count", removed))
			}
		}
	}
}

// Send appends the user's message, asks the model and appends its reply. When
// the model call fails a fallback reply is appended and the error returned.
func (s *Service) Send(ctx context.Context, uid, id, text string) (entities.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return entities.ChatMessage{}, entities.ErrEmptyInput
	}
	conv, err := s.lookup(uid, id)
	if err != nil {
		return entities.ChatMessage{}, err
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()

	history := make([]ai.Content, 0, len(conv.messages))
	for _, m := range conv.messages {
		history = append(history, ai.TextContent(string(m.Role), m.Text))
	}
	conv.messages = append(conv.messages, entities.ChatMessage{Role: entities.ChatRoleUser, Text: text, Timestamp: s.now()})

	reply, err := s.ai.Chat(ctx, text, history)
	if err != nil {
		s.logger.Warn("⚠️ Chat reply failed", zap.String("conversation_id", id), zap.Error(err))
		conv.messages = append(conv.messages, entities.ChatMessage{
			Role:      entities.ChatRoleModel,
			Text:      entities.ChatFallbackReply,
			Timestamp: s.now(),
		})
		return entities.ChatMessage{}, err
	}

	msg := entities.ChatMessage{Role: entities.ChatRoleModel, Text: reply, Timestamp: s.now()}
	conv.messages = append(conv.messages, msg)
	return msg, nil
}

// Get returns a snapshot of the conversation
func (s *Service) Get(uid, id string) (Conversation, error) {
	conv, err := s.lookup(uid, id)
	if err != nil {
		return Conversation{}, err
	}

	conv.mu.Lock()
	defer conv.mu.Unlock()
	messages := make([]entities.ChatMessage, len(conv.messages))
	copy(messages, conv.messages)
	return Conversation{ID: conv.id, CreatedAt: conv.createdAt, Messages: messages}, nil
}

// Delete discards the conversation
func (s *Service) Delete(uid, id string) error {
	if _, err := s.lookup(uid, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.conversations, id)
	s.mu.Unlock()
	return nil
}
