package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/infrastructure/cache"
	"github.com/johnquangdev/joyability/internal/infrastructure/external/oauth"
	"github.com/johnquangdev/joyability/pkg/jwt"
	"github.com/johnquangdev/joyability/pkg/keylock"
)

// GoogleProvider is the federated sign-in backend
type GoogleProvider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*oauth.GoogleUserInfo, error)
}

// OAuthService is the identity gate: it signs users in and validates their sessions
type OAuthService struct {
	google            GoogleProvider
	stateManager      *oauth.StateManager
	jwtManager        *jwt.Manager
	store             cache.Store
	authorizedDomains []string
	revocations       *keylock.Map
	logger            *zap.Logger
}

// NewOAuthService creates a new OAuth service. google may be nil when federated sign-in is not configured.
func NewOAuthService(
	google GoogleProvider,
	stateManager *oauth.StateManager,
	jwtManager *jwt.Manager,
	store cache.Store,
	authorizedDomains []string,
	logger *zap.Logger,
) *OAuthService {
	return &OAuthService{
		google:            google,
		stateManager:      stateManager,
		jwtManager:        jwtManager,
		store:             store,
		authorizedDomains: authorizedDomains,
		revocations:       keylock.New(),
		logger:            logger,
	}
}

// GoogleAuthURLResponse represents the response for auth URL request
type GoogleAuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// GoogleCallbackRequest is what the provider redirects back with
type GoogleCallbackRequest struct {
	Code  string
	State string
	Error string
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Identity     entities.Identity
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// GoogleLoginURL starts federated sign-in from host
func (s *OAuthService) GoogleLoginURL(ctx context.Context, host string) (*GoogleAuthURLResponse, error) {
	if s.google == nil {
		return nil, entities.ErrProviderDisabled
	}
	if !s.domainAuthorized(host) {
		domain := hostname(host)
		s.logger.Warn("⚠️ Sign-in attempted from unauthorized domain", zap.String("domain", domain))
		return nil, &entities.UnauthorizedDomainError{Domain: domain}
	}

	state, err := s.stateManager.GenerateState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	return &GoogleAuthURLResponse{
		URL:   s.google.GetAuthURL(state),
		State: state,
	}, nil
}

func (s *OAuthService) domainAuthorized(host string) bool {
	if len(s.authorizedDomains) == 0 {
		return true
	}
	name := hostname(host)
	for _, d := range s.authorizedDomains {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}

func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return strings.ToLower(h)
	}
	return strings.ToLower(host)
}

// HandleGoogleCallback finishes federated sign-in
func (s *OAuthService) HandleGoogleCallback(ctx context.Context, req GoogleCallbackRequest) (*AuthResponse, error) {
	if s.google == nil {
		return nil, entities.ErrProviderDisabled
	}
	if req.Error != "" {
		return nil, &entities.ProviderError{Provider: string(entities.ProviderGoogle), Reason: req.Error}
	}

	ok, err := s.stateManager.ValidateState(ctx, req.State)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, entities.ErrOAuthStateMismatch
	}

	token, err := s.google.ExchangeCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	info, err := s.google.GetUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	identity := entities.Identity{
		UID:           "google:" + info.ID,
		DisplayName:   info.Name,
		Email:         info.Email,
		PhotoURL:      info.Picture,
		Provider:      entities.ProviderGoogle,
		EmailVerified: info.VerifiedEmail,
	}
	s.logger.Info("✅ Google sign-in", zap.String("uid", identity.UID))
	return s.issue(identity)
}

// GuestLogin signs in a fresh guest identity without any network call
func (s *OAuthService) GuestLogin(ctx context.Context) (*AuthResponse, error) {
	identity := entities.GuestIdentity(entities.GuestUIDPrefix + uuid.NewString())
	s.logger.Info("👤 Guest sign-in", zap.String("uid", identity.UID))
	return s.issue(identity)
}

// Refresh rotates a refresh token into a new token pair. A token is redeemed
// at most once: the revocation check and revoke run under a lock on its hash.
func (s *OAuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidToken, err)
	}
	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, err
	}

	unlock := s.revocations.Lock(hash)
	defer unlock()

	revoked, err := s.isRevoked(ctx, hash)
	if err != nil {
		return nil, err
	}
	if revoked {
		s.logger.Warn("⚠️ Revoked refresh token presented", zap.String("uid", claims.UID()))
		return nil, entities.ErrTokenRevoked
	}

	if err := s.revoke(ctx, hash, claims); err != nil {
		return nil, err
	}
	return s.issue(identityFromClaims(claims))
}

// Logout revokes a refresh token until it would have expired anyway
func (s *OAuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil
		}
		return fmt.Errorf("%w: %v", entities.ErrInvalidToken, err)
	}
	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return err
	}

	unlock := s.revocations.Lock(hash)
	defer unlock()
	return s.revoke(ctx, hash, claims)
}

// ValidateSession resolves an access token to its identity
func (s *OAuthService) ValidateSession(ctx context.Context, token string) (*entities.Identity, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, err
		}
		return nil, entities.ErrInvalidToken
	}
	identity := identityFromClaims(claims)
	return &identity, nil
}

func (s *OAuthService) issue(identity entities.Identity) (*AuthResponse, error) {
	profile := claimsFromIdentity(identity)

	accessToken, err := s.jwtManager.GenerateAccessToken(identity.UID, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(identity.UID, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		Identity:     identity,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}

func revokedKey(hash string) string {
	return "auth:revoked:" + hash
}

func (s *OAuthService) isRevoked(ctx context.Context, hash string) (bool, error) {
	_, ok, err := s.store.Get(ctx, revokedKey(hash))
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return ok, nil
}

func (s *OAuthService) revoke(ctx context.Context, hash string, claims *jwt.Claims) error {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > ttl {
			ttl = remaining
		}
	}
	if err := s.store.Set(ctx, revokedKey(hash), "1", ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func claimsFromIdentity(id entities.Identity) jwt.Claims {
	return jwt.Claims{
		Name:          id.DisplayName,
		Email:         id.Email,
		Picture:       id.PhotoURL,
		Provider:      string(id.Provider),
		Anonymous:     id.IsAnonymous,
		EmailVerified: id.EmailVerified,
	}
}

func identityFromClaims(c *jwt.Claims) entities.Identity {
	return entities.Identity{
		UID:           c.UID(),
		DisplayName:   c.Name,
		Email:         c.Email,
		PhotoURL:      c.Picture,
		Provider:      entities.Provider(c.Provider),
		IsAnonymous:   c.Anonymous,
		EmailVerified: c.EmailVerified,
	}
}
