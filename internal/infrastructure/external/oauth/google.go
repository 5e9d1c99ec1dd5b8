package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/johnquangdev/joyability/pkg/config"
)

// GoogleProvider handles Google OAuth2 authentication
type GoogleProvider struct {
	config      *oauth2.Config
	apiEndpoint string
}

// GoogleUserInfo is the subset of the Google profile an identity is built from
type GoogleUserInfo struct {
	ID            string
	Email         string
	VerifiedEmail bool
	Name          string
	Picture       string
}

// GoogleOption customizes a GoogleProvider
type GoogleOption func(*GoogleProvider)

// WithEndpoints points token exchange and profile lookup at other hosts
func WithEndpoints(endpoint oauth2.Endpoint, apiEndpoint string) GoogleOption {
	return func(g *GoogleProvider) {
		g.config.Endpoint = endpoint
		g.apiEndpoint = apiEndpoint
	}
}

// NewGoogleProvider creates a new Google OAuth provider
func NewGoogleProvider(cfg config.GoogleOAuthConfig, opts ...GoogleOption) *GoogleProvider {
	g := &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				oauth2api.UserinfoEmailScope,
				oauth2api.UserinfoProfileScope,
			},
			Endpoint: google.Endpoint,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GetAuthURL returns the OAuth authorization URL
func (g *GoogleProvider) GetAuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// ExchangeCode exchanges the authorization code for tokens
func (g *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

// GetUserInfo loads the profile through the userinfo API
func (g *GoogleProvider) GetUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	opts := []option.ClientOption{option.WithTokenSource(g.config.TokenSource(ctx, token))}
	if g.apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(g.apiEndpoint))
	}

	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	return &GoogleUserInfo{
		ID:            info.Id,
		Email:         info.Email,
		VerifiedEmail: info.VerifiedEmail != nil && *info.VerifiedEmail,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}
