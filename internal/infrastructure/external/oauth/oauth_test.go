package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/johnquangdev/joyability/internal/infrastructure/cache"
	"github.com/johnquangdev/joyability/pkg/config"
)

func TestStateIsSingleUse(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	defer store.Close()
	sm := NewStateManager(store)

	state, err := sm.GenerateState(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, state)

	ok, err := sm.ValidateState(ctx, state)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = sm.ValidateState(ctx, state)
	require.NoError(t, err)
	assert.False(t, ok, "replayed state")

	ok, err = sm.ValidateState(ctx, "forged")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGoogleProviderExchangeAndProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "at", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/oauth2/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"123","email":"dana@example.com","verified_email":true,"name":"Dana","picture":"https://p/1.png"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	g := NewGoogleProvider(config.GoogleOAuthConfig{
		ClientID:     "cid",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/cb",
	}, WithEndpoints(oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}, srv.URL+"/"))

	authURL := g.GetAuthURL("s1")
	assert.True(t, strings.HasPrefix(authURL, srv.URL+"/auth?"))
	assert.Contains(t, authURL, "state=s1")

	ctx := context.Background()
	tok, err := g.ExchangeCode(ctx, "the-code")
	require.NoError(t, err)

	info, err := g.GetUserInfo(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, &GoogleUserInfo{ID: "123", Email: "dana@example.com", VerifiedEmail: true, Name: "Dana", Picture: "https://p/1.png"}, info)
}
