package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/errors"
	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/infrastructure/cache"
	"github.com/johnquangdev/joyability/internal/infrastructure/external/oauth"
	"github.com/johnquangdev/joyability/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/joyability/internal/usecase/auth"
	"github.com/johnquangdev/joyability/internal/usecase/texttools"
	"github.com/johnquangdev/joyability/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/joyability/pkg/validator"
)

func newAuthServer(t *testing.T) *echo.Echo {
	t.Helper()
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	jwtManager := jwt.NewManager("access", "refresh", 15*time.Minute, time.Hour)
	svc := auth.NewOAuthService(nil, oauth.NewStateManager(store), jwtManager, store, nil, zap.NewNop())

	cfg := testConfig()
	cfg.JWT.RefreshExpiry = time.Hour

	e := echo.New()
	e.Validator = pkgvalidator.New()
	NewRouter(cfg, middleware.EchoAuth(svc), Handlers{
		Auth:  NewAuth(svc, zap.NewNop(), cfg),
		Tools: NewToolsHandler(texttools.NewService(fakeTextAI{}, store, 10, zap.NewNop()), zap.NewNop()),
	}).Setup(e)
	return e
}

func doWithToken(e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func guestToken(t *testing.T, e *echo.Echo) (uid, token string) {
	t.Helper()
	rec := do(e, http.MethodPost, "/v1/auth/guest", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokens struct {
		AccessToken string `json:"access_token"`
		Identity    struct {
			UID string `json:"uid"`
		} `json:"identity"`
	}
	decode(t, rec, &tokens)
	return tokens.Identity.UID, tokens.AccessToken
}

func TestGuestLoginsHaveSeparateHistories(t *testing.T) {
	e := newAuthServer(t)

	uidA, tokenA := guestToken(t, e)
	uidB, tokenB := guestToken(t, e)
	assert.NotEqual(t, uidA, uidB)

	rec := doWithToken(e, http.MethodPost, "/v1/tools/text", tokenA, map[string]string{"tool": "translate", "input": "guest A private note"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var history struct {
		Items []string `json:"items"`
	}
	rec = doWithToken(e, http.MethodGet, "/v1/tools/history", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &history)
	assert.Empty(t, history.Items)

	rec = doWithToken(e, http.MethodGet, "/v1/tools/history", tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &history)
	assert.Equal(t, []string{"guest A private note"}, history.Items)
}

func TestGuestLoginSessionRoundTrip(t *testing.T) {
	e := newAuthServer(t)

	rec := do(e, http.MethodPost, "/v1/auth/guest", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		Identity     struct {
			UID         string `json:"uid"`
			IsAnonymous bool   `json:"is_anonymous"`
		} `json:"identity"`
	}
	decode(t, rec, &tokens)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.True(t, strings.HasPrefix(tokens.Identity.UID, entities.GuestUIDPrefix))
	assert.True(t, tokens.Identity.IsAnonymous)

	cookies := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c.HttpOnly
	}
	assert.True(t, cookies[middleware.AccessTokenCookie])
	assert.True(t, cookies[RefreshTokenCookie])

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tokens.AccessToken)
	me := httptest.NewRecorder()
	e.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"display_name":"Guest User"`)

	rec = do(e, http.MethodPost, "/v1/auth/refresh", map[string]string{"refresh_token": tokens.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)

	// Rotation revoked the first refresh token.
	rec = do(e, http.MethodPost, "/v1/auth/refresh", map[string]string{"refresh_token": tokens.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRequiresToken(t *testing.T) {
	e := newAuthServer(t)

	rec := do(e, http.MethodGet, "/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoogleLoginDisabled(t *testing.T) {
	e := newAuthServer(t)

	rec := do(e, http.MethodGet, "/v1/auth/google/login?format=json", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	env := decode(t, rec, nil)
	assert.Equal(t, int(errors.ErrorCode_AUTH_PROVIDER_DISABLED), env.Code)
}

func TestRefreshRequiresToken(t *testing.T) {
	e := newAuthServer(t)

	rec := do(e, http.MethodPost, "/v1/auth/refresh", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
