package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/joyability/errors"
	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/infrastructure/cache"
	"github.com/johnquangdev/joyability/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/joyability/internal/usecase/chat"
	"github.com/johnquangdev/joyability/internal/usecase/media"
	"github.com/johnquangdev/joyability/internal/usecase/texttools"
	"github.com/johnquangdev/joyability/internal/usecase/transcription"
	"github.com/johnquangdev/joyability/internal/usecase/workspace"
	"github.com/johnquangdev/joyability/pkg/ai"
	"github.com/johnquangdev/joyability/pkg/config"
	pkgvalidator "github.com/johnquangdev/joyability/pkg/validator"
)

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

func asUser(uid string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.IdentityKey, &entities.Identity{UID: uid, DisplayName: "Test", Provider: entities.ProviderGuest})
			return next(c)
		}
	}
}

func testConfig() *config.Config {
	return &config.Config{Server: config.ServerConfig{Environment: "test", MaxUploadMB: 1}}
}

func newServer(t *testing.T, h Handlers) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = pkgvalidator.New()
	NewRouter(testConfig(), asUser("u1"), h).Setup(e)
	return e
}

func do(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

type fakeTextAI struct{ err error }

func (f fakeTextAI) Translate(ctx context.Context, text string) (string, error) {
	return "translated:" + text, f.err
}
func (f fakeTextAI) FixGrammar(ctx context.Context, text string) (string, error) {
	return "fixed:" + text, f.err
}
func (f fakeTextAI) AddNikud(ctx context.Context, text string) (string, error) {
	return "nikud:" + text, f.err
}

func newToolsServer(t *testing.T, textAI texttools.TextAI) *echo.Echo {
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	svc := texttools.NewService(textAI, store, 10, zap.NewNop())
	return newServer(t, Handlers{Tools: NewToolsHandler(svc, zap.NewNop())})
}

func TestToolsRunAndHistory(t *testing.T) {
	e := newToolsServer(t, fakeTextAI{})

	rec := do(e, http.MethodPost, "/v1/tools/text", map[string]string{"tool": "fixer", "input": "akuo"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Output string `json:"output"`
	}
	decode(t, rec, &out)
	assert.Equal(t, "שלום", out.Output)

	rec = do(e, http.MethodPost, "/v1/tools/text", map[string]string{"tool": "translate", "input": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/v1/tools/history", nil)
	var hist struct {
		Items []string `json:"items"`
	}
	decode(t, rec, &hist)
	assert.Equal(t, []string{"hello", "akuo"}, hist.Items)

	rec = do(e, http.MethodDelete, "/v1/tools/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(e, http.MethodGet, "/v1/tools/history", nil)
	decode(t, rec, &hist)
	assert.Empty(t, hist.Items)
}

func TestToolsRunValidation(t *testing.T) {
	e := newToolsServer(t, fakeTextAI{})

	rec := do(e, http.MethodPost, "/v1/tools/text", map[string]string{"tool": "fixer", "input": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/v1/tools/text", map[string]string{"tool": "summarize", "input": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec, nil)
	assert.Equal(t, int(errors.ErrorCode_INVALID_ARGUMENT), env.Code)
}

func TestToolsQuotaErrorIsFriendly(t *testing.T) {
	e := newToolsServer(t, fakeTextAI{err: &ai.APIError{StatusCode: 429, Status: "RESOURCE_EXHAUSTED"}})

	rec := do(e, http.MethodPost, "/v1/tools/text", map[string]string{"tool": "translate", "input": "hello"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	env := decode(t, rec, nil)
	assert.Equal(t, int(errors.ErrorCode_AI_QUOTA_EXCEEDED), env.Code)
	assert.Equal(t, "Service Busy", env.Details["title"])
	assert.Equal(t, "quota", env.Details["type"])
	assert.Equal(t, "true", env.Details["retryable"])

	// The input is still remembered.
	rec = do(e, http.MethodGet, "/v1/tools/history", nil)
	var hist struct {
		Items []string `json:"items"`
	}
	decode(t, rec, &hist)
	assert.Equal(t, []string{"hello"}, hist.Items)
}

type fakeTranscriber struct {
	segments []ai.Segment
	got      ai.File
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, file ai.File) ([]ai.Segment, error) {
	f.got = file
	return f.segments, nil
}

type fakeSummarizer struct{ err error }

func (f fakeSummarizer) Summarize(ctx context.Context, transcript, template string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return template + ": " + transcript, nil
}

func multipartBody(t *testing.T, field, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestTranscribeUpload(t *testing.T) {
	tr := &fakeTranscriber{segments: []ai.Segment{{Timestamp: "00:01", Speaker: "A", Text: "hi"}}}
	svc := transcription.NewService(tr, fakeSummarizer{err: assert.AnError}, zap.NewNop())
	e := newServer(t, Handlers{Transcription: NewTranscriptionHandler(svc, zap.NewNop(), 1)})

	body, ct := multipartBody(t, "file", "call.mp3", []byte("ID3"), map[string]string{"template": "Interview"})
	req := httptest.NewRequest(http.MethodPost, "/v1/transcriptions", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Segments []map[string]string `json:"segments"`
		FullText string              `json:"full_text"`
		Summary  struct {
			Template string `json:"template"`
			Text     string `json:"text"`
			Failed   bool   `json:"failed"`
		} `json:"summary"`
	}
	decode(t, rec, &out)
	assert.Len(t, out.Segments, 1)
	assert.Equal(t, "A: hi", out.FullText)
	assert.Equal(t, "Interview", out.Summary.Template)
	assert.Equal(t, transcription.SummaryFailedText, out.Summary.Text)
	assert.True(t, out.Summary.Failed)
	assert.Equal(t, "audio/mpeg", tr.got.MimeType)
	assert.Equal(t, "call.mp3", tr.got.Name)
}

func TestTranscribeRejectsLargeUpload(t *testing.T) {
	svc := transcription.NewService(&fakeTranscriber{}, fakeSummarizer{}, zap.NewNop())
	e := newServer(t, Handlers{Transcription: NewTranscriptionHandler(svc, zap.NewNop(), 1)})

	body, ct := multipartBody(t, "file", "big.wav", bytes.Repeat([]byte{0}, (1<<20)+10), nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/transcriptions", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestTranscriptionSearchAndExport(t *testing.T) {
	svc := transcription.NewService(&fakeTranscriber{}, fakeSummarizer{}, zap.NewNop())
	e := newServer(t, Handlers{Transcription: NewTranscriptionHandler(svc, zap.NewNop(), 1)})
	segments := []map[string]string{
		{"timestamp": "00:05", "speaker": "Dana", "text": "Budget is approved"},
		{"timestamp": "01:10", "speaker": "Avi", "text": "Next steps"},
	}

	rec := do(e, http.MethodPost, "/v1/transcriptions/search", map[string]interface{}{"query": "dana", "segments": segments})
	require.Equal(t, http.StatusOK, rec.Code)
	var found struct {
		Segments []map[string]string `json:"segments"`
	}
	decode(t, rec, &found)
	require.Len(t, found.Segments, 1)
	assert.Equal(t, "Budget is approved", found.Segments[0]["text"])

	rec = do(e, http.MethodPost, "/v1/transcriptions/export", map[string]interface{}{"segments": segments})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1\n00:00:05,000 --> 00:00:05,000\nBudget is approved\n\n2\n00:01:10,000 --> 00:01:10,000\nNext steps\n\n", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".srt")

	rec = do(e, http.MethodPost, "/v1/transcriptions/export", map[string]interface{}{"segments": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeChatter struct{ err error }

func (f fakeChatter) Chat(ctx context.Context, message string, history []ai.Content) (string, error) {
	return "echo " + message, f.err
}

func TestChatConversation(t *testing.T) {
	svc := chat.NewService(fakeChatter{}, zap.NewNop())
	e := newServer(t, Handlers{Chat: NewChatHandler(svc, zap.NewNop())})

	rec := do(e, http.MethodPost, "/v1/chat/conversations", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var conv struct {
		ID string `json:"id"`
	}
	decode(t, rec, &conv)
	require.NotEmpty(t, conv.ID)

	rec = do(e, http.MethodPost, "/v1/chat/conversations/"+conv.ID+"/messages", map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sent struct {
		Reply struct {
			Role string `json:"role"`
			Text string `json:"text"`
		} `json:"reply"`
	}
	decode(t, rec, &sent)
	assert.Equal(t, "model", sent.Reply.Role)
	assert.Equal(t, "echo hello", sent.Reply.Text)

	rec = do(e, http.MethodGet, "/v1/chat/conversations/"+conv.ID, nil)
	var got struct {
		Messages []map[string]interface{} `json:"messages"`
	}
	decode(t, rec, &got)
	assert.Len(t, got.Messages, 2)

	rec = do(e, http.MethodDelete, "/v1/chat/conversations/"+conv.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(e, http.MethodGet, "/v1/chat/conversations/"+conv.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeGenerator struct {
	image *ai.Image
	err   error
}

func (f fakeGenerator) EditImage(ctx context.Context, data []byte, mimeType, prompt string) (*ai.Image, error) {
	return f.image, f.err
}

func (f fakeGenerator) GenerateVideo(ctx context.Context, prompt string) (*ai.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ai.Video{MimeType: "video/mp4", Data: []byte("mp4")}, nil
}

func TestEditImageWithoutResult(t *testing.T) {
	svc := media.NewService(fakeGenerator{}, nil, zap.NewNop())
	e := newServer(t, Handlers{Media: NewMediaHandler(svc, zap.NewNop(), 1)})

	body, ct := multipartBody(t, "image", "cat.png", []byte("png"), map[string]string{"prompt": "add a hat"})
	req := httptest.NewRequest(http.MethodPost, "/v1/images/edit", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"image":null`)
	assert.Contains(t, rec.Body.String(), "Could not generate image. Try a different prompt.")
}

func TestGenerateVideoAuthError(t *testing.T) {
	svc := media.NewService(fakeGenerator{err: &ai.APIError{StatusCode: 404, Message: "Requested entity was not found."}}, nil, zap.NewNop())
	e := newServer(t, Handlers{Media: NewMediaHandler(svc, zap.NewNop(), 1)})

	rec := do(e, http.MethodPost, "/v1/videos", map[string]string{"prompt": "a cat surfing"})
	env := decode(t, rec, nil)
	assert.Equal(t, int(errors.ErrorCode_AI_AUTH_FAILED), env.Code)
	assert.Equal(t, "Authentication error. Please select your paid API Key again.", env.Message)
}

func TestGenerateVideoInline(t *testing.T) {
	svc := media.NewService(fakeGenerator{}, nil, zap.NewNop())
	e := newServer(t, Handlers{Media: NewMediaHandler(svc, zap.NewNop(), 1)})

	rec := do(e, http.MethodPost, "/v1/videos", map[string]string{"prompt": "a cat surfing"})
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Video struct {
			MimeType string `json:"mime_type"`
			DataURL  string `json:"data_url"`
		} `json:"video"`
	}
	decode(t, rec, &out)
	assert.Equal(t, "video/mp4", out.Video.MimeType)
	assert.True(t, strings.HasPrefix(out.Video.DataURL, "data:video/mp4;base64,"))
}

func TestWorkspaceNavigation(t *testing.T) {
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	svc := workspace.NewService(store, zap.NewNop())
	e := newServer(t, Handlers{Workspace: NewWorkspaceHandler(svc, zap.NewNop())})

	rec := do(e, http.MethodGet, "/v1/workspace/view", nil)
	var d workspace.Descriptor
	decode(t, rec, &d)
	assert.Equal(t, workspace.NameDashboard, d.View)

	rec = do(e, http.MethodPut, "/v1/workspace/view", map[string]string{"view": "tools", "active_tool": "grammar"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &d)
	assert.Equal(t, workspace.NameTools, d.View)
	assert.Equal(t, "grammar", d.ActiveTool)

	rec = do(e, http.MethodPut, "/v1/workspace/view", map[string]string{"view": "spreadsheet"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnconfiguredRoutesAnswer501(t *testing.T) {
	e := newServer(t, Handlers{})

	rec := do(e, http.MethodPost, "/v1/videos", map[string]string{"prompt": "x"})
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec = do(e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
