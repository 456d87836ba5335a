package executor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/command"
	"github.com/thoreinstein/cec/internal/config"
	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/platform"
)

type call struct {
	Method, Path string
	Body         any
}

type reply struct {
	result any
	err    error
}

// spyClient records requests and answers them from replies in order,
// repeating the last one.
type spyClient struct {
	mu      sync.Mutex
	calls   []call
	replies []reply
}

func (s *spyClient) Request(_ context.Context, method, path string, body any) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{method, path, body})
	if len(s.replies) == 0 {
		return nil, nil
	}
	r := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return r.result, r.err
}

type spyFactory struct {
	client *spyClient
	err    error
	builds int
}

func (f *spyFactory) build(_ context.Context, _ platform.Descriptor) (command.Client, error) {
	f.builds++
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

type touchRecorder struct {
	touched []string
	err     error
}

func (t *touchRecorder) Touch(p string) error {
	t.touched = append(t.touched, p)
	return t.err
}

func newExecutor(t *testing.T, client *spyClient, opts ...Option) (*Executor, *spyFactory) {
	t.Helper()
	f := &spyFactory{client: client}
	opts = append([]Option{WithRetryDelay(0)}, opts...)
	return New(platform.Default(), f.build, opts...), f
}

func TestExecute_UnknownPlatform(t *testing.T) {
	client := &spyClient{}
	e, f := newExecutor(t, client)

	_, err := e.Execute(t.Context(), "unknown", "campaigns", command.Args{})
	require.Error(t, err)
	assert.Equal(t, api.KindNotFound, api.KindOf(err))
	assert.Contains(t, err.Error(), "unknown")
	assert.Zero(t, f.builds)
	assert.Empty(t, client.calls)
}

func TestExecute_UnknownCommand(t *testing.T) {
	client := &spyClient{}
	e, f := newExecutor(t, client)

	_, err := e.Execute(t.Context(), "smartlead", "launch-rockets", nil)
	require.Error(t, err)
	assert.Equal(t, api.KindNotFound, api.KindOf(err))
	assert.Contains(t, err.Error(), "campaign-create")
	assert.Zero(t, f.builds)
	assert.Empty(t, client.calls)
}

func TestExecute_CampaignCreate(t *testing.T) {
	created := map[string]any{"id": int64(1), "name": "Q1 Outreach", "created_at": "2024-01-01T00:00:00Z"}
	client := &spyClient{replies: []reply{{result: created}}}
	touch := &touchRecorder{}
	e, _ := newExecutor(t, client, WithToucher(touch))

	got, err := e.Execute(t.Context(), "smartlead", "campaign-create", command.Args{"name": "Q1 Outreach"})
	require.NoError(t, err)
	assert.Equal(t, created, got)

	require.Len(t, client.calls, 1)
	assert.Equal(t, call{http.MethodPost, "/campaigns/create", map[string]any{"name": "Q1 Outreach"}}, client.calls[0])
	assert.Equal(t, []string{"smartlead"}, touch.touched)
}

func TestExecute_MissingRequired(t *testing.T) {
	client := &spyClient{}
	touch := &touchRecorder{}
	e, _ := newExecutor(t, client, WithToucher(touch))

	_, err := e.Execute(t.Context(), "smartlead", "campaign-create", command.Args{})
	require.Error(t, err)

	apiErr := api.AsError(err)
	assert.Equal(t, api.KindValidation, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "name")
	assert.Equal(t, "smartlead", apiErr.Platform)
	assert.Equal(t, "campaign-create", apiErr.Command)
	assert.Empty(t, client.calls)
	assert.Empty(t, touch.touched)
}

func TestExecute_NotConfigured(t *testing.T) {
	store := config.NewStore(config.NewMemoryBackend(nil), config.WithEnv(func(string) (string, bool) { return "", false }))
	var built bool
	factory := func(ctx context.Context, d platform.Descriptor) (command.Client, error) {
		c, err := StoreClients(store, api.Options{})(ctx, d)
		built = err == nil
		return c, err
	}
	e := New(platform.Default(), factory)

	_, err := e.Execute(t.Context(), "instantly", "campaigns", nil)
	require.Error(t, err)
	assert.Equal(t, api.KindNotConfigured, api.KindOf(err))
	assert.False(t, built)
}

func TestExecute_RetriesIdempotentOnce(t *testing.T) {
	client := &spyClient{replies: []reply{
		{err: api.HTTPStatus(503, nil)},
		{result: []any{"ok"}},
	}}
	e, _ := newExecutor(t, client)

	got, err := e.Execute(t.Context(), "smartlead", "campaigns", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"ok"}, got)
	assert.Len(t, client.calls, 2)
}

func TestExecute_RetryReturnsSecondFailure(t *testing.T) {
	client := &spyClient{replies: []reply{
		{err: api.Network(errors.New("connection reset"))},
		{err: api.HTTPStatus(502, nil)},
	}}
	e, _ := newExecutor(t, client)

	_, err := e.Execute(t.Context(), "lemlist", "team", nil)
	require.Error(t, err)
	assert.Len(t, client.calls, 2)

	apiErr := api.AsError(err)
	assert.Equal(t, api.KindHTTPStatus, apiErr.Kind)
	assert.Equal(t, 502, apiErr.StatusCode)
	assert.Equal(t, "lemlist", apiErr.Platform)
	assert.Equal(t, "team", apiErr.Command)
}

func TestExecute_MutationNotRetried(t *testing.T) {
	client := &spyClient{replies: []reply{{err: api.HTTPStatus(500, nil)}}}
	e, _ := newExecutor(t, client)

	_, err := e.Execute(t.Context(), "smartlead", "campaign-create", command.Args{"name": "x"})
	require.Error(t, err)
	assert.Len(t, client.calls, 1)
}

func TestExecute_NonRetryableNotRetried(t *testing.T) {
	client := &spyClient{replies: []reply{{err: api.HTTPStatus(404, nil)}}}
	e, _ := newExecutor(t, client)

	_, err := e.Execute(t.Context(), "smartlead", "campaign-get", command.Args{"campaign_id": 7})
	require.Error(t, err)
	assert.Len(t, client.calls, 1)
	assert.Equal(t, "/campaigns/7", client.calls[0].Path)
}

func TestExecute_RetryStopsOnCancel(t *testing.T) {
	client := &spyClient{replies: []reply{{err: api.Timeout(context.DeadlineExceeded)}}}
	e, _ := newExecutor(t, client, WithRetryDelay(time.Hour))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := e.Execute(ctx, "smartlead", "campaigns", nil)
	require.Error(t, err)
	assert.Equal(t, api.KindTimeout, api.KindOf(err))
	assert.Len(t, client.calls, 1)
}

func TestExecute_ForeignErrorBecomesUnknown(t *testing.T) {
	reg, err := platform.NewRegistry(platform.Entry{
		Key: "custom",
		Load: func() *command.Module {
			return command.MustModule(command.Command{
				Name:   "boom",
				Method: http.MethodGet,
				Handler: func(context.Context, command.Client, command.Args) (any, error) {
					return nil, errors.New("handler exploded")
				},
			})
		},
	})
	require.NoError(t, err)

	f := &spyFactory{client: &spyClient{}}
	e := New(reg, f.build, WithRetryDelay(0))

	_, err = e.Execute(t.Context(), "custom", "boom", nil)
	apiErr := api.AsError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, api.KindUnknown, apiErr.Kind)
	assert.Contains(t, apiErr.Error(), "handler exploded")
	assert.Equal(t, "boom", apiErr.Command)
}

func TestExecute_TouchFailureIgnored(t *testing.T) {
	client := &spyClient{replies: []reply{{result: "ok"}}}
	e, _ := newExecutor(t, client, WithToucher(&touchRecorder{err: errors.New("disk full")}))

	got, err := e.Execute(t.Context(), "apollo", "auth-health", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestStoreClients_EndToEnd(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		assert.Equal(t, "/api/v1/campaigns", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":3}]`))
	}))
	t.Cleanup(srv.Close)

	backend := config.NewMemoryBackend(map[string]config.PlatformConfig{
		"smartlead": {APIKey: "sl-key", BaseURL: srv.URL + "/api/v1"},
	})
	store := config.NewStore(backend, config.WithEnv(func(string) (string, bool) { return "", false }))
	e := New(platform.Default(), StoreClients(store, api.Options{}), WithToucher(store))

	got, err := e.Execute(t.Context(), "smartlead", "campaigns", nil)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": int64(3)}}, got)
	assert.Equal(t, "sl-key", gotKey)

	cfg, err := store.Get("smartlead")
	require.NoError(t, err)
	assert.NotNil(t, cfg.LastUsed)
}

func TestSelect(t *testing.T) {
	client := &spyClient{replies: []reply{{result: "pong"}}}
	e, _ := newExecutor(t, client)

	_, err := e.Select("nope")
	assert.Equal(t, api.KindNotFound, api.KindOf(err))

	b, err := e.Select("salesforge")
	require.NoError(t, err)
	assert.Equal(t, "Salesforge", b.Descriptor().DisplayName)
	assert.Len(t, b.Commands(), b.Descriptor().CommandCount)

	_, ok := b.Lookup("me")
	assert.True(t, ok)

	got, err := b.Execute(t.Context(), "me", nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", got)
	assert.Equal(t, "/me", client.calls[0].Path)
}
