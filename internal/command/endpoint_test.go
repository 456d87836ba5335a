package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/cec/internal/api"
)

type recordingClient struct {
	method string
	path   string
	body   any
}

func (c *recordingClient) Request(_ context.Context, method, path string, body any) (any, error) {
	c.method, c.path, c.body = method, path, body
	return map[string]any{"ok": true}, nil
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		template   string
		query      []string
		args       Args
		wantPath   string
		wantBody   any
		wantErrMsg string
	}{
		{
			name:     "get with query",
			method:   "GET",
			template: "/campaigns",
			args:     Args{"limit": int64(10), "offset": int64(20)},
			wantPath: "/campaigns?limit=10&offset=20",
		},
		{
			name:     "path parameter escaped",
			method:   "GET",
			template: "/campaigns/{campaign_id}",
			args:     Args{"campaign_id": "a/b"},
			wantPath: "/campaigns/a%2Fb",
		},
		{
			name:     "post body without path params",
			method:   "POST",
			template: "/campaigns/{campaign_id}/status",
			args:     Args{"campaign_id": int64(7), "status": "PAUSED"},
			wantPath: "/campaigns/7/status",
			wantBody: map[string]any{"status": "PAUSED"},
		},
		{
			name:     "post with forced query field",
			method:   "POST",
			template: "/leads",
			query:    []string{"campaign_id"},
			args:     Args{"campaign_id": int64(3), "email": "a@b.co"},
			wantPath: "/leads?campaign_id=3",
			wantBody: map[string]any{"email": "a@b.co"},
		},
		{
			name:     "post without args sends no body",
			method:   "POST",
			template: "/ping",
			args:     Args{},
			wantPath: "/ping",
		},
		{
			name:     "array query joined",
			method:   "DELETE",
			template: "/leads",
			args:     Args{"ids": []any{int64(1), int64(2)}},
			wantPath: "/leads?ids=1%2C2",
		},
		{
			name:       "missing path parameter",
			method:     "GET",
			template:   "/campaigns/{campaign_id}",
			args:       Args{},
			wantErrMsg: "missing path parameter(s): campaign_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &recordingClient{}
			_, err := Endpoint(tt.method, tt.template, tt.query...)(context.Background(), client, tt.args)

			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Equal(t, api.KindValidation, api.KindOf(err))
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.Empty(t, client.method, "no request expected")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.method, client.method)
			assert.Equal(t, tt.wantPath, client.path)
			assert.Equal(t, tt.wantBody, client.body)
		})
	}
}

func TestEndpoint_LeavesArgsUntouched(t *testing.T) {
	args := Args{"campaign_id": int64(1)}
	_, err := Endpoint("GET", "/campaigns/{campaign_id}")(context.Background(), &recordingClient{}, args)
	require.NoError(t, err)
	assert.Contains(t, args, "campaign_id")
}
