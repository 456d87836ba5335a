package commands

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/cec/internal/platform"
)

func TestPlatforms_Table(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("LEMLIST_API_KEY", "lem-key")

	out, _, err := env.run(t, "", "platforms")
	require.NoError(t, err)

	for _, d := range platform.Default().List() {
		assert.Contains(t, out, d.Key)
		assert.Contains(t, out, d.DisplayName)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "lemlist") {
			assert.Contains(t, line, "env")
		}
		if strings.Contains(line, "smartlead") {
			assert.Contains(t, line, "never")
		}
	}
	assert.NotContains(t, out, "STATUS")
}

func TestPlatforms_JSONWithCheck(t *testing.T) {
	env := newTestEnv(t)
	srv := newUpstream(t, http.StatusOK, `{"items":[]}`)
	t.Setenv("INSTANTLY_API_KEY", "inst-key")
	t.Setenv("INSTANTLY_BASE_URL", srv.URL)

	out, _, err := env.run(t, "", "platforms", "--json", "--check")
	require.NoError(t, err)

	var infos []platformInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 5)
	assert.Equal(t, platform.Default().Keys()[0], infos[0].Key)

	for _, info := range infos {
		if info.Key == platform.Instantly {
			assert.True(t, info.Configured)
			assert.Equal(t, "env", info.KeySource)
			assert.Equal(t, srv.URL, info.BaseURL)
			assert.Equal(t, "pass", info.Status)
			assert.Equal(t, 10, info.Commands)
			continue
		}
		assert.False(t, info.Configured, info.Key)
		assert.Empty(t, info.Status, info.Key)
	}

	reqs := srv.received()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/accounts", reqs[0].Path)
}

func TestPlatforms_ShowsLastUse(t *testing.T) {
	env := newTestEnv(t)
	srv := newUpstream(t, http.StatusOK, `{}`)

	_, _, err := env.run(t, "", "exec", "salesforge", "me", "--api-key", "k", "--base-url", srv.URL)
	require.NoError(t, err)

	out, _, err := env.run(t, "", "platforms", "--json")
	require.NoError(t, err)

	var infos []platformInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	for _, info := range infos {
		if info.Key == platform.Salesforge {
			assert.NotNil(t, info.LastUsed)
		} else {
			assert.Nil(t, info.LastUsed, info.Key)
		}
	}
}

func TestCommands(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "", "commands", "smartlead")
	require.NoError(t, err)
	assert.Contains(t, out, "SmartLead: 9 commands in 4 categories")
	assert.Contains(t, out, "campaign-delete !")
	assert.Contains(t, out, "campaign_id")

	out, _, err = env.run(t, "", "commands", "lemlist", "--json")
	require.NoError(t, err)

	var infos []commandInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 9)
	for _, c := range infos {
		assert.NotEmpty(t, c.Method, c.Name)
		assert.NotEmpty(t, c.Category, c.Name)
	}
}

func TestCommands_UnknownPlatform(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "", "commands", "hubspot")
	require.Error(t, err)
	assert.Equal(t, "Run: cec platforms", toExitError(err).Suggestion)
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("APOLLO_API_KEY", "k")

	out, _, err := env.run(t, "", "version")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "cec version "))
	assert.Contains(t, out, "commit:")
	assert.Contains(t, out, "built:")
	assert.Contains(t, out, "go:")
	assert.Contains(t, out, "apollo:     configured (env)")
	assert.Contains(t, out, "smartlead:  not configured")
}

func TestVersionCommand_CommandMetadata(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.NotEmpty(t, versionCmd.Short)
	assert.NotEmpty(t, versionCmd.Long)
}
