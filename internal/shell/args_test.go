package shell

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/command"
)

func TestParseArgs(t *testing.T) {
	fields := []command.Field{
		command.Required("workspace_id", command.TypeString, ""),
		command.Optional("limit", command.TypeInteger, ""),
	}

	tests := []struct {
		name  string
		input string
		want  command.Args
	}{
		{"empty", "  ", command.Args{}},
		{"json object", `{"limit": 10, "tags": ["a"]}`, command.Args{"limit": json.Number("10"), "tags": []any{"a"}}},
		{"key value", "limit=10 active=true", command.Args{"limit": json.Number("10"), "active": true}},
		{"quoted", `name="Q1 Outreach"`, command.Args{"name": "Q1 Outreach"}},
		{"plain text", "status=START", command.Args{"status": "START"}},
		{"string field keeps digits", "workspace_id=0042", command.Args{"workspace_id": "0042"}},
		{"json array value", `ids=[1,2]`, command.Args{"ids": []any{json.Number("1"), json.Number("2")}}},
		{"empty value", "search=", command.Args{"search": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.input, fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgs_LargeIntegerIDs(t *testing.T) {
	fields := []command.Field{command.Required("campaign_id", command.TypeInteger, "")}

	for _, input := range []string{`campaign_id=12345678901234567`, `{"campaign_id": 12345678901234567}`} {
		t.Run(input, func(t *testing.T) {
			args, err := ParseArgs(input, fields)
			require.NoError(t, err)

			got, err := command.Validate(fields, args)
			require.NoError(t, err)
			assert.Equal(t, int64(12345678901234567), got["campaign_id"])
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	for _, input := range []string{`{"limit":`, `[1,2]`, `{"a":1} {"b":2}`, "novalue", "=x", `name="unterminated`} {
		_, err := ParseArgs(input, nil)
		assert.Equal(t, api.KindValidation, api.KindOf(err), "input %q", input)
	}
}
