package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/command"
)

// ParseArgs turns the text after a command name into Args.
//
// Input starting with "{" must be a JSON object. Anything else is a list of
// shell-quoted key=value pairs:
//
//	campaign-create name="Q1 Outreach" client_id=4
//
// A value is decoded as JSON when it parses (numbers, booleans, arrays,
// objects) and kept as text otherwise. Numbers stay json.Number so large
// IDs are not rounded. Fields declared as strings always
// keep the raw text, so id=0042 stays "0042".
func ParseArgs(input string, fields []command.Field) (command.Args, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return command.Args{}, nil
	}

	if strings.HasPrefix(input, "{") {
		return command.DecodeArgs([]byte(input))
	}

	words, err := shellquote.Split(input)
	if err != nil {
		return nil, api.Validation("cannot parse arguments: %v", err)
	}

	stringField := make(map[string]bool)
	for _, f := range fields {
		if f.Type == command.TypeString {
			stringField[f.Name] = true
		}
	}

	args := make(command.Args, len(words))
	for _, w := range words {
		key, raw, ok := strings.Cut(w, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, api.Validation("expected key=value, got %q", w)
		}
		args[key] = decodeValue(raw, stringField[key])
	}
	return args, nil
}

func decodeValue(raw string, asString bool) any {
	if asString {
		return raw
	}
	if v, err := command.DecodeValue([]byte(raw)); err == nil {
		return v
	}
	return raw
}
