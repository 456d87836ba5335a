package command

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/thoreinstein/cec/internal/api"
)

var placeholder = regexp.MustCompile(`\{([a-z_][a-z0-9_]*)\}`)

// Endpoint returns a Handler that issues method against the path template.
//
// Placeholders such as {campaign_id} are filled from args and removed from
// them. Remaining args become the query string for GET, HEAD and DELETE and
// the JSON body otherwise; names listed in queryFields always go to the
// query string.
func Endpoint(method, template string, queryFields ...string) Handler {
	inQuery := make(map[string]bool, len(queryFields))
	for _, f := range queryFields {
		inQuery[f] = true
	}

	return func(ctx context.Context, client Client, args Args) (any, error) {
		rest := make(Args, len(args))
		for k, v := range args {
			rest[k] = v
		}

		path, err := expand(template, rest)
		if err != nil {
			return nil, err
		}

		query := url.Values{}
		body := make(map[string]any)
		bodyless := method == http.MethodGet || method == http.MethodHead || method == http.MethodDelete
		for k, v := range rest {
			if bodyless || inQuery[k] {
				query.Set(k, queryValue(v))
				continue
			}
			body[k] = v
		}

		if len(query) > 0 {
			path += "?" + query.Encode()
		}

		var payload any
		if len(body) > 0 {
			payload = body
		}
		return client.Request(ctx, method, path, payload)
	}
}

// expand substitutes {name} placeholders with escaped argument values and
// deletes the consumed keys from args.
func expand(template string, args Args) (string, error) {
	var missing []string
	path := placeholder.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := args[name]
		if !ok || v == nil {
			missing = append(missing, name)
			return m
		}
		delete(args, name)
		return url.PathEscape(queryValue(v))
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", api.Validation("missing path parameter(s): %s", strings.Join(missing, ", "))
	}
	return path, nil
}

func queryValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = queryValue(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}
