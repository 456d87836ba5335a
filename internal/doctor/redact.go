package doctor

import (
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely contains
// sensitive data. Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// TokenPrefixes contains prefixes of values that are credentials regardless
// of the key they are stored under.
var TokenPrefixes = []string{
	"Bearer ",
	"Basic ",
	"sk-",
	"sk_live_",
	"pk-",
	"xoxb-",
	"xoxp-",
}

// MaskSecrets returns a copy of values with sensitive entries masked.
// Keys matching SecretKeyPatterns or values matching TokenPrefixes are masked.
func MaskSecrets(values map[string]string) map[string]string {
	if values == nil {
		return nil
	}

	masked := make(map[string]string, len(values))
	for k, v := range values {
		if ShouldMask(k) || ContainsTokenPrefix(v) {
			masked[k] = MaskValue(v)
		} else {
			masked[k] = v
		}
	}
	return masked
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL masks the password of embedded user info and the value of every
// query parameter whose name looks sensitive (e.g. ?api_key=...). Unparsable
// input is returned unchanged.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	changed := false
	if parsed.User != nil {
		if password, ok := parsed.User.Password(); ok && password != "" {
			parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
			changed = true
		}
	}

	if parsed.RawQuery != "" {
		q := parsed.Query()
		for k, vs := range q {
			if !ShouldMask(k) {
				continue
			}
			for i := range vs {
				vs[i] = MaskValue(vs[i])
			}
			changed = true
		}
		parsed.RawQuery = q.Encode()
	}

	if !changed {
		return rawURL
	}
	return parsed.String()
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known
// credential prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
