package security

import (
	"net/url"
	"strings"
)

// Placeholder replaces sensitive values.
const Placeholder = "redacted"

var sensitiveSubstrings = []string{
	"token",
	"password",
	"authorization",
	"apikey",
	"api_key",
	"access_key",
	"private_key",
	"credentials",
	"auth",
	"passwd",
	"key",
	"sig",
	"signature",
	"cookie",
	"session",
	"jwt",
	"bearer",
	"credential",
	"pwd",
	"passphrase",
	"secret",
}

// RedactURL masks the userinfo password and credential-like query
// parameters so a URL can be logged. Unparseable input is fully masked.
func RedactURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Placeholder
	}
	if parsed.RawQuery != "" {
		query := parsed.Query()
		changed := false
		for key, values := range query {
			if !isSensitiveKey(key) {
				continue
			}
			for i := range values {
				values[i] = Placeholder
			}
			changed = true
		}
		if changed {
			parsed.RawQuery = query.Encode()
		}
	}
	return parsed.Redacted()
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, part := range sensitiveSubstrings {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
