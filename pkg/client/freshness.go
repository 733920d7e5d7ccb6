package client

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// TokenUsable reports whether a held bearer token is still worth sending.
// It decodes only the claims segment and compares the expiration against the
// current time; no signature verification happens here. Any malformed input
// yields false rather than an error. The server stays authoritative: a token
// judged usable can still be rejected remotely.
func TokenUsable(token string) bool {
	return tokenUsableAt(token, time.Now())
}

// tokenUsableAt is the clock-injected core of TokenUsable.
func tokenUsableAt(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return false
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segments[1], "="))
	if err != nil {
		return false
	}

	var claims struct {
		Exp *float64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return false
	}
	if claims.Exp == nil {
		return false
	}

	// Expiration is exclusive: a token expiring exactly now is already stale.
	return int64(*claims.Exp) > now.Unix()
}
