package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"taskdeck/internal/domain"
)

// tokenClaims is the subset of JWT claims the client inspects.
type tokenClaims struct {
	Subject string `json:"sub,omitempty"`
	Expiry  int64  `json:"exp"`
}

// decodeExpiry extracts the expiry claim from a JWT-shaped token without
// verifying its signature. Verification is the server's job; the client
// only needs the expiry for proactive refresh scheduling.
func decodeExpiry(token string) (time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return time.Time{}, domain.ErrMalformedToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		// Tolerate padded base64 from non-standard issuers.
		payload, err = base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
		}
	}

	var claims tokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
	if claims.Expiry == 0 {
		return time.Time{}, domain.ErrMalformedToken
	}

	return time.Unix(claims.Expiry, 0), nil
}
