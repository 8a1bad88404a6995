package session

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/domain"
	"taskdeck/internal/testutil"
)

func TestDecodeExpiry_ValidToken(t *testing.T) {
	expiry := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	token := testutil.MakeToken(expiry)

	got, err := decodeExpiry(token)

	require.NoError(t, err)
	assert.True(t, got.Equal(expiry))
}

func TestDecodeExpiry_PaddedBase64Payload(t *testing.T) {
	// Some issuers emit standard base64 with padding instead of raw URL
	// encoding; the decoder tolerates both.
	payload := base64.StdEncoding.EncodeToString([]byte(`{"exp":1750000000}`))
	token := "header." + payload + ".sig"

	got, err := decodeExpiry(token)

	require.NoError(t, err)
	assert.Equal(t, int64(1750000000), got.Unix())
}

func TestDecodeExpiry_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "no dots", token: "justonepart"},
		{name: "payload not base64", token: "a.!!!.c"},
		{name: "payload not json", token: testutilRaw("plain text")},
		{name: "missing exp claim", token: testutil.MakeTokenWithClaims(map[string]any{"sub": "1"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeExpiry(tt.token)
			assert.ErrorIs(t, err, domain.ErrMalformedToken)
		})
	}
}

// testutilRaw builds a token whose payload is valid base64 but not JSON.
func testutilRaw(payload string) string {
	return "header." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}
