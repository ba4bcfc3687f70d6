package visitor_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guestpass/pkg/visitor"
)

func testConfig() visitor.Config {
	cfg := visitor.DefaultConfig()
	cfg.Secret = "test-signing-secret"
	return cfg
}

// tokenParam extracts the raw token from a tokenised URL.
func tokenParam(t *testing.T, rawURL, param string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Query().Get(param)
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	codec := visitor.NewCodec(cfg)

	tests := []struct {
		name string
		url  string
	}{
		{name: "bare path", url: "/"},
		{name: "absolute url", url: "https://app.example.com/reports/42"},
		{name: "existing query params", url: "/dashboard?tab=alerts&page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := visitor.NewRecord("fred@example.com", "reports", 1)

			tokenised, err := codec.Tokenise(tt.url, rec)
			require.NoError(t, err)

			tok := tokenParam(t, tokenised, cfg.TokenParam)
			require.NotEmpty(t, tok)
			assert.NotContains(t, tok, "\n")

			id, err := codec.Detokenise(tok)
			require.NoError(t, err)
			assert.Equal(t, rec.ID, id)
		})
	}
}

func TestCodecPreservesExistingQuery(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	codec := visitor.NewCodec(cfg)
	rec := visitor.NewRecord("fred@example.com", "reports", 1)

	tokenised, err := codec.Tokenise("/dashboard?tab=alerts", rec)
	require.NoError(t, err)

	u, err := url.Parse(tokenised)
	require.NoError(t, err)
	assert.Equal(t, "alerts", u.Query().Get("tab"))
	assert.Equal(t, "/dashboard", u.Path)
}

func TestCodecExpiry(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.TokenTTL = time.Hour

	now := time.Now()
	clock := func() time.Time { return now }
	codec := visitor.NewCodec(cfg, visitor.WithCodecClock(clock))

	rec := visitor.NewRecord("fred@example.com", "reports", 1)
	tokenised, err := codec.Tokenise("/", rec)
	require.NoError(t, err)
	tok := tokenParam(t, tokenised, cfg.TokenParam)

	// Still inside the TTL.
	id, err := codec.Detokenise(tok)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, id)

	// Past the TTL the same token must fail.
	now = now.Add(cfg.TokenTTL + time.Second)
	_, err = codec.Detokenise(tok)
	assert.ErrorIs(t, err, visitor.ErrTokenInvalid)
}

func TestCodecInvalidTokens(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	codec := visitor.NewCodec(cfg)

	rec := visitor.NewRecord("fred@example.com", "reports", 1)
	tokenised, err := codec.Tokenise("/", rec)
	require.NoError(t, err)
	valid := tokenParam(t, tokenised, cfg.TokenParam)

	otherCfg := testConfig()
	otherCfg.Secret = "a-different-secret"
	otherCodec := visitor.NewCodec(otherCfg)

	tests := []struct {
		name  string
		codec *visitor.Codec
		token string
	}{
		{name: "missing separator", codec: codec, token: "notatoken"},
		{name: "too many parts", codec: codec, token: valid + ".extra"},
		{name: "invalid base64 payload", codec: codec, token: "!@#$." + strings.Split(valid, ".")[1]},
		{name: "invalid base64 signature", codec: codec, token: strings.Split(valid, ".")[0] + ".!@#$"},
		{name: "tampered payload", codec: codec, token: "eyJ2aWQiOiIiLCJleHAiOjB9." + strings.Split(valid, ".")[1]},
		{name: "wrong secret", codec: otherCodec, token: valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.codec.Detokenise(tt.token)
			assert.ErrorIs(t, err, visitor.ErrTokenInvalid)
		})
	}
}

func TestTokeniseNilRecord(t *testing.T) {
	t.Parallel()

	codec := visitor.NewCodec(testConfig())
	_, err := codec.Tokenise("/", nil)
	assert.ErrorIs(t, err, visitor.ErrNilRecord)
}
