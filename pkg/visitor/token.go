package visitor

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// tokenPayload is the signed token body. Compact field names keep the
// resulting URL parameter short.
type tokenPayload struct {
	VID uuid.UUID `json:"vid"`
	Exp int64     `json:"exp"`
}

// Codec produces and verifies signed visitor tokens. Tokens are self-contained
// (no server-side token storage), URL-safe and single-line:
// base64url(payload).base64url(signature), HMAC-SHA256 truncated to 8 bytes.
// All operations are pure transforms with no side effects.
type Codec struct {
	secret []byte
	ttl    time.Duration
	param  string
	now    func() time.Time
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithCodecClock injects the codec's time source for expiry checks.
func WithCodecClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec creates a token codec from the given configuration.
func NewCodec(cfg Config, opts ...CodecOption) *Codec {
	c := &Codec{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
		param:  cfg.TokenParam,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokenise appends a signed token for the record to the given URL and returns
// the result. Expiry is derived from the configured TTL at mint time.
func (c *Codec) Tokenise(rawURL string, rec *Record) (string, error) {
	if rec == nil {
		return "", ErrNilRecord
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	tok, err := c.sign(tokenPayload{VID: rec.ID, Exp: c.now().Add(c.ttl).Unix()})
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set(c.param, tok)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Detokenise verifies a token and returns the embedded record identifier.
// Malformed, tampered and expired tokens all fail with ErrTokenInvalid. A
// syntactically absent token is the caller's case, not a codec error.
func (c *Codec) Detokenise(tok string) (uuid.UUID, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 2 {
		return uuid.Nil, ErrTokenInvalid
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	if subtle.ConstantTimeCompare(sig, c.signature(data)) != 1 {
		return uuid.Nil, ErrTokenInvalid
	}

	var payload tokenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	if payload.VID == uuid.Nil || c.now().Unix() > payload.Exp {
		return uuid.Nil, ErrTokenInvalid
	}

	return payload.VID, nil
}

func (c *Codec) sign(p tokenPayload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(c.signature(data)), nil
}

// signature returns the truncated HMAC over the payload bytes. Eight bytes
// keeps invitation URLs short while remaining sufficient for short-lived
// guest tokens.
func (c *Codec) signature(data []byte) []byte {
	h := hmac.New(sha256.New, c.secret)
	h.Write(data)
	return h.Sum(nil)[:8]
}
