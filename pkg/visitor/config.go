package visitor

import "time"

// Config holds visitor access configuration. It is constructed once at
// process start and passed by value into the Codec and Pipeline; there is no
// ambient global state.
type Config struct {
	// Secret signs visitor tokens. Process-wide, immutable after startup.
	Secret string `env:"VISITOR_TOKEN_SECRET,required"`

	// TokenTTL bounds how long a minted token verifies.
	TokenTTL time.Duration `env:"VISITOR_TOKEN_TTL" envDefault:"24h"`

	// TokenParam is the query-string parameter carrying the token.
	TokenParam string `env:"VISITOR_TOKEN_PARAM" envDefault:"vuid"`

	// SessionKey is the session-store key holding the visitor snapshot.
	SessionKey string `env:"VISITOR_SESSION_KEY" envDefault:"visitor"`
}

// DefaultConfig returns the default visitor configuration. Secret is left
// empty and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		TokenTTL:   24 * time.Hour,
		TokenParam: "vuid",
		SessionKey: "visitor",
	}
}
