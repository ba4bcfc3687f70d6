package visitorredis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 24 * time.Hour

// Sessions is a visitor.SessionStore backed by one Redis hash per browser
// session. Instances are cheap and constructed per request.
type Sessions struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
	log    *slog.Logger

	// ctx is the owning request's context; a Sessions instance never
	// outlives the request it was built for.
	ctx context.Context
}

// Option configures a Sessions instance.
type Option func(*Sessions)

// WithTTL sets how long an idle session hash survives in Redis.
func WithTTL(ttl time.Duration) Option {
	return func(s *Sessions) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger used to report Redis faults.
func WithLogger(log *slog.Logger) Option {
	return func(s *Sessions) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a session store for one browser session. sessionID is the
// framework's session identifier (cookie value, JWT sid claim, etc.).
func New(ctx context.Context, client redis.UniversalClient, sessionID string, opts ...Option) *Sessions {
	s := &Sessions{
		client: client,
		key:    "guestpass:session:" + sessionID,
		ttl:    defaultTTL,
		log:    slog.Default(),
		ctx:    ctx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get reads a session value. Redis faults report "absent" and are logged.
func (s *Sessions) Get(key string) (string, bool) {
	val, err := s.client.HGet(s.ctx, s.key, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.ErrorContext(s.ctx, "session read failed", "key", s.key, "error", err)
		}
		return "", false
	}
	return val, true
}

// Set writes a session value and refreshes the hash TTL.
func (s *Sessions) Set(key, value string) {
	pipe := s.client.TxPipeline()
	pipe.HSet(s.ctx, s.key, key, value)
	pipe.Expire(s.ctx, s.key, s.ttl)
	if _, err := pipe.Exec(s.ctx); err != nil {
		s.log.ErrorContext(s.ctx, "session write failed", "key", s.key, "error", err)
	}
}

// Delete removes a session value.
func (s *Sessions) Delete(key string) {
	if err := s.client.HDel(s.ctx, s.key, key).Err(); err != nil {
		s.log.ErrorContext(s.ctx, "session delete failed", "key", s.key, "error", err)
	}
}
