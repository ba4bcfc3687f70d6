// Package redis provides Redis connectivity for guestpass deployments that
// keep visitor session state in Redis (see pkg/visitorredis).
//
// Connect parses a redis:// URL and retries until the server is reachable or
// the attempts are exhausted. Healthcheck wraps a ping for readiness probes.
package redis
