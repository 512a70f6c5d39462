// Package fetch downloads font payloads over HTTP(S).
//
// The client layers, from outside in:
//   - a token bucket limiter (golang.org/x/time/rate) shared by all loads
//   - a circuit breaker per origin host (internal/infrastructure/resilience)
//   - resty for request building and response handling
//   - go-retryablehttp as the transport, retrying transient failures
//
// A preload issues every font request at once; the limiter and breakers keep
// that burst from hammering a struggling CDN.
package fetch
