// Package http exposes the shell over a gin control API.
//
// Lifecycle endpoints map accepted triggers to 2xx responses and ignored
// triggers to 409 Conflict, so a remote control can tell a no-op from a
// transition without polling.
package http
