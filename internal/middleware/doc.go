// Package middleware provides HTTP middleware for the picker bridge.
//
// It includes:
//   - Request logging in W3C Extended Log Format, with optional health check filtering
//   - Prometheus request metrics labelled by route template
//   - gzip compression of JSON responses (base64 payloads compress well)
package middleware
