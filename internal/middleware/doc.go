// Package middleware provides HTTP middleware for the transcode API.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics with bounded path cardinality
//   - Response compression (gzip) with playlist-aware content types
//   - CORS handling for cross-origin players
//   - Configurable filtering for static files and health checks
package middleware
