// Package handlers provides HTTP request handlers for the transcode API.
//
// It includes handlers for:
//   - Video download, convert and fetch operations
//   - Image uploads with optional thumbnails
//   - Health, liveness and readiness checks
//   - Version and capability reporting
package handlers
