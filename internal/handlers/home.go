package handlers

import (
	"net/http"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/startup"
)

// EndpointInfo describes one operation in the capability listing.
type EndpointInfo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// HomeResponse is the capability listing served at the root path.
type HomeResponse struct {
	Service   string         `json:"service"`
	Version   string         `json:"version"`
	Endpoints []EndpointInfo `json:"endpoints"`
}

// Home lists the service capabilities. Anything other than the exact
// root path falls through to the static file server.
func (h *Handlers) Home(w http.ResponseWriter, _ *http.Request) {
	response := HomeResponse{
		Service: "ffmpeg-minimal-api",
		Version: startup.Version,
		Endpoints: []EndpointInfo{
			{Method: "POST", Path: "/download", Description: "Remux the source url into a single mp4"},
			{Method: "POST", Path: "/upload", Description: "Re-encode the source url into an HLS stream"},
			{Method: "POST", Path: "/fetch", Description: "Repackage the source url into an HLS stream without re-encoding"},
			{Method: "POST", Path: "/video/download", Description: "Alias of /download"},
			{Method: "POST", Path: "/video/upload", Description: "Alias of /upload"},
			{Method: "POST", Path: "/video/fetch", Description: "Alias of /fetch"},
			{Method: "POST", Path: "/image/upload", Description: "Store a multipart image upload under the web root"},
			{Method: "GET", Path: "/health", Description: "Health report"},
			{Method: "GET", Path: "/livez", Description: "Liveness probe"},
			{Method: "GET", Path: "/readyz", Description: "Readiness probe"},
			{Method: "GET", Path: "/version", Description: "Build information"},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}
