package handlers

import (
	"net/http"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/transcode"
)

// DownloadVideo remuxes the source URL into a single mp4 under the web
// root. Query parameters: url (required), filename (optional).
func (h *Handlers) DownloadVideo(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Download(transcodeRequest(r))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeResult(w, result)
}

// UploadVideo re-encodes the source URL into an HLS playlist. Query
// parameters: url (required), filename and outputDir (optional).
func (h *Handlers) UploadVideo(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ConvertToStream(transcodeRequest(r))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeResult(w, result)
}

// FetchVideo repackages the already-encoded source URL into an HLS
// playlist without re-encoding. Parameters match UploadVideo.
func (h *Handlers) FetchVideo(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.FetchAsStream(transcodeRequest(r))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeResult(w, result)
}

// transcodeRequest maps the query string and request origin onto the
// operation parameters.
func transcodeRequest(r *http.Request) transcode.Request {
	q := r.URL.Query()
	return transcode.Request{
		SourceURL:    q.Get("url"),
		Filename:     q.Get("filename"),
		OutputDir:    q.Get("outputDir"),
		PublicScheme: requestScheme(r),
		PublicHost:   r.Host,
	}
}

// requestScheme recovers the external scheme of the request, honoring a
// forwarding proxy if one announced itself.
func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// writeResult translates an operation envelope into the wire response:
// 200 with the JSON envelope on success, 500 with the failure message
// as plain text otherwise.
func writeResult(w http.ResponseWriter, result transcode.Result) {
	if !result.Success {
		http.Error(w, result.Message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, result)
}
