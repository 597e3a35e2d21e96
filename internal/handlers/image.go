package handlers

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/logging"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/metrics"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/transcode"

	// Image format decoders
	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // WebP format support
)

// thumbnailMaxDimension bounds the longest edge of generated upload
// thumbnails.
const thumbnailMaxDimension = 320

// UploadImage stores a multipart upload under the web root and answers
// with its public URL. The file arrives in the "file" form field; query
// parameters fileName (defaults to the uploaded name) and path (optional
// subdirectory) control where it lands. Uploads that decode as images
// get a jpeg thumbnail written next to them when thumbnails are enabled.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
		writeJSONError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close upload stream: %v", err)
		}
	}()

	q := r.URL.Query()
	fileName := strings.TrimSpace(q.Get("fileName"))
	if fileName == "" {
		fileName = header.Filename
	}
	if fileName == "" {
		fileName = uuid.New().String()
	}

	subDir := q.Get("path")
	dir := h.webRoot
	if subDir != "" {
		dir = filepath.Join(h.webRoot, subDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
		logging.Error("failed to create upload directory %s: %v", dir, err)
		http.Error(w, "failed to create upload directory", http.StatusInternalServerError)
		return
	}

	dst := filepath.Join(dir, fileName)
	if err := storeUpload(dst, file); err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
		logging.Error("failed to store upload %s: %v", dst, err)
		http.Error(w, "failed to store upload", http.StatusInternalServerError)
		return
	}
	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()

	if cfg, format, err := imageInfo(dst); err != nil {
		logging.Debug("stored non-image upload %s: %v", dst, err)
	} else {
		logging.Info("Stored %s upload %s (%dx%d)", format, dst, cfg.Width, cfg.Height)
		if h.imageThumbnails {
			h.generateThumbnail(dst, fileName, dir)
		}
	}

	publicPath := path.Join("/", filepath.ToSlash(subDir), fileName)
	url := fmt.Sprintf("%s://%s%s", requestScheme(r), r.Host, publicPath)
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, transcode.Result{Success: true, Data: url})
}

// storeUpload copies the multipart part to dst, replacing any previous
// file of the same name.
func storeUpload(dst string, src io.Reader) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// imageInfo decodes just the header of the stored file to confirm it is
// an image and report its dimensions.
func imageInfo(path string) (image.Config, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close image file %s: %v", path, err)
		}
	}()

	return image.DecodeConfig(file)
}

// generateThumbnail writes a bounded jpeg rendition next to the stored
// upload. Failures are logged and never affect the upload response.
func (h *Handlers) generateThumbnail(src, fileName, dir string) {
	start := time.Now()

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error").Inc()
		logging.Warn("failed to decode %s for thumbnail: %v", src, err)
		return
	}

	thumb := imaging.Fit(img, thumbnailMaxDimension, thumbnailMaxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error").Inc()
		logging.Warn("failed to encode thumbnail for %s: %v", src, err)
		return
	}

	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	thumbPath := filepath.Join(dir, stem+"_thumb.jpg")
	if err := os.WriteFile(thumbPath, buf.Bytes(), 0644); err != nil {
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error").Inc()
		logging.Warn("failed to write thumbnail %s: %v", thumbPath, err)
		return
	}

	metrics.ThumbnailGenerationsTotal.WithLabelValues("success").Inc()
	metrics.ThumbnailGenerationDuration.Observe(time.Since(start).Seconds())
	logging.Debug("Thumbnail written: %s", thumbPath)
}
