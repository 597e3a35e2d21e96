package handlers

import (
	"time"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/startup"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/transcode"
)

type Handlers struct {
	svc             *transcode.Service
	webRoot         string
	ffmpegPath      string
	imageThumbnails bool
	started         time.Time
}

func New(svc *transcode.Service, config *startup.Config) *Handlers {
	return &Handlers{
		svc:             svc,
		webRoot:         config.WebRoot,
		ffmpegPath:      config.FFmpegPath,
		imageThumbnails: config.ImageThumbnails,
		started:         time.Now(),
	}
}
