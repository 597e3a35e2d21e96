package metrics

import (
	"time"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/logging"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/transcode"
)

// StatsProvider reports what currently sits under the serving root.
// *transcode.Service satisfies it.
type StatsProvider interface {
	Stats() transcode.OutputStats
}

// Collector periodically collects and updates serving-root metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.Stats()

	OutputFilesTotal.WithLabelValues("video").Set(float64(stats.Videos))
	OutputFilesTotal.WithLabelValues("playlist").Set(float64(stats.Playlists))
	OutputFilesTotal.WithLabelValues("segment").Set(float64(stats.Segments))
	OutputFilesTotal.WithLabelValues("image").Set(float64(stats.Images))
	OutputBytesTotal.Set(float64(stats.TotalBytes))

	logging.Debug("Metrics collected: files=%d, bytes=%d, playlists=%d, segments=%d",
		stats.TotalFiles, stats.TotalBytes, stats.Playlists, stats.Segments)
}
