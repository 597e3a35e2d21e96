package transcode

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/mediatypes"
)

// OutputStats summarizes what currently sits under the serving root.
type OutputStats struct {
	TotalBytes int64
	TotalFiles int
	Videos     int
	Playlists  int
	Segments   int
	Images     int
}

// Stats walks the serving root and counts the artifacts found there.
// Unreadable entries are skipped rather than failing the walk; the
// numbers feed the periodic metrics collector and the health report.
func (s *Service) Stats() OutputStats {
	var st OutputStats
	filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		st.TotalFiles++
		st.TotalBytes += info.Size()
		ext := strings.ToLower(filepath.Ext(p))
		switch {
		case ext == ".m3u8":
			st.Playlists++
		case ext == ".ts":
			st.Segments++
		case mediatypes.VideoExtensions[ext]:
			st.Videos++
		case mediatypes.ImageExtensions[ext]:
			st.Images++
		}
		return nil
	})
	return st
}
