package transcode

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStats(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := map[string]string{
		"clip.mp4":             "0123456789",
		"movie.m3u8":           "#EXTM3U",
		"movie_segment_000.ts": "seg",
		"movie_segment_001.ts": "seg",
		"covers/poster.jpg":    "img",
		"notes.txt":            "misc",
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	svc := New(Config{Root: root})
	st := svc.Stats()

	if st.TotalFiles != 6 {
		t.Errorf("TotalFiles = %d, want 6", st.TotalFiles)
	}
	if st.Videos != 1 {
		t.Errorf("Videos = %d, want 1", st.Videos)
	}
	if st.Playlists != 1 {
		t.Errorf("Playlists = %d, want 1", st.Playlists)
	}
	if st.Segments != 2 {
		t.Errorf("Segments = %d, want 2", st.Segments)
	}
	if st.Images != 1 {
		t.Errorf("Images = %d, want 1", st.Images)
	}
	var wantBytes int64
	for _, content := range files {
		wantBytes += int64(len(content))
	}
	if st.TotalBytes != wantBytes {
		t.Errorf("TotalBytes = %d, want %d", st.TotalBytes, wantBytes)
	}
}

func TestStatsMissingRoot(t *testing.T) {
	t.Parallel()

	svc := New(Config{Root: filepath.Join(t.TempDir(), "gone")})
	st := svc.Stats()
	if st.TotalFiles != 0 || st.TotalBytes != 0 {
		t.Errorf("Stats() on missing root = %+v, want zeros", st)
	}
}
