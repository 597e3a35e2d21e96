package transcode

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// resolvedOutput describes where one operation writes its artifacts and
// how the result is addressed over HTTP afterwards.
type resolvedOutput struct {
	dir            string // absolute output directory
	outputPath     string // full path of the mp4 or playlist
	segmentPattern string // segment file template, stream modes only
	fileName       string // bare mp4 or playlist file name
	publicPath     string // slash-rooted path relative to the serving root
}

// resolveOutput turns the caller-supplied filename and directory into
// concrete output locations for one run.
//
// A blank or whitespace filename gets a generated UUID stem; otherwise
// one trailing extension is stripped so "clip.mp4" and "clip" name the
// same outputs. outputDir is joined under the root as given, so callers
// own whatever path they ask for. The directory is created up front;
// that is the only filesystem work an operation does before the encoder
// takes over.
func (s *Service) resolveOutput(mode Mode, filename, outputDir string) (resolvedOutput, error) {
	stem := strings.TrimSpace(filename)
	if stem == "" {
		stem = uuid.New().String()
	} else if ext := filepath.Ext(stem); ext != "" {
		stem = strings.TrimSuffix(stem, ext)
	}

	dir := s.root
	if outputDir != "" {
		dir = filepath.Join(s.root, outputDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return resolvedOutput{}, errFilesystem(err)
	}

	out := resolvedOutput{dir: dir}
	switch mode {
	case ModeDownload:
		out.fileName = stem + ".mp4"
	default:
		out.fileName = stem + ".m3u8"
		out.segmentPattern = filepath.Join(dir, stem+"_segment_%03d.ts")
	}
	out.outputPath = filepath.Join(dir, out.fileName)
	out.publicPath = path.Join("/", filepath.ToSlash(outputDir), out.fileName)
	return out, nil
}
