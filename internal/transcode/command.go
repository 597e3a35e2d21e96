package transcode

import "strconv"

// buildInvocation produces the encoder argument list for one operation.
// The source URL and every path travel as plain argv entries, never
// through a shell. -y keeps reruns against an existing output from
// hanging on the overwrite prompt.
func (s *Service) buildInvocation(mode Mode, sourceURL string, out resolvedOutput) Invocation {
	args := []string{"-y", "-i", sourceURL}

	switch mode {
	case ModeDownload:
		// Container remux only; ffmpeg infers mp4 from the output name.
		args = append(args, "-c:v", "copy", "-c:a", "copy")
	case ModeConvert:
		args = append(args, "-c:v", "libx264", "-c:a", "aac")
		args = append(args, s.hlsArgs(out.segmentPattern)...)
	case ModeFetch:
		args = append(args, "-c:v", "copy", "-c:a", "copy")
		args = append(args, s.hlsArgs(out.segmentPattern)...)
	}

	args = append(args, out.outputPath)
	return Invocation{Path: s.ffmpegPath, Args: args}
}

// hlsArgs returns the segmented-output flags shared by both stream modes.
func (s *Service) hlsArgs(segmentPattern string) []string {
	return []string{
		"-f", "hls",
		"-hls_time", strconv.Itoa(s.segmentSeconds),
		"-hls_playlist_type", "vod",
		"-hls_segment_filename", segmentPattern,
	}
}
