// Package transcode runs ffmpeg jobs that pull remote media into the
// local serving root.
//
// Three operation modes share one pipeline: resolve the output
// locations, build the encoder argument list, run the process to
// completion, and wrap what happened into a uniform Result envelope.
// Download remuxes a source into a single mp4; ConvertToStream
// re-encodes into a segmented HLS playlist; FetchAsStream writes the
// same playlist shape but copies the source streams untouched.
//
// Jobs are synchronous. An operation returns only after the encoder
// exits, and the encoder is never attached to the caller's context, so
// a dropped HTTP client cannot orphan a half-written playlist. When a
// concurrency cap is configured, operations queue for an admission slot
// before starting the process.
//
// Failures after validation never surface as Go errors: they are folded
// into Result.Message so HTTP handlers can hand them straight back.
// Encoder stderr stays in the server log.
package transcode
