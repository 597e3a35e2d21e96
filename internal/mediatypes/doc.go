// Package mediatypes provides shared type definitions and MIME utilities for
// the files the transcoding API produces and serves.
//
// This package exists as a dependency-free foundation that can be imported by
// other packages without creating import cycles. It contains primitive types,
// constants, and pure utility functions on top of the standard library.
//
// # File Types
//
// The package defines a FileType enum for categorizing produced files:
//
//	mediatypes.FileTypeImage  // Uploaded image formats (jpg, png, webp, etc.)
//	mediatypes.FileTypeVideo  // Video container formats (mp4, mkv, etc.)
//	mediatypes.FileTypeStream // HLS artifacts (m3u8 playlists, ts segments)
//	mediatypes.FileTypeOther  // Anything else
//
// Use GetFileType with a lowercase extension including the leading dot:
//
//	ext := strings.ToLower(filepath.Ext(filename))
//	fileType := mediatypes.GetFileType(ext)
//
// # MIME Types
//
// GetMimeType returns the MIME type for HTTP responses. The process-wide MIME
// table used by http.FileServer does not know the HLS types on all platforms,
// so RegisterStreamingTypes must be called once at startup before the static
// file server handles traffic:
//
//	mediatypes.RegisterStreamingTypes()
package mediatypes
