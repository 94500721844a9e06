package mediatypes

import (
	"sort"
	"strings"
)

// Kind is the media family of a source path.
type Kind string

const (
	// KindImage is a still image the codec can decode.
	KindImage Kind = "image"
	// KindVideo is a video the metadata probe can inspect.
	KindVideo Kind = "video"
	// KindUnknown is anything else. Unknown paths never enter the pipeline.
	KindUnknown Kind = "unknown"
)

// ImageExtensions lists the lowercase image extensions, without the dot.
var ImageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"webp": true,
}

// VideoExtensions lists the lowercase video extensions, without the dot.
var VideoExtensions = map[string]bool{
	"mp4": true,
	"mkv": true,
	"ts":  true,
}

// MimeTypes maps lowercase extensions to their MIME types.
var MimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",

	"mp4": "video/mp4",
	"mkv": "video/x-matroska",
	"ts":  "video/mp2t",
}

// Extension returns the substring after the last '.' in path.
// The second result is false when path contains no '.'.
func Extension(path string) (string, bool) {
	i := strings.LastIndex(path, ".")
	if i == -1 {
		return "", false
	}
	return path[i+1:], true
}

// Classify returns the Kind of path based on its suffix.
func Classify(path string) Kind {
	ext, ok := Extension(path)
	if !ok {
		return KindUnknown
	}
	ext = strings.ToLower(ext)
	if ImageExtensions[ext] {
		return KindImage
	}
	if VideoExtensions[ext] {
		return KindVideo
	}
	return KindUnknown
}

// MimeType returns the MIME type for an extension (any case, no dot).
// Returns "application/octet-stream" if the extension is not recognized.
func MimeType(ext string) string {
	if mime, ok := MimeTypes[strings.ToLower(ext)]; ok {
		return mime
	}
	return "application/octet-stream"
}

// MimeFamily returns the "image/*" or "video/*" filter for a kind.
func MimeFamily(kind Kind) string {
	switch kind {
	case KindImage:
		return "image/*"
	case KindVideo:
		return "video/*"
	default:
		return "*/*"
	}
}

// MatchesMime reports whether the MIME type of path's extension falls under
// filter, which is either an exact type or a family such as "image/*".
func MatchesMime(path, filter string) bool {
	if filter == "*/*" || filter == "*" {
		return true
	}
	ext, ok := Extension(path)
	if !ok {
		return false
	}
	mime, known := MimeTypes[strings.ToLower(ext)]
	if !known {
		return false
	}
	if family, found := strings.CutSuffix(filter, "/*"); found {
		return strings.HasPrefix(mime, family+"/")
	}
	return mime == filter
}

// FilterPatterns returns glob patterns ("*.jpg", ...) for the extensions of
// kind, in both lower and upper case, sorted for stable dialog filters.
func FilterPatterns(kind Kind) []string {
	var exts map[string]bool
	switch kind {
	case KindImage:
		exts = ImageExtensions
	case KindVideo:
		exts = VideoExtensions
	default:
		return []string{"*"}
	}

	patterns := make([]string, 0, len(exts)*2)
	for _, ext := range sortedKeys(exts) {
		patterns = append(patterns, "*."+ext, "*."+strings.ToUpper(ext))
	}
	return patterns
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
