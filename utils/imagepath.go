package utils

import (
	"strings"
)

// UploadPrefix marks image references that point at uploaded objects
const UploadPrefix = "uploads/"

// IsInlineImage reports whether ref can be used by a client as-is (data URI or absolute URL)
func IsInlineImage(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://")
}

// IsUploadKey reports whether ref is a storage key produced by an image upload
func IsUploadKey(ref string) bool {
	return strings.HasPrefix(ref, UploadPrefix)
}

// AssetKey normalizes a stored asset path such as "../Assets/sofa/ClassicSofa.jpg"
// to its path below the assets folder ("sofa/ClassicSofa.jpg"). The folder name
// matches in any case; the remainder keeps its casing so it names the real file.
func AssetKey(ref string) string {
	normalized := strings.ReplaceAll(ref, "\\", "/")
	for {
		switch {
		case strings.HasPrefix(normalized, "../"):
			normalized = normalized[3:]
		case strings.HasPrefix(normalized, "./"):
			normalized = normalized[2:]
		case strings.HasPrefix(normalized, "/"):
			normalized = normalized[1:]
		default:
			if idx := strings.Index(strings.ToLower(normalized), "assets/"); idx >= 0 {
				return normalized[idx+len("assets/"):]
			}
			return normalized
		}
	}
}

// AssetURL returns the public URL of a bundled asset
func AssetURL(ref string) string {
	if ref == "" {
		return ""
	}
	return "/assets/" + AssetKey(ref)
}
