// Package preview classifies file content types into rendering categories
// and decides how a file's bytes should be transferred for inline viewing.
package preview

import "strings"

// Category drives how a file is rendered in a browser preview.
type Category string

const (
	CategoryImage  Category = "image"
	CategoryPDF    Category = "pdf"
	CategoryVideo  Category = "video"
	CategoryAudio  Category = "audio"
	CategoryText   Category = "text"
	CategoryBinary Category = "binary"
)

// DefaultContentType is served when a file carries no usable declared type.
const DefaultContentType = "application/octet-stream"

// Strategy describes how to serve a file for preview.
type Strategy struct {
	Category Category

	// Text reports whether content should be decoded and served as UTF-8 text
	Text bool

	// ContentType is the full response header value, charset suffix included
	ContentType string
}

// textMIMETypes are MIME fragments treated as text regardless of extension.
var textMIMETypes = []string{
	"text/",
	"application/json",
	"application/javascript",
	"application/x-javascript",
	"application/xml",
	"application/x-sh",
	"application/x-csh",
	"application/x-python",
}

// textExtensions is the allow-list of known source/text file extensions.
var textExtensions = map[string]bool{
	".txt": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".json": true, ".xml": true, ".html": true, ".htm": true,
	".css": true, ".scss": true, ".sass": true, ".less": true,
	".md": true, ".markdown": true, ".yml": true, ".yaml": true,
	".csv": true, ".log": true, ".conf": true, ".config": true,
	".env": true, ".gitignore": true, ".gitattributes": true,
	".sh": true, ".bash": true, ".zsh": true, ".fish": true,
	".py": true, ".rb": true, ".java": true, ".c": true, ".cpp": true,
	".h": true, ".hpp": true, ".php": true, ".sql": true,
	".vue": true, ".svelte": true, ".go": true, ".rs": true,
	".swift": true, ".kt": true, ".dart": true, ".lua": true,
	".pl": true, ".r": true, ".m": true, ".mm": true,
	".gradle": true, ".properties": true,
}

// previewableMIMETypes gates which content types may be rendered inline at all.
var previewableMIMETypes = []string{
	"image/",
	"text/",
	"application/json",
	"application/javascript",
	"application/x-javascript",
	"application/xml",
	"application/x-sh",
	"application/x-csh",
	"application/x-python",
	"application/pdf",
	"video/",
	"audio/",
}

// IsText reports whether the content type or extension identifies text content.
func IsText(contentType, ext string) bool {
	for _, mime := range textMIMETypes {
		if contentType != "" && strings.Contains(contentType, mime) {
			return true
		}
	}
	return textExtensions[strings.ToLower(ext)]
}

// IsPreviewable reports whether a content type is permitted for inline preview.
// This gate is independent of category classification: a non-previewable type
// must be refused, not served as binary.
func IsPreviewable(contentType string) bool {
	if contentType == "" {
		return false
	}
	for _, mime := range previewableMIMETypes {
		if strings.Contains(contentType, mime) {
			return true
		}
	}
	return false
}

// Categorize maps a content type and file extension to a rendering category.
// Classification is checked in priority order; anything unmatched is binary.
func Categorize(contentType, ext string) Category {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return CategoryImage
	case strings.Contains(contentType, "pdf"):
		return CategoryPDF
	case strings.HasPrefix(contentType, "video/"):
		return CategoryVideo
	case strings.HasPrefix(contentType, "audio/"):
		return CategoryAudio
	case IsText(contentType, ext):
		return CategoryText
	default:
		return CategoryBinary
	}
}

// Resolve determines the serving strategy for a content type and extension.
// Text categories are decoded and served as UTF-8; every other category is
// served as raw bytes under the declared type, or DefaultContentType when
// no type was declared.
func Resolve(contentType, ext string) Strategy {
	category := Categorize(contentType, ext)
	text := category == CategoryText

	header := contentType
	if header == "" {
		if text {
			header = "text/plain"
		} else {
			header = DefaultContentType
		}
	}
	if text {
		header += "; charset=utf-8"
	}

	return Strategy{
		Category:    category,
		Text:        text,
		ContentType: header,
	}
}
