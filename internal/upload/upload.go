// Package upload validates and reads local files attached to a message.
package upload

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"chatapp/internal/models"
)

// MaxFileSize is the per-file attachment cap.
const MaxFileSize = 5 * 1024 * 1024

// allowedMimes are content types accepted regardless of extension.
var allowedMimes = map[string]bool{
	"text/plain":             true,
	"text/markdown":          true,
	"text/javascript":        true,
	"application/javascript": true,
	"application/json":       true,
	"text/x-python":          true,
	"application/x-python":   true,
	"text/csv":               true,
	"text/html":              true,
	"text/css":               true,
	"text/xml":               true,
	"application/xml":        true,
}

// allowedExts cover source files whose MIME type is unregistered on many
// systems.
var allowedExts = map[string]bool{
	".js":   true,
	".py":   true,
	".jsx":  true,
	".ts":   true,
	".tsx":  true,
	".md":   true,
	".txt":  true,
	".csv":  true,
	".html": true,
	".css":  true,
	".xml":  true,
}

var extIcons = map[string]string{
	".js":   "📄",
	".jsx":  "📄",
	".ts":   "📄",
	".tsx":  "📄",
	".py":   "🐍",
	".md":   "📝",
	".txt":  "📃",
	".json": "🗂",
	".csv":  "🗂",
	".html": "🌐",
	".css":  "🎨",
}

// ValidationError describes why one or more files were rejected. Reasons
// are phrased for direct display.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, ". ")
}

// Allowed reports whether a file with this name may be attached.
func Allowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if allowedExts[ext] {
		return true
	}
	mt := mime.TypeByExtension(ext)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return allowedMimes[mt]
}

// Read loads one file from disk as an attachment, enforcing the type
// allow-list and the size cap.
func Read(path string) (models.UploadedFile, error) {
	name := filepath.Base(path)

	var reasons []string
	if !Allowed(name) {
		reasons = append(reasons, fmt.Sprintf("%s: unsupported file type", name))
	}

	info, err := os.Stat(path)
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("%s: cannot read file", name))
		return models.UploadedFile{}, &ValidationError{Reasons: reasons}
	}
	if info.Size() > MaxFileSize {
		reasons = append(reasons, fmt.Sprintf("%s: exceeds the %s limit", name, FormatSize(MaxFileSize)))
	}
	if len(reasons) > 0 {
		return models.UploadedFile{}, &ValidationError{Reasons: reasons}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.UploadedFile{}, &ValidationError{
			Reasons: []string{fmt.Sprintf("%s: cannot read file", name)},
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	mt := mime.TypeByExtension(ext)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	if mt == "" {
		mt = "text/plain"
	}

	return models.UploadedFile{
		ID:         uuid.NewString(),
		Name:       name,
		Mime:       mt,
		Size:       info.Size(),
		Content:    string(data),
		UploadedAt: time.Now(),
	}, nil
}

// Icon returns a display glyph for the file's extension.
func Icon(name string) string {
	if icon, ok := extIcons[strings.ToLower(filepath.Ext(name))]; ok {
		return icon
	}
	return "📎"
}

// FormatSize renders a byte count for display.
func FormatSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
