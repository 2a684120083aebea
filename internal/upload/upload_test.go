package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAllowed(t *testing.T) {
	for _, name := range []string{
		"main.go.txt", "app.js", "mod.py", "view.jsx", "api.ts", "page.tsx",
		"README.md", "notes.txt", "data.csv", "page.html", "style.css", "feed.xml",
	} {
		assert.True(t, Allowed(name), name)
	}
	for _, name := range []string{"binary.exe", "image.png", "archive.zip", "noext"} {
		assert.False(t, Allowed(name), name)
	}
}

func TestReadValidFile(t *testing.T) {
	path := writeTemp(t, "hello.txt", "file body")

	f, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "hello.txt", f.Name)
	assert.Equal(t, "file body", f.Content)
	assert.Equal(t, int64(len("file body")), f.Size)
	assert.NotEmpty(t, f.ID)
	assert.NotEmpty(t, f.Mime)
	assert.False(t, f.UploadedAt.IsZero())
}

func TestReadDistinctIDs(t *testing.T) {
	path := writeTemp(t, "a.txt", "x")
	f1, err := Read(path)
	require.NoError(t, err)
	f2, err := Read(path)
	require.NoError(t, err)
	assert.NotEqual(t, f1.ID, f2.ID)
}

func TestReadRejectsUnsupportedType(t *testing.T) {
	path := writeTemp(t, "image.png", "not really a png")

	_, err := Read(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "image.png: unsupported file type")
}

func TestReadRejectsOversizedFile(t *testing.T) {
	path := writeTemp(t, "big.txt", strings.Repeat("a", MaxFileSize+1))

	_, err := Read(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "big.txt: exceeds the 5.0 MB limit")
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "gone.txt"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "cannot read file")
}

func TestValidationErrorJoinsReasons(t *testing.T) {
	err := &ValidationError{Reasons: []string{"a.png: unsupported file type", "b.txt: exceeds the 5.0 MB limit"}}
	assert.Equal(t, "a.png: unsupported file type. b.txt: exceeds the 5.0 MB limit", err.Error())
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "5.0 MB", FormatSize(5*1024*1024))
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "🐍", Icon("script.py"))
	assert.Equal(t, "📝", Icon("README.md"))
	assert.Equal(t, "📎", Icon("unknown.bin"))
}
