package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
)

// line is one paragraph of a document body.
type line struct {
	text string
	bold bool
}

// writeDocx renders a titled document. Multi-line text becomes one
// paragraph per line so transcripts keep their shape.
func writeDocx(path, title string, lines []line) error {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(title).Size("28").Bold()

	for _, l := range lines {
		if l.text == "" {
			doc.AddParagraph()
			continue
		}
		for _, part := range strings.Split(l.text, "\n") {
			run := doc.AddParagraph().AddText(part)
			if l.bold {
				run.Bold()
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	defer f.Close()
	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("encode docx: %w", err)
	}
	return nil
}
