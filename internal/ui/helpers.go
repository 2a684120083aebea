package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/mattn/go-runewidth"

	"chatapp/internal/upload"
)

// GetFileSuggestions returns attachable files matching a prefix, supporting
// subdirectory paths and recursive search. Only files that pass the upload
// allow-list are offered.
func GetFileSuggestions(prefix string) []string {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}

	if strings.Contains(prefix, "/") {
		return getDirectorySuggestions(cwd, prefix)
	}

	return getRecursiveSuggestions(cwd, prefix)
}

// getDirectorySuggestions handles paths like "internal/chat/"
func getDirectorySuggestions(cwd, prefix string) []string {
	dir := ""
	filePrefix := prefix

	if idx := strings.LastIndex(prefix, "/"); idx != -1 {
		dir = prefix[:idx+1]
		filePrefix = prefix[idx+1:]
	}

	searchDir := cwd
	if dir != "" {
		searchDir = filepath.Join(cwd, dir)
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil
	}

	var suggestions []string
	lowerFilePrefix := strings.ToLower(filePrefix)

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(filePrefix, ".") {
			continue
		}
		if !entry.IsDir() && !upload.Allowed(name) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), lowerFilePrefix) {
			suggestions = append(suggestions, dir+name)
		}
	}

	return sortAndLimitSuggestions(cwd, suggestions)
}

// getRecursiveSuggestions searches attachable files recursively for matches
func getRecursiveSuggestions(cwd, prefix string) []string {
	var suggestions []string
	lowerPrefix := strings.ToLower(prefix)

	filepath.Walk(cwd, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		name := info.Name()
		if info.IsDir() {
			if strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor" || name == "__pycache__" {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			return nil
		}
		if !upload.Allowed(name) {
			return nil
		}

		if strings.Contains(strings.ToLower(name), lowerPrefix) {
			relPath, _ := filepath.Rel(cwd, path)
			suggestions = append(suggestions, relPath)
		}

		if len(suggestions) >= 20 {
			return filepath.SkipAll
		}

		return nil
	})

	return sortAndLimitSuggestions(cwd, suggestions)
}

// sortAndLimitSuggestions sorts shallow paths first, then alphabetically,
// and limits results
func sortAndLimitSuggestions(cwd string, suggestions []string) []string {
	sort.Slice(suggestions, func(i, j int) bool {
		iDepth := strings.Count(suggestions[i], "/")
		jDepth := strings.Count(suggestions[j], "/")
		if iDepth != jDepth {
			return iDepth < jDepth
		}
		return strings.ToLower(suggestions[i]) < strings.ToLower(suggestions[j])
	})

	if len(suggestions) > 10 {
		suggestions = suggestions[:10]
	}

	return suggestions
}

// ExtractFileMentions parses @filename mentions from input and returns
// clean text + the mentioned paths that exist on disk.
func ExtractFileMentions(input string) (cleanInput string, files []string) {
	matches := MentionRE.FindAllStringSubmatch(input, -1)

	seen := make(map[string]bool)
	for _, match := range matches {
		var filename string
		if match[2] != "" {
			filename = match[2] // Quoted path
		} else {
			filename = match[3] // Unquoted path
		}
		if filename != "" && !seen[filename] {
			if _, err := os.Stat(filename); err == nil {
				files = append(files, filename)
				seen[filename] = true
			}
		}
	}

	cleanInput = MentionRE.ReplaceAllString(input, "")
	cleanInput = strings.TrimSpace(cleanInput)
	cleanInput = strings.Join(strings.Fields(cleanInput), " ")

	return cleanInput, files
}

// GetAtPosition finds the @ mention being typed at cursor position
func GetAtPosition(input string, cursorPos int) (prefix string, startPos int, found bool) {
	if cursorPos > len(input) {
		cursorPos = len(input)
	}

	for i := cursorPos - 1; i >= 0; i-- {
		ch := input[i]
		if ch == '@' {
			prefix = input[i+1 : cursorPos]
			return prefix, i, true
		}
		if ch == ' ' || ch == '\n' || ch == '\t' {
			return "", 0, false
		}
	}
	return "", 0, false
}

func TextareaCursorIndex(t textarea.Model) int {
	value := t.Value()
	row := t.Line()
	li := t.LineInfo()
	col := li.StartColumn + li.ColumnOffset
	return cursorIndexFromRowCol(value, row, col)
}

func TextareaCursorFromIndex(value string, index int) (row int, col int) {
	if index < 0 {
		index = 0
	}
	if index > len(value) {
		index = len(value)
	}

	lines := strings.Split(value, "\n")
	pos := 0
	for i, line := range lines {
		lineLen := len(line)
		if index <= pos+lineLen {
			row = i
			col = runeIndexForByteIndex(line, index-pos)
			return row, col
		}
		pos += lineLen + 1
	}

	if len(lines) == 0 {
		return 0, 0
	}
	row = len(lines) - 1
	col = utf8.RuneCountInString(lines[row])
	return row, col
}

func SetTextareaCursor(t *textarea.Model, row int, col int) {
	lineCount := t.LineCount()
	if lineCount == 0 {
		t.SetCursor(0)
		return
	}
	if row < 0 {
		row = 0
	}
	if row >= lineCount {
		row = lineCount - 1
	}

	for i := 0; i < 10000 && t.Line() > 0; i++ {
		t.CursorUp()
	}
	for i := 0; i < 10000 && t.Line() < row; i++ {
		t.CursorDown()
	}
	for i := 0; i < 10000 && t.Line() > row; i++ {
		t.CursorUp()
	}

	t.SetCursor(col)
}

func cursorIndexFromRowCol(value string, row int, col int) int {
	lines := strings.Split(value, "\n")
	if len(lines) == 0 {
		return 0
	}
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}

	index := 0
	for i := 0; i < row; i++ {
		index += len(lines[i]) + 1
	}
	index += byteIndexForRuneColumn(lines[row], col)
	return index
}

func byteIndexForRuneColumn(s string, col int) int {
	if col <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count >= col {
			return i
		}
		count++
	}
	return len(s)
}

func runeIndexForByteIndex(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if i >= idx {
			return count
		}
		count++
	}
	return count
}

func WrappedLineCount(value string, width int) int {
	if width <= 0 {
		return 1
	}
	lines := strings.Split(value, "\n")
	if len(lines) == 0 {
		return 1
	}
	count := 0
	for _, line := range lines {
		w := runewidth.StringWidth(line)
		if w == 0 {
			count++
			continue
		}
		count += (w-1)/width + 1
	}
	return count
}

func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

func RelativeTime(t time.Time) string {
	d := time.Since(t)
	if d < 0 {
		d = -d
	}
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", mins)
	}
	if d < 24*time.Hour {
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1 hr ago"
		}
		return fmt.Sprintf("%d hrs ago", hrs)
	}
	days := int(d.Hours() / 24)
	if days < 14 {
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
	weeks := days / 7
	if weeks == 1 {
		return "1 week ago"
	}
	return fmt.Sprintf("%d weeks ago", weeks)
}
