// Package notefile writes the note out as a plain-text file and reads one
// back in.
package notefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// isoLayout matches a JavaScript-style ISO 8601 UTC timestamp with
// millisecond precision.
const isoLayout = "2006-01-02T15:04:05.000Z"

// maxCollisionSuffix bounds how many numbered variants Export tries.
const maxCollisionSuffix = 1000

// TextExtensions lists the suffixes the import picker offers.
var TextExtensions = []string{".txt", ".text", ".md", ".log"}

// FileName returns the export name for a note saved at now:
// memo_{ISO 8601 with ':' replaced by '-'}.txt
func FileName(now time.Time) string {
	stamp := strings.ReplaceAll(now.UTC().Format(isoLayout), ":", "-")
	return "memo_" + stamp + ".txt"
}

// Export writes content verbatim into dir and returns the file path. An
// existing file is never overwritten; a numeric suffix is added instead.
func Export(dir, content string, now time.Time) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("export directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir %q: %w", dir, err)
	}

	name := FileName(now)
	base := strings.TrimSuffix(name, ".txt")
	for i := 0; i < maxCollisionSuffix; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d).txt", base, i)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create export file %q: %w", path, err)
		}
		if _, err := f.WriteString(content); err != nil {
			f.Close()
			return "", fmt.Errorf("write export file %q: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close export file %q: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("export %q: too many files with the same name", name)
}

// Import reads the whole file at path as text.
func Import(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("import %q: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("import %q: is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("import %q: %w", path, err)
	}
	return string(data), nil
}

// IsTextFile reports whether path has one of TextExtensions.
func IsTextFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range TextExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
