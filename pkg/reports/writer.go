package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/richard-senior/pinstats/internal/logger"
)

// WriteReport writes a rendered report under dir, creating directories as
// needed and ensuring the file ends with a newline. Returns the full path.
func WriteReport(dir, name, content string) (string, error) {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return WriteBytes(dir, name, []byte(content))
}

// WriteBytes writes raw report bytes (chart PNGs and the like) under dir
func WriteBytes(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("wrote", path)
	return path, nil
}

// Slug makes a string safe for a file name: lower-cased, runs of anything
// outside [a-z0-9] collapsed to single hyphens
func Slug(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
