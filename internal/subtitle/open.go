package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// File is a parsed subtitle file that remembers its input encoding so the
// retimed output can be written the same way.
type File interface {
	Format() Format
	Encoding() string
	Subtitle() *Subtitle
	SetTimes(index int, start, end time.Duration) error
	Write(path string) error
}

func Open(path string) (File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return parseSRTFile(path)
	case ".vtt":
		return parseVTTFile(path)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", ext)
	}
}
