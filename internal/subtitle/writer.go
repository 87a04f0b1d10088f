package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Petkomat/srt-manipulator/internal/timing"
)

// SubRip format
type SRTWriter struct {
	src sourceEncoding
}

// WebVTT format
type VTTWriter struct {
	src sourceEncoding
}

// writes the subtitle to an SRT file in the encoding the input was read with
func (w *SRTWriter) Write(sub *Subtitle, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	for _, entry := range sub.Entries {
		// sequence number as parsed, never renumbered
		sb.WriteString(fmt.Sprintf("%d\n", entry.Index))

		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			timing.Format(entry.StartTime),
			timing.Arrow,
			timing.Format(entry.EndTime)))

		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	raw, err := w.src.encode(sb.String())
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// writes the subtitle to a VTT file in the encoding the input was read with
func (w *VTTWriter) Write(sub *Subtitle, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for _, entry := range sub.Entries {
		sb.WriteString(fmt.Sprintf("%d\n", entry.Index))

		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			formatVTTTime(entry.StartTime),
			timing.Arrow,
			formatVTTTime(entry.EndTime)))

		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	raw, err := w.src.encode(sb.String())
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

func formatVTTTime(d time.Duration) string {
	return strings.Replace(timing.Format(d), ",", ".", 1)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
