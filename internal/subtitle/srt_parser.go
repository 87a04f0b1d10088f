package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Petkomat/srt-manipulator/internal/timing"
)

type SRTFile struct {
	entries []Entry
	src     sourceEncoding
}

func parseSRTFile(path string) (*SRTFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}

	content, src, err := detectAndDecode(raw)
	if err != nil {
		return nil, err
	}

	entries, err := parseSRT(path, content)
	if err != nil {
		return nil, err
	}

	return &SRTFile{entries: entries, src: src}, nil
}

// parseSRT reads blank-line separated cue blocks: sequence number, timing
// line, then text. Any structural defect is a fatal FormatError naming the
// offending line.
func parseSRT(path, content string) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(content))

	var current *Entry
	var textLines []string
	haveTiming := false
	lineNum := 0

	flush := func() error {
		if current == nil {
			return nil
		}
		if !haveTiming {
			return &timing.FormatError{
				File:   path,
				Line:   lineNum,
				Detail: fmt.Sprintf("cue %d has no timing line", current.Index),
			}
		}
		current.Text = strings.Join(textLines, "\n")
		entries = append(entries, *current)
		current = nil
		textLines = nil
		haveTiming = false
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		if current == nil {
			index, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				return nil, &timing.FormatError{
					File:   path,
					Line:   lineNum,
					Detail: fmt.Sprintf("expected cue number, got %q", line),
				}
			}
			current = &Entry{Index: index}
			continue
		}

		if !haveTiming {
			start, end, err := parseTimingLine(line)
			if err != nil {
				return nil, locate(err, path, lineNum)
			}
			current.StartTime = start
			current.EndTime = end
			haveTiming = true
			continue
		}

		textLines = append(textLines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return entries, nil
}

// parseTimingLine splits "<start> --> <end>" and parses both timestamps.
func parseTimingLine(line string) (start, end time.Duration, err error) {
	parts := strings.Split(line, timing.Arrow)
	if len(parts) != 2 {
		return 0, 0, &timing.FormatError{
			Detail: fmt.Sprintf("timing line %q does not contain %q", line, timing.Arrow),
		}
	}
	start, err = timing.Parse(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err = timing.Parse(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// locate stamps a FormatError with the file and line it came from.
func locate(err error, file string, line int) error {
	var fe *timing.FormatError
	if errors.As(err, &fe) {
		fe.File = file
		fe.Line = line
	}
	return err
}

func (f *SRTFile) Format() Format {
	return FormatSRT
}

func (f *SRTFile) Encoding() string {
	return f.src.name
}

func (f *SRTFile) Subtitle() *Subtitle {
	return &Subtitle{
		Entries: f.entries,
		Format:  string(FormatSRT),
	}
}

func (f *SRTFile) SetTimes(index int, start, end time.Duration) error {
	if index < 0 || index >= len(f.entries) {
		return fmt.Errorf(
			"index %d out of range (0-%d)",
			index,
			len(f.entries)-1,
		)
	}
	f.entries[index].StartTime = start
	f.entries[index].EndTime = end
	return nil
}

func (f *SRTFile) Write(path string) error {
	writer := &SRTWriter{src: f.src}
	return writer.Write(f.Subtitle(), path)
}
