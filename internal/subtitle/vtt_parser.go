package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Petkomat/srt-manipulator/internal/timing"
)

type VTTFile struct {
	entries []Entry
	src     sourceEncoding
}

// WebVTT timestamps use a dot before the milliseconds and may omit hours.
var vttTimestampRegex = regexp.MustCompile(`^(?:(\d{2,}):)?(\d{2}):(\d{2})\.(\d{3})$`)

func parseVTTFile(path string) (*VTTFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VTT file: %w", err)
	}

	content, src, err := detectAndDecode(raw)
	if err != nil {
		return nil, err
	}

	entries, err := parseVTT(path, content)
	if err != nil {
		return nil, err
	}

	return &VTTFile{entries: entries, src: src}, nil
}

func parseVTT(path, content string) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(content))

	var current *Entry
	var textLines []string
	lineNum := 0
	entryIndex := 0

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.Join(textLines, "\n")
		entries = append(entries, *current)
		current = nil
		textLines = nil
	}

	skipBlock := func() {
		for scanner.Scan() {
			lineNum++
			if strings.TrimSpace(scanner.Text()) == "" {
				break
			}
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
			if !strings.HasPrefix(strings.TrimSpace(line), "WEBVTT") {
				return nil, &timing.FormatError{
					File:   path,
					Line:   lineNum,
					Detail: "missing WEBVTT header",
				}
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "NOTE") || strings.HasPrefix(trimmed, "STYLE") {
			skipBlock()
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		if strings.Contains(line, timing.Arrow) {
			flush()
			start, end, err := parseVTTTimingLine(line)
			if err != nil {
				return nil, locate(err, path, lineNum)
			}
			entryIndex++
			current = &Entry{
				Index:     entryIndex,
				StartTime: start,
				EndTime:   end,
			}
			continue
		}

		// Lines before a timing line are cue identifiers; inside a cue they
		// are text.
		if current != nil {
			textLines = append(textLines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT file: %w", err)
	}

	flush()
	return entries, nil
}

func parseVTTTimingLine(line string) (start, end time.Duration, err error) {
	parts := strings.Split(line, timing.Arrow)
	if len(parts) != 2 {
		return 0, 0, &timing.FormatError{
			Detail: fmt.Sprintf("timing line %q does not contain %q", line, timing.Arrow),
		}
	}
	// Trailing cue settings (position, alignment) follow the end timestamp.
	endField := strings.TrimSpace(parts[1])
	if i := strings.IndexAny(endField, " \t"); i >= 0 {
		endField = endField[:i]
	}
	start, err = parseVTTTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err = parseVTTTimestamp(endField)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseVTTTimestamp(text string) (time.Duration, error) {
	matches := vttTimestampRegex.FindStringSubmatch(text)
	if matches == nil {
		return 0, &timing.FormatError{
			Detail: fmt.Sprintf("malformed timestamp %q, want [HH:]MM:SS.mmm", text),
		}
	}

	h := 0
	if matches[1] != "" {
		h, _ = strconv.Atoi(matches[1])
	}
	m, _ := strconv.Atoi(matches[2])
	s, _ := strconv.Atoi(matches[3])
	ms, _ := strconv.Atoi(matches[4])

	if m > 59 || s > 59 {
		return 0, &timing.FormatError{
			Detail: fmt.Sprintf("timestamp %q has out of range minutes or seconds", text),
		}
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

func (f *VTTFile) Format() Format {
	return FormatVTT
}

func (f *VTTFile) Encoding() string {
	return f.src.name
}

func (f *VTTFile) Subtitle() *Subtitle {
	return &Subtitle{
		Entries: f.entries,
		Format:  string(FormatVTT),
	}
}

func (f *VTTFile) SetTimes(index int, start, end time.Duration) error {
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

func (f *VTTFile) Write(path string) error {
	writer := &VTTWriter{src: f.src}
	return writer.Write(f.Subtitle(), path)
}
