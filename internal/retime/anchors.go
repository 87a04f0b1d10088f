package retime

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Petkomat/srt-manipulator/internal/timing"
)

// Mode selects how correction anchors are produced and extended.
type Mode string

const (
	// ModeLinear interpolates between anchors loaded from a corrections file.
	ModeLinear Mode = "LINEAR"
	// ModeTranslation shifts every timestamp by a constant offset.
	ModeTranslation Mode = "TRANSLATION"
)

// translationRef positions the synthetic offset anchor. Any instant works
// since a translation only depends on the delta; 100h lies past the largest
// parseable timestamp (99:59:59,999), so the anchor never splits the cue span.
const translationRef = 100 * time.Hour

// ErrInsufficientAnchors is returned in LINEAR mode with fewer than two
// anchor points.
var ErrInsufficientAnchors = errors.New("linear corrections need at least two anchor points")

// Anchor relocates a cue boundary originally at Old to New.
type Anchor struct {
	Old time.Duration
	New time.Duration
}

// ParseCorrections loads old@new anchor pairs, one per line, and returns them
// sorted ascending by old time. Input order is kept among equal old times.
func ParseCorrections(file, content string) ([]Anchor, error) {
	var anchors []Anchor
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, timing.Separator)
		if len(parts) != 2 {
			return nil, &timing.FormatError{
				File: file,
				Line: i + 1,
				Detail: fmt.Sprintf(
					"line %q does not contain time separator %q",
					line,
					timing.Separator,
				),
			}
		}

		oldTime, err := timing.Parse(parts[0])
		if err != nil {
			return nil, locate(err, file, i+1)
		}
		newTime, err := timing.Parse(parts[1])
		if err != nil {
			return nil, locate(err, file, i+1)
		}

		anchors = append(anchors, Anchor{Old: oldTime, New: newTime})
	}

	sort.SliceStable(anchors, func(a, b int) bool {
		return anchors[a].Old < anchors[b].Old
	})
	return anchors, nil
}

// OffsetAnchors builds the single TRANSLATION anchor for a constant shift.
func OffsetAnchors(offset time.Duration) []Anchor {
	return []Anchor{{Old: translationRef, New: translationRef + offset}}
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
