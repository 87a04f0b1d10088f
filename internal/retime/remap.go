package retime

import (
	"errors"
	"fmt"
	"time"

	"github.com/Petkomat/srt-manipulator/internal/subtitle"
	"github.com/Petkomat/srt-manipulator/internal/timing"
)

// ErrUnorderedCues is returned when cue boundary times decrease in file
// order. The remapper's forward-only cursor would silently mis-map such
// input.
var ErrUnorderedCues = errors.New("cue timestamps are not in chronological order")

// ErrNoCues is returned for a subtitle without any entries.
var ErrNoCues = errors.New("subtitle contains no cues")

// Span is the closed interval covered by a file's cue times.
type Span struct {
	Start time.Duration
	End   time.Duration
}

// CueSpan validates that cue boundary times never decrease in start-then-end
// order and returns the span they cover.
func CueSpan(entries []subtitle.Entry) (Span, error) {
	if len(entries) == 0 {
		return Span{}, ErrNoCues
	}

	last := entries[0].StartTime
	for _, e := range entries {
		for _, t := range [2]time.Duration{e.StartTime, e.EndTime} {
			if t < last {
				return Span{}, fmt.Errorf("%w: %s after %s",
					ErrUnorderedCues, timing.Format(t), timing.Format(last))
			}
			last = t
		}
	}

	return Span{Start: entries[0].StartTime, End: last}, nil
}

// Remap returns a copy of entries with every start and end time mapped
// through the piecewise-linear function defined by the extended anchors.
// Text and sequence numbers are untouched.
//
// A single cursor walks the anchor intervals forward across all cues in
// start-then-end order and never moves back; CueSpan's ordering check makes
// that sound. Anchors must be sorted ascending by old time and, per the
// Extend contract, bracket every cue time (except before the first anchor in
// LINEAR mode, where the first interval extrapolates).
func Remap(entries []subtitle.Entry, anchors []Anchor) ([]subtitle.Entry, error) {
	if len(anchors) < 2 {
		return nil, ErrInsufficientAnchors
	}

	cursor := 0
	mapTime := func(t time.Duration) (time.Duration, error) {
		for cursor+2 < len(anchors) && t > anchors[cursor+1].Old {
			cursor++
		}
		return timing.Interpolate(
			anchors[cursor].Old, anchors[cursor].New,
			anchors[cursor+1].Old, anchors[cursor+1].New,
			t,
		)
	}

	out := make([]subtitle.Entry, len(entries))
	for i, entry := range entries {
		start, err := mapTime(entry.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := mapTime(entry.EndTime)
		if err != nil {
			return nil, err
		}
		entry.StartTime = start
		entry.EndTime = end
		out[i] = entry
	}

	return out, nil
}
