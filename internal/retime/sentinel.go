package retime

import (
	"fmt"

	"github.com/Petkomat/srt-manipulator/internal/timing"
)

// Extend grows the anchor sequence so its old-time span brackets every cue
// time in span.
//
// TRANSLATION applies the sole anchor's delta to synthetic anchors at the
// span edges, keeping the whole timeline a uniform shift; the extension is
// exact so no warning is issued. LINEAR leaves the start side alone (the
// remapper extrapolates the first interval backwards) and appends an anchor
// at the span end computed from the last two anchors already present, so the
// remapper's forward cursor always finds a bracketing pair. Both LINEAR
// cases come back as warnings.
//
// Every sentinel is only added under a strict inequality, so adjacent anchors
// always have distinct old times.
func Extend(anchors []Anchor, span Span, mode Mode) ([]Anchor, []string, error) {
	if len(anchors) == 0 {
		return nil, nil, ErrInsufficientAnchors
	}

	var warnings []string
	switch mode {
	case ModeTranslation:
		dt := anchors[0].New - anchors[0].Old
		if span.Start < anchors[0].Old {
			sentinel := Anchor{Old: span.Start, New: span.Start + dt}
			anchors = append([]Anchor{sentinel}, anchors...)
		}
		if span.End > anchors[len(anchors)-1].Old {
			anchors = append(anchors, Anchor{Old: span.End, New: span.End + dt})
		}

	case ModeLinear:
		if len(anchors) < 2 {
			return nil, nil, ErrInsufficientAnchors
		}
		if span.Start < anchors[0].Old {
			warnings = append(warnings, fmt.Sprintf(
				"first subtitle start (%s) precedes the first corrected time (%s); extrapolating at the beginning",
				timing.Format(span.Start),
				timing.Format(anchors[0].Old),
			))
		}
		if span.End > anchors[len(anchors)-1].Old {
			a := anchors[len(anchors)-2]
			b := anchors[len(anchors)-1]
			extrapolated, err := timing.Interpolate(a.Old, a.New, b.Old, b.New, span.End)
			if err != nil {
				return nil, nil, fmt.Errorf(
					"failed to extrapolate past the last corrected time: %w", err)
			}
			anchors = append(anchors, Anchor{Old: span.End, New: extrapolated})
			warnings = append(warnings, fmt.Sprintf(
				"last subtitle end (%s) exceeds the last corrected time (%s); extrapolating at the end",
				timing.Format(span.End),
				timing.Format(b.Old),
			))
		}

	default:
		return nil, nil, fmt.Errorf("unknown correction mode %q", mode)
	}

	return anchors, warnings, nil
}
