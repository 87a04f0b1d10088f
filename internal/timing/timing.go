package timing

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Tokens of the subtitle and corrections wire formats.
const (
	// Arrow separates the start and end timestamps of a cue timing line.
	Arrow = "-->"
	// Separator splits an old@new pair in a corrections file.
	Separator = "@"
)

// ErrDegenerateInterval is returned when interpolation is attempted across
// two reference points with the same domain value.
var ErrDegenerateInterval = errors.New("interpolation interval has zero width")

// FormatError reports a malformed timestamp, cue block or correction line.
type FormatError struct {
	File   string
	Line   int
	Detail string
}

func (e *FormatError) Error() string {
	msg := e.Detail
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.File != "" {
		msg = fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

var timestampRegex = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)

// Parse converts an HH:MM:SS,mmm timestamp into an offset from file start.
func Parse(text string) (time.Duration, error) {
	matches := timestampRegex.FindStringSubmatch(strings.TrimSpace(text))
	if matches == nil {
		return 0, &FormatError{
			Detail: fmt.Sprintf("malformed timestamp %q, want HH:MM:SS,mmm", text),
		}
	}

	h, _ := strconv.Atoi(matches[1])
	m, _ := strconv.Atoi(matches[2])
	s, _ := strconv.Atoi(matches[3])
	ms, _ := strconv.Atoi(matches[4])

	if m > 59 || s > 59 {
		return 0, &FormatError{
			Detail: fmt.Sprintf("timestamp %q has out of range minutes or seconds", text),
		}
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// Format renders a timestamp as HH:MM:SS,mmm. Sub-millisecond precision is
// truncated, never rounded. Times shifted before the start of the file clamp
// to zero.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d -= d % time.Millisecond

	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	ms := int(d/time.Millisecond) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// Interpolate evaluates the linear function through (x0, y0) and (x1, y1) at
// x. The point may lie outside [x0, x1], in which case the function is
// extrapolated.
func Interpolate(x0, y0, x1, y1, x time.Duration) (time.Duration, error) {
	if x1 == x0 {
		return 0, ErrDegenerateInterval
	}
	proportion := float64(x-x0) / float64(x1-x0)
	// round to the nanosecond so float noise cannot leak into the formatted
	// millisecond
	return y0 + time.Duration(math.Round(proportion*float64(y1-y0))), nil
}
