package retime

import (
	"errors"
	"testing"
	"time"

	"github.com/Petkomat/srt-manipulator/internal/subtitle"
	"github.com/Petkomat/srt-manipulator/internal/timing"
)

func mustFormatTimes(t *testing.T, e subtitle.Entry) (string, string) {
	t.Helper()
	return timing.Format(e.StartTime), timing.Format(e.EndTime)
}

func TestCueSpan(t *testing.T) {
	entries := []subtitle.Entry{
		{StartTime: 1 * time.Second, EndTime: 3 * time.Second},
		{StartTime: 5 * time.Second, EndTime: 8 * time.Second},
	}
	span, err := CueSpan(entries)
	if err != nil {
		t.Fatalf("CueSpan failed: %v", err)
	}
	if span.Start != 1*time.Second || span.End != 8*time.Second {
		t.Errorf("span = %+v", span)
	}
}

func TestCueSpanUnordered(t *testing.T) {
	entries := []subtitle.Entry{
		{StartTime: 5 * time.Second, EndTime: 8 * time.Second},
		{StartTime: 1 * time.Second, EndTime: 3 * time.Second},
	}
	_, err := CueSpan(entries)
	if !errors.Is(err, ErrUnorderedCues) {
		t.Errorf("want ErrUnorderedCues, got %v", err)
	}
}

func TestCueSpanEmpty(t *testing.T) {
	_, err := CueSpan(nil)
	if !errors.Is(err, ErrNoCues) {
		t.Errorf("want ErrNoCues, got %v", err)
	}
}

func TestRemapConstantOffset(t *testing.T) {
	entries := []subtitle.Entry{
		{Index: 1, StartTime: 1 * time.Second, EndTime: 3 * time.Second, Text: "Hello."},
	}

	anchors := OffsetAnchors(2500 * time.Millisecond)
	span, err := CueSpan(entries)
	if err != nil {
		t.Fatalf("CueSpan failed: %v", err)
	}
	extended, _, err := Extend(anchors, span, ModeTranslation)
	if err != nil {
		t.Fatalf("Extend failed: %v", err)
	}

	remapped, err := Remap(entries, extended)
	if err != nil {
		t.Fatalf("Remap failed: %v", err)
	}

	start, end := mustFormatTimes(t, remapped[0])
	if start != "00:00:03,500" {
		t.Errorf("start = %s, want 00:00:03,500", start)
	}
	if end != "00:00:05,500" {
		t.Errorf("end = %s, want 00:00:05,500", end)
	}
}

func TestRemapLinearAnchors(t *testing.T) {
	anchors := []Anchor{
		{Old: 10 * time.Minute, New: 10*time.Minute + time.Second},
		{Old: time.Hour, New: time.Hour + 2*time.Second},
	}
	entries := []subtitle.Entry{
		{StartTime: 10 * time.Minute, EndTime: 12 * time.Minute},
		{StartTime: 35 * time.Minute, EndTime: 36 * time.Minute},
	}

	remapped, err := Remap(entries, anchors)
	if err != nil {
		t.Fatalf("Remap failed: %v", err)
	}

	// an anchor point maps exactly
	start, _ := mustFormatTimes(t, remapped[0])
	if start != "00:10:01,000" {
		t.Errorf("anchored start = %s, want 00:10:01,000", start)
	}

	// the interval midpoint gets the midpoint of the 1s to 2s shift
	start, _ = mustFormatTimes(t, remapped[1])
	if start != "00:35:01,500" {
		t.Errorf("midpoint start = %s, want 00:35:01,500", start)
	}
}

func TestRemapExtrapolatesPastLastAnchor(t *testing.T) {
	anchors := []Anchor{
		{Old: 0, New: 0},
		{Old: 10 * time.Minute, New: 10*time.Minute + time.Second},
	}
	entries := []subtitle.Entry{
		{StartTime: 1 * time.Minute, EndTime: 2 * time.Minute},
		{StartTime: 19 * time.Minute, EndTime: 20 * time.Minute},
	}

	span, err := CueSpan(entries)
	if err != nil {
		t.Fatalf("CueSpan failed: %v", err)
	}
	extended, warnings, err := Extend(anchors, span, ModeLinear)
	if err != nil {
		t.Fatalf("Extend failed: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}

	remapped, err := Remap(entries, extended)
	if err != nil {
		t.Fatalf("Remap failed: %v", err)
	}

	_, end := mustFormatTimes(t, remapped[1])
	if end != "00:20:02,000" {
		t.Errorf("extrapolated end = %s, want 00:20:02,000", end)
	}
}

func TestRemapAdvancesCursorAcrossIntervals(t *testing.T) {
	// each interval shifts by a different amount; cues crossing intervals
	// must pick up the right one as the cursor moves forward
	anchors := []Anchor{
		{Old: 0, New: 0},
		{Old: 10 * time.Second, New: 11 * time.Second},
		{Old: 20 * time.Second, New: 23 * time.Second},
		{Old: 30 * time.Second, New: 36 * time.Second},
	}
	entries := []subtitle.Entry{
		{StartTime: 5 * time.Second, EndTime: 10 * time.Second},
		{StartTime: 15 * time.Second, EndTime: 20 * time.Second},
		{StartTime: 25 * time.Second, EndTime: 30 * time.Second},
	}

	remapped, err := Remap(entries, anchors)
	if err != nil {
		t.Fatalf("Remap failed: %v", err)
	}

	wants := [][2]time.Duration{
		{5500 * time.Millisecond, 11 * time.Second},
		{17 * time.Second, 23 * time.Second},
		{29500 * time.Millisecond, 36 * time.Second},
	}
	for i, want := range wants {
		if remapped[i].StartTime != want[0] {
			t.Errorf("entry %d: start = %v, want %v", i, remapped[i].StartTime, want[0])
		}
		if remapped[i].EndTime != want[1] {
			t.Errorf("entry %d: end = %v, want %v", i, remapped[i].EndTime, want[1])
		}
	}
}

func TestRemapPreservesTextAndIndex(t *testing.T) {
	entries := []subtitle.Entry{
		{Index: 42, StartTime: time.Second, EndTime: 2 * time.Second, Text: "Keep me.\nBoth lines."},
	}
	anchors := []Anchor{
		{Old: 0, New: time.Second},
		{Old: 10 * time.Second, New: 11 * time.Second},
	}

	remapped, err := Remap(entries, anchors)
	if err != nil {
		t.Fatalf("Remap failed: %v", err)
	}
	if remapped[0].Index != 42 {
		t.Errorf("index = %d, want 42", remapped[0].Index)
	}
	if remapped[0].Text != "Keep me.\nBoth lines." {
		t.Errorf("text = %q", remapped[0].Text)
	}

	// the input slice is untouched
	if entries[0].StartTime != time.Second {
		t.Error("Remap mutated its input")
	}
}

func TestRemapInsufficientAnchors(t *testing.T) {
	_, err := Remap(nil, []Anchor{{Old: 0, New: time.Second}})
	if !errors.Is(err, ErrInsufficientAnchors) {
		t.Errorf("want ErrInsufficientAnchors, got %v", err)
	}
}
