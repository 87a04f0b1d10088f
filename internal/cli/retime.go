package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Petkomat/srt-manipulator/internal/retime"
	"github.com/Petkomat/srt-manipulator/internal/subtitle"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var errAmbiguousMode = errors.New(
	"precisely one of --corrections and --offset must be specified",
)

func init() {
	rootCmd.AddCommand(newRetimeCommand())
}

func newRetimeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retime [subtitle_file]",
		Short: "Rewrite subtitle timestamps from anchor corrections or an offset",
		Long: `Rewrite every cue timestamp of a subtitle file.

With --corrections, each line of the corrections file maps an old time to a
new one (00:10:00,300@00:10:01,500); times between anchors are interpolated
linearly. With --offset, every timestamp shifts by a constant number of
seconds; positive values are for subtitles that appear too early.

Supports SRT and VTT files. The input encoding (UTF-8, UTF-16 or
Windows-1252) is detected and reused for the output file.

Examples:
  srt-manipulator retime movie.srt --corrections corrections.txt
  srt-manipulator retime movie.srt --offset 2.5
  srt-manipulator retime movie.vtt --offset -3 -o fixed.vtt`,
		Args: cobra.ExactArgs(1),
		RunE: runRetime,
	}

	cmd.Flags().
		StringP("corrections", "c", "", "Path to a file of old@new anchor pairs")
	cmd.Flags().
		Float64("offset", 0, "Seconds to shift all subtitles by (positive when they appear too early)")

	return cmd
}

func runRetime(cmd *cobra.Command, args []string) error {
	subtitlePath := normalizePath(args[0])

	correctionsPath, _ := cmd.Flags().GetString("corrections")
	offsetSeconds, _ := cmd.Flags().GetFloat64("offset")
	outputPath, _ := cmd.Flags().GetString("output")

	// Mode selection is checked before touching any file.
	if (correctionsPath != "") == cmd.Flags().Changed("offset") {
		return errAmbiguousMode
	}
	offset := time.Duration(offsetSeconds * float64(time.Second))

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	logger.Infow("Loading subtitles", "input", subtitlePath)
	subFile, err := subtitle.Open(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}

	sub := subFile.Subtitle()
	if len(sub.Entries) == 0 {
		return fmt.Errorf("subtitle file contains no entries")
	}
	logger.Infow("Loaded subtitles",
		"entries", len(sub.Entries),
		"format", subFile.Format(),
		"encoding", subFile.Encoding(),
	)

	var anchors []retime.Anchor
	mode := retime.ModeTranslation
	if correctionsPath != "" {
		mode = retime.ModeLinear
		correctionsPath = normalizePath(correctionsPath)

		raw, err := os.ReadFile(correctionsPath)
		if err != nil {
			return fmt.Errorf("failed to read corrections file: %w", err)
		}
		anchors, err = retime.ParseCorrections(correctionsPath, string(raw))
		if err != nil {
			return fmt.Errorf("failed to parse corrections: %w", err)
		}
		if len(anchors) < 2 {
			return fmt.Errorf("%w: have %d", retime.ErrInsufficientAnchors, len(anchors))
		}
		logger.Infow("Loaded corrections",
			"file", correctionsPath,
			"anchors", len(anchors),
		)
	} else {
		anchors = retime.OffsetAnchors(offset)
		logger.Infow("Using constant offset", "offset", offset)
	}

	span, err := retime.CueSpan(sub.Entries)
	if err != nil {
		return err
	}

	extended, warnings, err := retime.Extend(anchors, span, mode)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		logger.Warnw("Extrapolating outside the corrected range", "detail", warning)
		color.Set(color.FgYellow)
		fmt.Println("WARNING:", warning)
		color.Unset()
	}

	remapped, err := retime.Remap(sub.Entries, extended)
	if err != nil {
		return err
	}
	for i, entry := range remapped {
		if err := subFile.SetTimes(i, entry.StartTime, entry.EndTime); err != nil {
			return fmt.Errorf("failed to update entry %d: %w", i, err)
		}
	}

	if outputPath == "" {
		outputPath = deriveOutputPath(subtitlePath, correctionsPath, offset)
	}
	logger.Infow("Writing output file", "output", outputPath)
	if err := subFile.Write(outputPath); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	color.Set(color.FgGreen)
	fmt.Printf("Updated subtitles written to %s\n", absOutput)
	color.Unset()
	fmt.Printf("  Entries: %d\n", len(remapped))
	if mode == retime.ModeLinear {
		fmt.Printf("  Corrections: %s\n", correctionsPath)
	} else {
		fmt.Printf("  Offset: %+.3fs\n", offset.Seconds())
	}

	return nil
}

// deriveOutputPath tags the input name with the correction source or the
// signed offset: movie.srt becomes movie.corrections.srt or movie.+2.500s.srt.
func deriveOutputPath(subtitlePath, correctionsPath string, offset time.Duration) string {
	ext := filepath.Ext(subtitlePath)
	base := strings.TrimSuffix(subtitlePath, ext)
	if correctionsPath != "" {
		tag := strings.TrimSuffix(
			filepath.Base(correctionsPath),
			filepath.Ext(correctionsPath),
		)
		return fmt.Sprintf("%s.%s%s", base, tag, ext)
	}
	return fmt.Sprintf("%s.%+.3fs%s", base, offset.Seconds(), ext)
}

// normalizePath accepts Windows style separators pasted on any platform.
func normalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
