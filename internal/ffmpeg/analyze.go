package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// VolumeStats holds volume analysis results
type VolumeStats struct {
	MeanVolume float64
	MaxVolume  float64
}

// AnalyzeVolume calculates volume statistics for an audio or video
// file by decoding it through the volumedetect filter
func (e *Executor) AnalyzeVolume(ctx context.Context, input string) (*VolumeStats, error) {
	e.logger.Info().Str("input", input).Msg("analyzing volume")

	var stderrBuf bytes.Buffer
	var mu sync.Mutex

	opts := RunOptions{
		Args: []string{
			"-i", input,
			"-af", "volumedetect",
			"-f", "null",
			"-",
		},
		LogHandler: func(line string) {
			mu.Lock()
			stderrBuf.WriteString(line + "\n")
			mu.Unlock()
		},
	}

	err := e.Run(ctx, opts)

	mu.Lock()
	output := stderrBuf.String()
	mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// The null muxer trips benign conversion errors; only real
		// decode failures matter here
		if !strings.Contains(err.Error(), "Conversion failed") &&
			!strings.Contains(err.Error(), "Output file is empty") {
			return nil, fmt.Errorf("volume analysis failed: %w", err)
		}
	}

	if output == "" {
		return nil, fmt.Errorf("volume analysis produced no output")
	}

	return parseVolumeOutput(output)
}

// parseVolumeOutput extracts volume stats from volumedetect stderr
func parseVolumeOutput(output string) (*VolumeStats, error) {
	stats := &VolumeStats{}
	found := false

	for _, line := range strings.Split(output, "\n") {
		if idx := strings.Index(line, "mean_volume:"); idx >= 0 {
			fields := strings.Fields(line[idx+len("mean_volume:"):])
			if len(fields) > 0 {
				stats.MeanVolume, _ = strconv.ParseFloat(fields[0], 64)
				found = true
			}
		} else if idx := strings.Index(line, "max_volume:"); idx >= 0 {
			fields := strings.Fields(line[idx+len("max_volume:"):])
			if len(fields) > 0 {
				stats.MaxVolume, _ = strconv.ParseFloat(fields[0], 64)
				found = true
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("no volume statistics in output")
	}

	return stats, nil
}
