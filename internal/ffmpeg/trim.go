package ffmpeg

import (
	"context"
	"fmt"
	"time"

	"voxcut/pkg/util"
)

// TrimVideoOptions defines the re-encoded video cut
type TrimVideoOptions struct {
	Duration     time.Duration
	CRF          int
	Preset       string
	ProgressFunc ProgressFunc
}

// TrimVideo cuts the first Duration of input into output, re-encoding
// so the cut lands on an exact time boundary instead of the nearest
// keyframe. Any embedded audio is stripped; the mix stage supplies the
// audio track later.
func (e *Executor) TrimVideo(ctx context.Context, input, output string, opts TrimVideoOptions) error {
	args, err := videoTrimArgs(input, output, opts)
	if err != nil {
		return err
	}

	e.logger.Info().
		Str("input", input).
		Str("output", output).
		Dur("duration", opts.Duration).
		Int("crf", opts.CRF).
		Str("preset", opts.Preset).
		Msg("trimming video")

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("video trim")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("video trim failed: %w", err)
	}
	return nil
}

func videoTrimArgs(input, output string, opts TrimVideoOptions) ([]string, error) {
	if input == "" || output == "" {
		return nil, fmt.Errorf("input and output paths are required")
	}
	if opts.Duration <= 0 {
		return nil, fmt.Errorf("invalid trim duration: %v", opts.Duration)
	}

	crf := opts.CRF
	if crf == 0 {
		crf = DefaultCRF
	}
	if crf < 0 || crf > 51 {
		return nil, fmt.Errorf("CRF must be between 0 and 51, got %d", crf)
	}

	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}
	if !ValidPreset(preset) {
		return nil, fmt.Errorf("unknown encoder preset: %q", preset)
	}

	return []string{
		"-ss", "0",
		"-t", util.FormatDuration(opts.Duration),
		"-i", input,
		"-c:v", DefaultVideoCodec,
		"-preset", preset,
		"-crf", fmt.Sprintf("%d", crf),
		"-an",
		output,
	}, nil
}

// TrimAudio cuts the first duration of input into output with a
// stream copy. Keyframe-level precision is enough for a mix input, so
// no re-encode is paid here.
func (e *Executor) TrimAudio(ctx context.Context, input, output string, duration time.Duration) error {
	args, err := audioTrimArgs(input, output, duration)
	if err != nil {
		return err
	}

	e.logger.Info().
		Str("input", input).
		Str("output", output).
		Dur("duration", duration).
		Msg("trimming audio")

	runOpts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("audio trim")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("audio trim failed: %w", err)
	}
	return nil
}

func audioTrimArgs(input, output string, duration time.Duration) ([]string, error) {
	if input == "" || output == "" {
		return nil, fmt.Errorf("input and output paths are required")
	}
	if duration <= 0 {
		return nil, fmt.Errorf("invalid trim duration: %v", duration)
	}

	return []string{
		"-ss", "0",
		"-t", util.FormatDuration(duration),
		"-i", input,
		"-vn",
		"-c:a", "copy",
		output,
	}, nil
}
