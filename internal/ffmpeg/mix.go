package ffmpeg

import (
	"context"
	"fmt"
	"math"
)

// MixOptions configures the speech-over-music composition
type MixOptions struct {
	SpeechPath string
	MusicPath  string
	Output     string

	// MusicReductionDB lowers the music level before mixing.
	// Negative values amplify.
	MusicReductionDB float64

	// Ducking enables sidechain compression when non-nil
	Ducking *DuckOptions

	SpeechWeight float64
	MusicWeight  float64

	ProgressFunc ProgressFunc
}

// MixAudio attenuates the music track, optionally ducks it under the
// speech track, and sums both into a single AAC stream whose duration
// equals the speech duration.
func (e *Executor) MixAudio(ctx context.Context, opts MixOptions) error {
	args, err := mixArgs(opts)
	if err != nil {
		return err
	}

	e.logger.Info().
		Str("speech", opts.SpeechPath).
		Str("music", opts.MusicPath).
		Str("output", opts.Output).
		Float64("music_reduction_db", opts.MusicReductionDB).
		Bool("ducking", opts.Ducking != nil).
		Msg("mixing audio")

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("audio mix")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("audio mix failed: %w", err)
	}
	return nil
}

func mixArgs(opts MixOptions) ([]string, error) {
	if opts.SpeechPath == "" || opts.MusicPath == "" || opts.Output == "" {
		return nil, fmt.Errorf("speech, music and output paths are required")
	}
	if math.IsNaN(opts.MusicReductionDB) || math.IsInf(opts.MusicReductionDB, 0) {
		return nil, fmt.Errorf("music reduction must be a finite dB value")
	}

	speechWeight := opts.SpeechWeight
	if speechWeight == 0 {
		speechWeight = 1.0
	}
	musicWeight := opts.MusicWeight
	if musicWeight == 0 {
		musicWeight = 1.0
	}

	graph := NewAudioGraph().Attenuate(opts.MusicReductionDB)
	if opts.Ducking != nil {
		graph.Duck(*opts.Ducking)
	}
	filterComplex := graph.Mix(speechWeight, musicWeight)

	return []string{
		"-i", opts.SpeechPath,
		"-i", opts.MusicPath,
		"-filter_complex", filterComplex,
		"-map", "[" + mixLabel + "]",
		"-c:a", DefaultAudioCodec,
		"-b:a", DefaultAudioBitrate,
		opts.Output,
	}, nil
}
