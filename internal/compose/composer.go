package compose

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"voxcut/internal/ffmpeg"
	"voxcut/pkg/util"
)

// Composer runs the composition pipeline: probe the speech duration,
// trim the background video and music to it, mix the audio, and mux
// the result. All intermediates live in a per-call workspace that is
// removed whether the pipeline succeeds or fails.
type Composer struct {
	logger  zerolog.Logger
	engine  Engine
	tempDir string
}

// New creates a composer on top of a media engine. tempDir is the
// parent for per-call workspaces; empty means the system default.
func New(logger zerolog.Logger, engine Engine, tempDir string) *Composer {
	return &Composer{
		logger:  logger.With().Str("component", "compose").Logger(),
		engine:  engine,
		tempDir: tempDir,
	}
}

// Compose produces one output video whose duration equals the speech
// duration. It returns the output path on success. On any failure the
// first stage error is returned and no partial file remains at the
// output path.
func (c *Composer) Compose(ctx context.Context, req Request) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}
	opts := req.Options.withDefaults()

	// The speech duration is the reference every stage aligns to
	speech, err := c.engine.Probe(ctx, req.SpeechPath)
	if err != nil {
		return "", &ProbeError{Path: req.SpeechPath, Err: err}
	}
	if speech.Duration <= 0 {
		return "", &ProbeError{Path: req.SpeechPath, Err: errors.New("speech track has no duration")}
	}
	target := speech.Duration

	video, err := c.engine.Probe(ctx, req.VideoPath)
	if err != nil {
		return "", &ProbeError{Path: req.VideoPath, Err: err}
	}
	if !video.HasVideo {
		return "", &ProbeError{Path: req.VideoPath, Err: errors.New("no video stream")}
	}
	if video.Duration < target {
		c.logger.Warn().
			Str("video", req.VideoPath).
			Dur("video_duration", video.Duration).
			Dur("speech_duration", target).
			Msg("background video shorter than speech; output will be truncated")
	}

	music, err := c.engine.Probe(ctx, req.MusicPath)
	if err != nil {
		return "", &ProbeError{Path: req.MusicPath, Err: err}
	}
	if !music.HasAudio {
		return "", &ProbeError{Path: req.MusicPath, Err: errors.New("no audio stream")}
	}
	if music.Duration < target {
		c.logger.Warn().
			Str("music", req.MusicPath).
			Dur("music_duration", music.Duration).
			Dur("speech_duration", target).
			Msg("background music shorter than speech; music will end early")
	}

	c.logger.Info().
		Str("speech", req.SpeechPath).
		Dur("target_duration", target).
		Bool("ducking", opts.EnableDucking).
		Msg("starting composition")

	workspace, err := os.MkdirTemp(c.tempDir, "voxcut-")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	defer os.RemoveAll(workspace)

	trimmedVideo := filepath.Join(workspace, "video_trim.mp4")
	trimmedMusic := filepath.Join(workspace, "music_trim"+musicExt(req.MusicPath))

	// The two trims share nothing and run concurrently; the mix must
	// not start until both have landed
	var wg sync.WaitGroup
	var videoErr, musicErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		videoErr = c.engine.TrimVideo(ctx, req.VideoPath, trimmedVideo, ffmpeg.TrimVideoOptions{
			Duration:     target,
			CRF:          opts.CRF,
			Preset:       opts.Preset,
			ProgressFunc: c.progressLogger("video_trim"),
		})
	}()
	go func() {
		defer wg.Done()
		musicErr = c.engine.TrimAudio(ctx, req.MusicPath, trimmedMusic, target)
	}()
	wg.Wait()

	if videoErr != nil {
		return "", &TrimError{Source: req.VideoPath, Err: videoErr}
	}
	if musicErr != nil {
		return "", &TrimError{Source: req.MusicPath, Err: musicErr}
	}

	mixedAudio := filepath.Join(workspace, "mixed_audio.m4a")
	mixOpts := ffmpeg.MixOptions{
		SpeechPath:       req.SpeechPath,
		MusicPath:        trimmedMusic,
		Output:           mixedAudio,
		MusicReductionDB: opts.MusicReductionDB,
		SpeechWeight:     opts.SpeechWeight,
		MusicWeight:      opts.MusicWeight,
		ProgressFunc:     c.progressLogger("audio_mix"),
	}
	if opts.EnableDucking {
		mixOpts.Ducking = &ffmpeg.DuckOptions{
			Threshold: opts.DuckThreshold,
			Ratio:     opts.DuckRatio,
			AttackMS:  opts.DuckAttackMS,
			ReleaseMS: opts.DuckReleaseMS,
		}
	}
	if err := c.engine.MixAudio(ctx, mixOpts); err != nil {
		return "", &MixError{Speech: req.SpeechPath, Music: trimmedMusic, Err: err}
	}

	// Mux into a hidden sibling of the final path and rename on
	// success, so the output path either holds a complete file or
	// nothing
	if err := util.EnsureDir(filepath.Dir(req.OutputPath)); err != nil {
		return "", &MuxError{Output: req.OutputPath, Err: err}
	}
	staging := stagingPath(req.OutputPath)
	if err := c.engine.Mux(ctx, trimmedVideo, mixedAudio, staging); err != nil {
		os.Remove(staging)
		return "", &MuxError{Output: req.OutputPath, Err: err}
	}
	if err := os.Rename(staging, req.OutputPath); err != nil {
		os.Remove(staging)
		return "", &MuxError{Output: req.OutputPath, Err: err}
	}

	c.logger.Info().
		Str("output", req.OutputPath).
		Dur("duration", target).
		Msg("composition complete")

	return req.OutputPath, nil
}

func validateRequest(req Request) error {
	if req.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	for _, path := range []string{req.SpeechPath, req.VideoPath, req.MusicPath} {
		if path == "" {
			return fmt.Errorf("speech, video and music paths are required")
		}
		if !util.FileExists(path) {
			return &ProbeError{Path: path, Err: fs.ErrNotExist}
		}
	}
	return nil
}

// musicExt keeps the music trim format-preserving: the stream copy
// lands in a container matching the source
func musicExt(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		return ext
	}
	return ".m4a"
}

// stagingPath hides the in-progress output beside the final path,
// keeping the extension so the container format is inferred correctly
func stagingPath(output string) string {
	dir, base := filepath.Split(output)
	return filepath.Join(dir, ".voxcut-"+base)
}

func (c *Composer) progressLogger(stage string) ffmpeg.ProgressFunc {
	return func(p *ffmpeg.Progress) {
		c.logger.Debug().
			Str("stage", stage).
			Int("frame", p.Frame).
			Str("time", p.Time).
			Str("speed", p.Speed).
			Msg("progress")
	}
}
