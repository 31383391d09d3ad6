package ffmpeg

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Mux combines a finalized video stream and a composited audio stream
// into one container. The video stream is copied byte-for-byte; it was
// already re-encoded by the trim and a second generation would cost
// quality for nothing. The audio is encoded to AAC.
func (e *Executor) Mux(ctx context.Context, videoPath, audioPath, output string) error {
	args, err := muxArgs(videoPath, audioPath, output)
	if err != nil {
		return err
	}

	e.logger.Info().
		Str("video", videoPath).
		Str("audio", audioPath).
		Str("output", output).
		Msg("muxing output")

	runOpts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("mux")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("mux failed: %w", err)
	}
	return nil
}

func muxArgs(videoPath, audioPath, output string) ([]string, error) {
	if videoPath == "" || audioPath == "" || output == "" {
		return nil, fmt.Errorf("video, audio and output paths are required")
	}

	args := []string{
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", DefaultAudioCodec,
		"-b:a", DefaultAudioBitrate,
		"-shortest",
	}

	// faststart moves the moov atom up front for streaming playback;
	// only the mp4 family understands the flag
	switch strings.ToLower(filepath.Ext(output)) {
	case ".mp4", ".m4v", ".mov":
		args = append(args, "-movflags", "faststart")
	}

	args = append(args, output)
	return args, nil
}
