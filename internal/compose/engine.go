package compose

import (
	"context"
	"time"

	"voxcut/internal/ffmpeg"
)

// Engine is the media-processing surface the pipeline needs. It is
// satisfied by *ffmpeg.Executor and faked in tests so the pipeline
// logic is exercised without a real engine.
type Engine interface {
	Probe(ctx context.Context, path string) (*ffmpeg.MediaInfo, error)
	TrimVideo(ctx context.Context, input, output string, opts ffmpeg.TrimVideoOptions) error
	TrimAudio(ctx context.Context, input, output string, duration time.Duration) error
	MixAudio(ctx context.Context, opts ffmpeg.MixOptions) error
	Mux(ctx context.Context, videoPath, audioPath, output string) error
}
