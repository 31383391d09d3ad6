package ffmpeg

import "time"

// MediaInfo contains metadata about a probed media file
type MediaInfo struct {
	FilePath   string
	Duration   time.Duration
	HasVideo   bool
	HasAudio   bool
	Width      int
	Height     int
	FPS        float64
	Bitrate    int64
	VideoCodec string
	AudioCodec string
}

// Seconds returns the duration as floating-point seconds
func (m *MediaInfo) Seconds() float64 {
	return m.Duration.Seconds()
}

// Progress represents ffmpeg progress data
type Progress struct {
	Frame   int
	FPS     float64
	Bitrate string
	Time    string
	Speed   string
}

// ProgressFunc is a callback for progress updates during ffmpeg operations.
// Called periodically with progress information as the operation executes.
type ProgressFunc func(*Progress)

// RunOptions configures ffmpeg execution
type RunOptions struct {
	Args            []string
	ProgressHandler ProgressFunc
	LogHandler      func(line string)
}

// Default encoding settings
const (
	DefaultCRF          = 18
	DefaultPreset       = "veryfast"
	DefaultVideoCodec   = "libx264"
	DefaultAudioCodec   = "aac"
	DefaultAudioBitrate = "192k"
)

// x264 speed/quality presets accepted by the trim encoder
var presets = map[string]struct{}{
	"ultrafast": {},
	"superfast": {},
	"veryfast":  {},
	"faster":    {},
	"fast":      {},
	"medium":    {},
	"slow":      {},
	"slower":    {},
	"veryslow":  {},
	"placebo":   {},
}

// ValidPreset reports whether name is a known encoder preset
func ValidPreset(name string) bool {
	_, ok := presets[name]
	return ok
}
