package ffmpeg

import (
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// skipIfNoFFmpeg skips the test if ffmpeg is not available
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH")
	}
}

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	e, err := New(zerolog.New(os.Stderr), Options{})
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}
	return e
}

// makeSine synthesizes an AAC tone of the given length
func makeSine(t *testing.T, e *Executor, path string, seconds float64) {
	t.Helper()
	err := e.Run(context.Background(), RunOptions{Args: []string{
		"-f", "lavfi",
		"-i", "sine=frequency=440:duration=" + formatSeconds(seconds),
		"-c:a", "aac",
		path,
	}})
	if err != nil {
		t.Fatalf("failed to synthesize audio: %v", err)
	}
}

// makeTestVideo synthesizes a silent h264 test pattern
func makeTestVideo(t *testing.T, e *Executor, path string, seconds float64) {
	t.Helper()
	err := e.Run(context.Background(), RunOptions{Args: []string{
		"-f", "lavfi",
		"-i", "testsrc=duration=" + formatSeconds(seconds) + ":size=320x240:rate=24",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		path,
	}})
	if err != nil {
		t.Fatalf("failed to synthesize video: %v", err)
	}
}

func formatSeconds(s float64) string {
	return time.Duration(s * float64(time.Second)).String()
}

func TestProbeSyntheticAudio(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	dir := t.TempDir()
	speech := filepath.Join(dir, "speech.m4a")
	makeSine(t, e, speech, 2)

	info, err := e.Probe(context.Background(), speech)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !info.HasAudio {
		t.Error("audio stream not detected")
	}
	if math.Abs(info.Seconds()-2.0) > 0.15 {
		t.Errorf("duration = %v, want ~2.0", info.Seconds())
	}
}

func TestProbeMissingFile(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	if _, err := e.Probe(context.Background(), filepath.Join(t.TempDir(), "nope.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTrimVideoFrameAccurate(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "source.mp4")
	makeTestVideo(t, e, source, 6)

	trimmed := filepath.Join(dir, "trimmed.mp4")
	err := e.TrimVideo(context.Background(), source, trimmed, TrimVideoOptions{
		Duration: 2 * time.Second,
		CRF:      28,
		Preset:   "ultrafast",
	})
	if err != nil {
		t.Fatalf("TrimVideo: %v", err)
	}

	info, err := e.Probe(context.Background(), trimmed)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if math.Abs(info.Seconds()-2.0) > 0.1 {
		t.Errorf("trimmed duration = %v, want ~2.0", info.Seconds())
	}
	if info.HasAudio {
		t.Error("trimmed video should have no audio stream")
	}
}

func TestTrimAudioPastEndYieldsShorter(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	dir := t.TempDir()
	music := filepath.Join(dir, "music.m4a")
	makeSine(t, e, music, 1)

	// Trimming past the end degrades to the available duration
	trimmed := filepath.Join(dir, "trimmed.m4a")
	if err := e.TrimAudio(context.Background(), music, trimmed, 5*time.Second); err != nil {
		t.Fatalf("TrimAudio: %v", err)
	}

	info, err := e.Probe(context.Background(), trimmed)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.Seconds() > 1.5 {
		t.Errorf("trimmed duration = %v, want ~1.0", info.Seconds())
	}
}

func TestMixAudioDurationFollowsSpeech(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	dir := t.TempDir()
	speech := filepath.Join(dir, "speech.m4a")
	music := filepath.Join(dir, "music.m4a")
	makeSine(t, e, speech, 2)
	makeSine(t, e, music, 1)

	mixed := filepath.Join(dir, "mixed.m4a")
	err := e.MixAudio(context.Background(), MixOptions{
		SpeechPath:       speech,
		MusicPath:        music,
		Output:           mixed,
		MusicReductionDB: 8.0,
		Ducking:          &DuckOptions{Threshold: 0.05, Ratio: 4, AttackMS: 15, ReleaseMS: 300},
	})
	if err != nil {
		t.Fatalf("MixAudio: %v", err)
	}

	info, err := e.Probe(context.Background(), mixed)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if math.Abs(info.Seconds()-2.0) > 0.2 {
		t.Errorf("mixed duration = %v, want ~2.0", info.Seconds())
	}
}

func TestMuxStreamCopy(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	dir := t.TempDir()
	video := filepath.Join(dir, "video.mp4")
	audio := filepath.Join(dir, "audio.m4a")
	makeTestVideo(t, e, video, 2)
	makeSine(t, e, audio, 2)

	out := filepath.Join(dir, "out.mp4")
	if err := e.Mux(context.Background(), video, audio, out); err != nil {
		t.Fatalf("Mux: %v", err)
	}

	info, err := e.Probe(context.Background(), out)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !info.HasVideo || !info.HasAudio {
		t.Errorf("output streams: video=%v audio=%v, want both", info.HasVideo, info.HasAudio)
	}
	if math.Abs(info.Seconds()-2.0) > 0.2 {
		t.Errorf("output duration = %v, want ~2.0", info.Seconds())
	}
}

func TestAnalyzeVolumeAttenuationIsMonotonic(t *testing.T) {
	skipIfNoFFmpeg(t)

	e := newTestExecutor(t)
	dir := t.TempDir()
	speech := filepath.Join(dir, "speech.m4a")
	music := filepath.Join(dir, "music.m4a")
	makeSine(t, e, speech, 2)
	makeSine(t, e, music, 2)

	// More reduction must measure quieter overall
	mean := func(db float64, name string) float64 {
		out := filepath.Join(dir, name)
		err := e.MixAudio(context.Background(), MixOptions{
			SpeechPath:       speech,
			MusicPath:        music,
			Output:           out,
			MusicReductionDB: db,
		})
		if err != nil {
			t.Fatalf("MixAudio(%v dB): %v", db, err)
		}
		stats, err := e.AnalyzeVolume(context.Background(), out)
		if err != nil {
			t.Fatalf("AnalyzeVolume: %v", err)
		}
		return stats.MeanVolume
	}

	quiet := mean(20.0, "quiet.m4a")
	loud := mean(0.0, "loud.m4a")
	if quiet >= loud {
		t.Errorf("mean volume with 20dB reduction (%v) not below 0dB reduction (%v)", quiet, loud)
	}
}
