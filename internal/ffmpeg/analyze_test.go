package ffmpeg

import "testing"

func TestParseVolumeOutput(t *testing.T) {
	output := `[Parsed_volumedetect_0 @ 0x7f8] n_samples: 1323000
[Parsed_volumedetect_0 @ 0x7f8] mean_volume: -21.4 dB
[Parsed_volumedetect_0 @ 0x7f8] max_volume: -3.1 dB
[Parsed_volumedetect_0 @ 0x7f8] histogram_3db: 15`

	stats, err := parseVolumeOutput(output)
	if err != nil {
		t.Fatalf("parseVolumeOutput: %v", err)
	}

	if stats.MeanVolume != -21.4 {
		t.Errorf("mean = %v, want -21.4", stats.MeanVolume)
	}
	if stats.MaxVolume != -3.1 {
		t.Errorf("max = %v, want -3.1", stats.MaxVolume)
	}
}

func TestParseVolumeOutputNoStats(t *testing.T) {
	if _, err := parseVolumeOutput("nothing useful here"); err == nil {
		t.Error("expected error for output without stats")
	}
}
