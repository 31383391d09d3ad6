package ffmpeg

import "testing"

func TestAudioGraphAttenuateOnly(t *testing.T) {
	got := NewAudioGraph().Attenuate(8.0).Mix(1.0, 1.0)
	want := "[1:a]volume=-8.0dB[att];" +
		"[0:a][att]amix=inputs=2:weights=1 1:duration=first:dropout_transition=3[mix]"
	if got != want {
		t.Errorf("graph = %q, want %q", got, want)
	}
}

func TestAudioGraphWithDucking(t *testing.T) {
	got := NewAudioGraph().
		Attenuate(8.0).
		Duck(DuckOptions{Threshold: 0.05, Ratio: 4.0, AttackMS: 15, ReleaseMS: 300}).
		Mix(1.0, 1.0)
	want := "[1:a]volume=-8.0dB[att];" +
		"[att][0:a]sidechaincompress=threshold=0.05:ratio=4:attack=15:release=300[duck];" +
		"[0:a][duck]amix=inputs=2:weights=1 1:duration=first:dropout_transition=3[mix]"
	if got != want {
		t.Errorf("graph = %q, want %q", got, want)
	}
}

func TestAudioGraphNegativeReductionAmplifies(t *testing.T) {
	got := NewAudioGraph().Attenuate(-3.0).Mix(1.0, 1.0)
	want := "[1:a]volume=3.0dB[att];" +
		"[0:a][att]amix=inputs=2:weights=1 1:duration=first:dropout_transition=3[mix]"
	if got != want {
		t.Errorf("graph = %q, want %q", got, want)
	}
}

func TestAudioGraphWeights(t *testing.T) {
	got := NewAudioGraph().Attenuate(0).Mix(1.5, 0.5)
	want := "[1:a]volume=-0.0dB[att];" +
		"[0:a][att]amix=inputs=2:weights=1.5 0.5:duration=first:dropout_transition=3[mix]"
	if got != want {
		t.Errorf("graph = %q, want %q", got, want)
	}
}

func TestAudioGraphDuckingSupplementsAttenuation(t *testing.T) {
	// The duck stage must consume the attenuated pad, not the raw
	// music input: ducking adds to the baseline reduction
	graph := NewAudioGraph().Attenuate(6.0)
	if graph.current != "att" {
		t.Fatalf("working pad after Attenuate = %q, want att", graph.current)
	}
	graph.Duck(DuckOptions{Threshold: 0.05, Ratio: 4, AttackMS: 15, ReleaseMS: 300})
	if graph.current != "duck" {
		t.Fatalf("working pad after Duck = %q, want duck", graph.current)
	}
}
