package ffmpeg

import (
	"fmt"
	"strings"
)

// Filter graph pad labels. Input 0 is always speech, input 1 music.
const (
	speechPad = "0:a"
	musicPad  = "1:a"
	mixLabel  = "mix"
)

// DuckOptions parameterizes the sidechain compressor that lowers
// music while speech is present
type DuckOptions struct {
	Threshold float64
	Ratio     float64
	AttackMS  int
	ReleaseMS int
}

// AudioGraph builds the filter_complex for the two-input
// speech-over-music mix. Stages apply to the music side; the speech
// side passes through untouched and drives the sidechain.
type AudioGraph struct {
	segments []string
	current  string
}

// NewAudioGraph starts a graph with the music input as the working pad
func NewAudioGraph() *AudioGraph {
	return &AudioGraph{current: musicPad}
}

// Attenuate applies a static gain reduction of db decibels to the
// music side. Negative values amplify.
func (g *AudioGraph) Attenuate(db float64) *AudioGraph {
	g.segments = append(g.segments,
		fmt.Sprintf("[%s]volume=%.1fdB[att]", g.current, -db))
	g.current = "att"
	return g
}

// Duck compresses the music side using speech as the sidechain
// control, so music recedes under narration and recovers in silence.
// Applied after Attenuate, it supplements the static reduction.
func (g *AudioGraph) Duck(opts DuckOptions) *AudioGraph {
	g.segments = append(g.segments,
		fmt.Sprintf("[%s][%s]sidechaincompress=threshold=%g:ratio=%g:attack=%d:release=%d[duck]",
			g.current, speechPad, opts.Threshold, opts.Ratio, opts.AttackMS, opts.ReleaseMS))
	g.current = "duck"
	return g
}

// Mix sums speech and the processed music pad into one stream. Speech
// is the first amix input, so duration=first pins the output length to
// the speech duration.
func (g *AudioGraph) Mix(speechWeight, musicWeight float64) string {
	g.segments = append(g.segments,
		fmt.Sprintf("[%s][%s]amix=inputs=2:weights=%g %g:duration=first:dropout_transition=3[%s]",
			speechPad, g.current, speechWeight, musicWeight, mixLabel))
	return strings.Join(g.segments, ";")
}
