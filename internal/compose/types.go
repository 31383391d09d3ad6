package compose

import "voxcut/internal/config"

// Request names the three inputs and the destination of one
// composition
type Request struct {
	SpeechPath string
	VideoPath  string
	MusicPath  string
	OutputPath string

	Options Options
}

// Options are the caller-supplied composition parameters. Zero values
// fall back to the defaults below, except EnableDucking which is
// taken as given.
type Options struct {
	// MusicReductionDB lowers the music level before mixing, in dB.
	// Negative values amplify.
	MusicReductionDB float64

	// EnableDucking adds sidechain compression on top of the static
	// reduction so music recedes under narration
	EnableDucking bool

	DuckThreshold float64
	DuckRatio     float64
	DuckAttackMS  int
	DuckReleaseMS int

	SpeechWeight float64
	MusicWeight  float64

	// CRF and Preset parameterize the video trim re-encode
	CRF    int
	Preset string
}

// DefaultOptions returns the stock composition parameters
func DefaultOptions() Options {
	return Options{
		MusicReductionDB: 8.0,
		EnableDucking:    true,
		DuckThreshold:    0.05,
		DuckRatio:        4.0,
		DuckAttackMS:     15,
		DuckReleaseMS:    300,
		SpeechWeight:     1.0,
		MusicWeight:      1.0,
		CRF:              18,
		Preset:           "veryfast",
	}
}

// OptionsFromConfig builds Options from file-backed configuration
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.MusicReductionDB = cfg.Mix.MusicReductionDB
	opts.EnableDucking = cfg.Mix.EnableDucking
	if cfg.Mix.DuckThreshold != 0 {
		opts.DuckThreshold = cfg.Mix.DuckThreshold
	}
	if cfg.Mix.DuckRatio != 0 {
		opts.DuckRatio = cfg.Mix.DuckRatio
	}
	if cfg.Mix.DuckAttackMS != 0 {
		opts.DuckAttackMS = cfg.Mix.DuckAttackMS
	}
	if cfg.Mix.DuckReleaseMS != 0 {
		opts.DuckReleaseMS = cfg.Mix.DuckReleaseMS
	}
	if cfg.Mix.SpeechWeight != 0 {
		opts.SpeechWeight = cfg.Mix.SpeechWeight
	}
	if cfg.Mix.MusicWeight != 0 {
		opts.MusicWeight = cfg.Mix.MusicWeight
	}
	if cfg.Encode.CRF != 0 {
		opts.CRF = cfg.Encode.CRF
	}
	if cfg.Encode.Preset != "" {
		opts.Preset = cfg.Encode.Preset
	}
	return opts
}

// withDefaults fills unset fields with the stock parameters
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.DuckThreshold == 0 {
		o.DuckThreshold = def.DuckThreshold
	}
	if o.DuckRatio == 0 {
		o.DuckRatio = def.DuckRatio
	}
	if o.DuckAttackMS == 0 {
		o.DuckAttackMS = def.DuckAttackMS
	}
	if o.DuckReleaseMS == 0 {
		o.DuckReleaseMS = def.DuckReleaseMS
	}
	if o.SpeechWeight == 0 {
		o.SpeechWeight = def.SpeechWeight
	}
	if o.MusicWeight == 0 {
		o.MusicWeight = def.MusicWeight
	}
	if o.CRF == 0 {
		o.CRF = def.CRF
	}
	if o.Preset == "" {
		o.Preset = def.Preset
	}
	return o
}
