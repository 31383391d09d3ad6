package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// TempDir is the parent directory for per-composition workspaces.
	// Empty means the system default.
	TempDir string `yaml:"temp_dir"`

	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
	Encode EncodeConfig `yaml:"encode"`
	Mix    MixConfig    `yaml:"mix"`
}

// FFmpegConfig locates the external engine binaries
type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
	Threads    int    `yaml:"threads"`
}

// EncodeConfig controls the video trim re-encode
type EncodeConfig struct {
	CRF    int    `yaml:"crf"`
	Preset string `yaml:"preset"`
}

// MixConfig controls music attenuation and ducking under speech
type MixConfig struct {
	MusicReductionDB float64 `yaml:"music_reduction_db"`
	EnableDucking    bool    `yaml:"enable_ducking"`
	DuckThreshold    float64 `yaml:"duck_threshold"`
	DuckRatio        float64 `yaml:"duck_ratio"`
	DuckAttackMS     int     `yaml:"duck_attack_ms"`
	DuckReleaseMS    int     `yaml:"duck_release_ms"`
	SpeechWeight     float64 `yaml:"speech_weight"`
	MusicWeight      float64 `yaml:"music_weight"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		TempDir: "",
		FFmpeg: FFmpegConfig{
			BinaryPath: "",
			ProbePath:  "",
			Threads:    0,
		},
		Encode: EncodeConfig{
			CRF:    18,
			Preset: "veryfast",
		},
		Mix: MixConfig{
			MusicReductionDB: 8.0,
			EnableDucking:    true,
			DuckThreshold:    0.05,
			DuckRatio:        4.0,
			DuckAttackMS:     15,
			DuckReleaseMS:    300,
			SpeechWeight:     1.0,
			MusicWeight:      1.0,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./voxcut.yaml",
		"./voxcut.yml",
		filepath.Join(os.Getenv("HOME"), ".voxcut", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
