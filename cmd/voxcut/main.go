package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"voxcut/internal/compose"
	"voxcut/internal/config"
	"voxcut/internal/ffmpeg"
	"voxcut/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voxcut",
	Short: "voxcut - narrated video compositor",
	Long:  "Compose a video from a narration track, a background video, and background music, aligned to the narration duration.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./voxcut.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)

	flags := composeCmd.Flags()
	flags.Float64("music-db", 8.0, "music volume reduction before mixing, in dB")
	flags.Bool("duck", true, "duck music under narration with sidechain compression")
	flags.Int("crf", 18, "x264 CRF for the video trim (0-51, lower is better)")
	flags.String("preset", "veryfast", "x264 encoder preset for the video trim")

	configCmd.AddCommand(configInitCmd)
}

func newEngine(cfg *config.Config) (*ffmpeg.Executor, error) {
	return ffmpeg.New(log.Logger, ffmpeg.Options{
		FFmpegPath:  cfg.FFmpeg.BinaryPath,
		FFprobePath: cfg.FFmpeg.ProbePath,
		Threads:     cfg.FFmpeg.Threads,
	})
}

var composeCmd = &cobra.Command{
	Use:   "compose [speech audio] [background video] [background music] [output]",
	Short: "Compose a narrated video aligned to the speech duration",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		engine, err := newEngine(cfg)
		if err != nil {
			return err
		}

		// Config supplies defaults; explicit flags win
		opts := compose.OptionsFromConfig(cfg)
		flags := cmd.Flags()
		if flags.Changed("music-db") {
			opts.MusicReductionDB, _ = flags.GetFloat64("music-db")
		}
		if flags.Changed("duck") {
			opts.EnableDucking, _ = flags.GetBool("duck")
		}
		if flags.Changed("crf") {
			opts.CRF, _ = flags.GetInt("crf")
		}
		if flags.Changed("preset") {
			opts.Preset, _ = flags.GetString("preset")
		}

		composer := compose.New(log.Logger, engine, cfg.TempDir)
		output, err := composer.Compose(cmd.Context(), compose.Request{
			SpeechPath: args[0],
			VideoPath:  args[1],
			MusicPath:  args[2],
			OutputPath: args[3],
			Options:    opts,
		})
		if err != nil {
			return err
		}

		log.Info().Str("output", output).Msg("composition written")
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [media file]",
	Short: "Probe a media file and report duration, streams, and levels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		engine, err := newEngine(cfg)
		if err != nil {
			return err
		}

		info, err := engine.Probe(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		event := log.Info().
			Str("file", info.FilePath).
			Float64("duration_s", info.Seconds()).
			Bool("video", info.HasVideo).
			Bool("audio", info.HasAudio)
		if info.HasVideo {
			event = event.
				Int("width", info.Width).
				Int("height", info.Height).
				Float64("fps", info.FPS).
				Str("video_codec", info.VideoCodec)
		}
		if info.HasAudio {
			event = event.Str("audio_codec", info.AudioCodec)
		}
		event.Msg("media info")

		if info.HasAudio {
			stats, err := engine.AnalyzeVolume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			log.Info().
				Float64("mean_volume_db", stats.MeanVolume).
				Float64("max_volume_db", stats.MaxVolume).
				Msg("volume stats")
		}

		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to ./voxcut.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		path := cfgFile
		if path == "" {
			path = "./voxcut.yaml"
		}

		if err := cfg.Save(path); err != nil {
			return err
		}

		log.Info().Str("path", path).Msg("config written")
		return nil
	},
}
