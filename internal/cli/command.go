package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/mediakit/internal"
	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
)

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mediakit",
		Short: "Audio and text batch-processing toolkit",
		Long: `mediakit processes audio and text files through named processors.

Processors are discovered by name from a registry, validated against the
input, and executed either singly or over a whole directory via a bounded
worker pool with per-item failure isolation.

Examples:
  mediakit audio process input.wav audio_metaviewer
  mediakit audio process ./samples audio_resampler -o ./out --param target_sr=16000 -w 4
  mediakit text process notes.txt text_normalizer --param lowercase=true
  mediakit text list`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupGlobalFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newDomainCommand(flags, processor.KindAudio, "audio", "Audio processing and analysis commands"),
		newDomainCommand(flags, processor.KindText, "text", "Text processing commands"),
	)

	return rootCmd
}

func setupGlobalFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.mediakit.yaml)")
	cmd.PersistentFlags().IntVarP(&flags.Workers, "workers", "w", flags.Workers, "Max parallel workers for batch processing")
	cmd.PersistentFlags().BoolVar(&flags.NoProgress, "no-progress", false, "Disable progress bars")
	cmd.PersistentFlags().DurationVar(&flags.Timeout, "timeout", 0, "Overall batch deadline (0 disables)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format (text or json)")
	cmd.PersistentFlags().StringVar(&flags.LogFile, "log-file", "", "Path to log file (default is stderr)")
	cmd.PersistentFlags().StringVar(&flags.Report, "report", "", "Write a SQLite batch report to this file")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("processing.max_workers", cmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("processing.timeout", cmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log.file", cmd.PersistentFlags().Lookup("log-file"))
}

// InitConfig initializes viper configuration.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mediakit")
	}

	viper.SetEnvPrefix("MEDIAKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config.
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("openai.key")
}

// ResolveConfig merges defaults, the viper state, and explicit flag
// overrides into the immutable configuration the core consumes.
func ResolveConfig(cmd *cobra.Command, flags *Flags) (*config.Config, error) {
	cfg := config.FromViper(viper.GetViper())

	if cmd.Flags().Changed("workers") {
		cfg.MaxWorkers = flags.Workers
	}
	if flags.NoProgress {
		cfg.EnableProgressBars = false
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = flags.Timeout
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = flags.LogFormat
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = flags.LogFile
	}
	if cfg.OpenAIKey == "" {
		cfg.OpenAIKey = GetOpenAIKey()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", processor.ErrConfig, err)
	}
	return cfg, nil
}
