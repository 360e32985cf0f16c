package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the read-only tunable set consumed by the engine and the
// processors. Values are merged once by the CLI and never mutated after.
type Config struct {
	// Parallel execution settings
	MaxWorkers         int
	EnableProgressBars bool

	// Overall batch deadline; zero means no deadline
	Timeout time.Duration

	// Supported input formats per domain (lowercase extensions with dot)
	AudioFormats []string
	TextFormats  []string

	// Logging settings
	LogLevel  string
	LogFormat string
	LogFile   string

	// OpenAI-backed processor settings
	OpenAIKey        string
	OpenAIChatModel  string
	OpenAIAudioModel string
}

// Default returns the configuration used when no file, environment, or
// flag overrides are present.
func Default() *Config {
	return &Config{
		MaxWorkers:         1,
		EnableProgressBars: true,
		AudioFormats: []string{
			".wav", ".flac", ".mp3", ".ogg", ".opus", ".m4a", ".aiff", ".ac3", ".wma",
		},
		TextFormats:      []string{".txt", ".csv", ".tsv", ".json"},
		LogLevel:         "info",
		LogFormat:        "text",
		OpenAIChatModel:  "gpt-4o-mini",
		OpenAIAudioModel: "whisper-1",
	}
}

// FromViper builds a Config from the merged viper state, starting from the
// defaults. Only keys that are actually set override the defaults.
func FromViper(v *viper.Viper) *Config {
	cfg := Default()

	if v.IsSet("processing.max_workers") {
		cfg.MaxWorkers = v.GetInt("processing.max_workers")
	}
	if v.IsSet("processing.progress_bars") {
		cfg.EnableProgressBars = v.GetBool("processing.progress_bars")
	}
	if v.IsSet("processing.timeout") {
		cfg.Timeout = v.GetDuration("processing.timeout")
	}
	if v.IsSet("formats.audio") {
		cfg.AudioFormats = normalizeExtensions(v.GetStringSlice("formats.audio"))
	}
	if v.IsSet("formats.text") {
		cfg.TextFormats = normalizeExtensions(v.GetStringSlice("formats.text"))
	}
	if v.IsSet("log.level") {
		cfg.LogLevel = v.GetString("log.level")
	}
	if v.IsSet("log.format") {
		cfg.LogFormat = v.GetString("log.format")
	}
	if v.IsSet("log.file") {
		cfg.LogFile = v.GetString("log.file")
	}
	if v.IsSet("openai.key") {
		cfg.OpenAIKey = v.GetString("openai.key")
	}
	if v.IsSet("openai.chat_model") {
		cfg.OpenAIChatModel = v.GetString("openai.chat_model")
	}
	if v.IsSet("openai.audio_model") {
		cfg.OpenAIAudioModel = v.GetString("openai.audio_model")
	}

	return cfg
}

// Validate reports configuration values that would make a run impossible.
func (c *Config) Validate() error {
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be >= 1, got %d", c.MaxWorkers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if len(c.AudioFormats) == 0 {
		return fmt.Errorf("audio format list must not be empty")
	}
	if len(c.TextFormats) == 0 {
		return fmt.Errorf("text format list must not be empty")
	}
	return nil
}

// IsAudioFile reports whether path has a supported audio extension.
func (c *Config) IsAudioFile(path string) bool {
	return hasExtension(path, c.AudioFormats)
}

// IsTextFile reports whether path has a supported text extension.
func (c *Config) IsTextFile(path string) bool {
	return hasExtension(path, c.TextFormats)
}

func hasExtension(path string, formats []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		if ext == f {
			return true
		}
	}
	return false
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
