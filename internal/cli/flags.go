package cli

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds all command-line flag values.
type Flags struct {
	// Global flags
	CfgFile    string
	Workers    int
	NoProgress bool
	Timeout    time.Duration
	LogLevel   string
	LogFormat  string
	LogFile    string
	Report     string

	// Process command flags
	OutputDir string
	Params    []string
	FromFile  string
}

// NewFlags creates a new Flags instance with default values.
func NewFlags() *Flags {
	return &Flags{
		Workers:   1,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// registerProcessFlags attaches the flags shared by every process
// subcommand.
func registerProcessFlags(fs *pflag.FlagSet, flags *Flags) {
	fs.StringVarP(&flags.OutputDir, "output", "o", "", "Output file (single input) or directory (batch)")
	fs.StringArrayVar(&flags.Params, "param", nil, "Processor parameter in key=value form (repeatable)")
	fs.StringVar(&flags.FromFile, "from-file", "", "Read input paths from file (one per line)")
}
