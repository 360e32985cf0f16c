// Package cli provides command-line interface setup and configuration
// for mediakit. It handles flag parsing, command creation, and
// configuration management using cobra and viper, and is the only layer
// that writes the Config the core consumes.
package cli
