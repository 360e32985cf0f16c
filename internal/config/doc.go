// Package config holds the immutable runtime configuration for mediakit.
// The CLI layer is the only writer: it merges defaults, the optional viper
// config file, environment overrides, and flags into a Config before the
// core ever sees it. The core treats the value as read-only.
package config
