// Package internal holds the version shared by the CLI and build tooling.
package internal

// Version is the mediakit release version.
const Version = "0.1.0"
