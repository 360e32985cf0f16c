// Package progress abstracts batch progress reporting. The engine only
// sees the Reporter interface; whether anything renders depends on the
// configuration and on whether stderr is a terminal.
package progress
