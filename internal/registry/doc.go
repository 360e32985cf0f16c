// Package registry maps processor names to factories. Built-in processors
// register themselves from init() functions, so importing a domain package
// (internal/audio, internal/text) is what populates the default registry;
// no filesystem scanning is involved. Names are unique for the lifetime of
// the process and duplicate registration fails fast.
package registry
