// Package text provides the built-in text processors: per-line analysis,
// Unicode normalization, and model-backed translation via the OpenAI API.
// All of them register themselves into the default registry at import
// time.
package text
