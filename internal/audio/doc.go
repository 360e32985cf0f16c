// Package audio provides the built-in audio processors: metadata
// extraction, resampling and loudness normalization via ffmpeg, and
// model-backed speech transcription via the OpenAI API. All of them
// register themselves into the default registry at import time.
package audio
