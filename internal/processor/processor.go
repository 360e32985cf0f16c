package processor

import (
	"context"
	"strconv"

	"codeberg.org/snonux/mediakit/internal/config"
)

// Kind classifies a processor by the input domain it operates on. The CLI
// uses it to filter registry listings per command group.
type Kind string

const (
	KindAudio   Kind = "audio"
	KindText    Kind = "text"
	KindGeneric Kind = "generic"
)

// Params carries processor-specific options parsed from repeated
// --param key=value flags. The core passes them through opaquely.
type Params map[string]string

// Get returns the value for key, or fallback if the key is absent.
func (p Params) Get(key, fallback string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return fallback
}

// Int returns the integer value for key, or fallback if the key is absent.
func (p Params) Int(key string, fallback int) (int, error) {
	v, ok := p[key]
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, Validationf("parameter %q must be an integer, got %q", key, v)
	}
	return n, nil
}

// Float returns the float value for key, or fallback if the key is absent.
func (p Params) Float(key string, fallback float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, Validationf("parameter %q must be a number, got %q", key, v)
	}
	return f, nil
}

// Bool returns the boolean value for key, or fallback if the key is absent.
func (p Params) Bool(key string, fallback bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, Validationf("parameter %q must be a boolean, got %q", key, v)
	}
	return b, nil
}

// Output describes what a processor produced for one input: an artifact
// path, extracted metadata, or both.
type Output struct {
	Path string
	Meta map[string]any
}

// Request bundles the per-call context a processor receives alongside the
// input path. OutputPath is empty when the caller wants the processor to
// pick its own destination (usually derived from the input).
type Request struct {
	OutputPath string
	Params     Params
	Config     *config.Config
}

// Processor is the two-operation contract shared by all audio, text, and
// generic processors. ValidateInput must be cheap and callable before any
// expensive backing resource exists. Process assumes validation already
// succeeded. Both methods must be safe for concurrent calls; the engine
// shares one instance across its workers.
type Processor interface {
	Kind() Kind
	ValidateInput(path string) error
	Process(ctx context.Context, input string, req Request) (*Output, error)
}
