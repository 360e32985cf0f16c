package processor

import (
	"errors"
	"fmt"
)

// Error kinds shared across the toolkit. Per-item kinds (validation,
// processing, timeout) are recorded in the result sequence and never abort
// a batch; ErrConfig is systemic and aborts a run before dispatch;
// ErrInitialization marks a processor instance whose backing resource
// failed to construct and is terminal for that instance.
var (
	ErrValidation     = errors.New("validation failed")
	ErrProcessing     = errors.New("processing failed")
	ErrInitialization = errors.New("initialization failed")
	ErrConfig         = errors.New("invalid configuration")
	ErrTimeout        = errors.New("deadline exceeded")
)

// Validationf wraps a formatted message as a validation error.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Processingf wraps a formatted message as a processing error.
func Processingf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrProcessing, fmt.Sprintf(format, args...))
}

// Configf wraps a formatted message as a systemic configuration error.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// IsPerItem reports whether err is one of the recoverable per-item kinds
// that get recorded in the result sequence rather than aborting a run.
func IsPerItem(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrProcessing) ||
		errors.Is(err, ErrInitialization) ||
		errors.Is(err, ErrTimeout)
}
