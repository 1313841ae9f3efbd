package domain

import (
	"errors"
	"fmt"
)

// ConfigurationError marks a broken preset or phrase table. It is fatal to
// session construction: silently defaulting a price floor or template bank
// would produce nonsense negotiations.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

var (
	// ErrEmptyUtterance rejects empty or whitespace-only input before it
	// reaches the pipeline. The caller decides how to surface it.
	ErrEmptyUtterance = errors.New("empty utterance")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session already ended")
	ErrUnknownLocation = errors.New("unknown location")
)
