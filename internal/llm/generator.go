// Package llm drafts outreach text with a hosted language model.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyResponse is wrapped when a provider answers without usable text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Generator turns a prompt into trimmed message text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationError reports a failed generation call for a named provider.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("llm: %s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func generationError(provider string, err error) error {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return err
	}
	return &GenerationError{Provider: provider, Err: err}
}
