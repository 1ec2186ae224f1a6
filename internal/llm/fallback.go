package llm

import (
	"context"
	"errors"

	"github.com/wolfman30/gtm-followup/pkg/logging"
)

// FallbackGenerator tries the primary provider and, when that fails,
// the secondary one. A nil secondary makes it a pass-through.
type FallbackGenerator struct {
	primary   Generator
	secondary Generator
	logger    *logging.Logger
}

// NewFallbackGenerator creates a generator with an optional secondary provider.
func NewFallbackGenerator(primary, secondary Generator, logger *logging.Logger) *FallbackGenerator {
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackGenerator{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Generate returns the primary's text, or the secondary's when the primary fails.
func (g *FallbackGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.primary == nil {
		return "", generationError("fallback", errors.New("primary generator not configured"))
	}
	text, err := g.primary.Generate(ctx, prompt)
	if err == nil {
		return text, nil
	}

	g.logger.Warn("primary generator failed, attempting fallback",
		"error", err.Error(),
		"fallback_available", g.secondary != nil,
	)
	if g.secondary == nil {
		return "", err
	}

	text, fallbackErr := g.secondary.Generate(ctx, prompt)
	if fallbackErr != nil {
		g.logger.Error("fallback generator also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return "", fallbackErr
	}
	g.logger.Info("fallback generator succeeded after primary failure")
	return text, nil
}
