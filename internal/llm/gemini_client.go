package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model identifier is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

var tracer = otel.Tracer("gtm-followup.internal.llm")

type geminiModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient implements Generator using Google's Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   geminiModel
	modelID string
}

// NewGeminiClient creates a new Gemini generator. A blank API key is a
// construction error so the process refuses to start without it.
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("llm: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelID)
	model.SetTemperature(0.7)

	return &GeminiClient{
		client:  client,
		model:   model,
		modelID: modelID,
	}, nil
}

// Model returns the configured model identifier.
func (c *GeminiClient) Model() string {
	return c.modelID
}

// Generate sends a single prompt to Gemini and returns the trimmed reply.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.gemini.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", "gemini"),
		attribute.String("llm.model", c.modelID),
	)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		span.RecordError(err)
		return "", generationError("gemini", err)
	}
	text, err := geminiExtractText(resp)
	if err != nil {
		span.RecordError(err)
		return "", generationError("gemini", err)
	}
	return text, nil
}

// Close releases resources held by the Gemini client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func geminiExtractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini returned no candidates", ErrEmptyResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: gemini returned empty content (finish reason %v)", ErrEmptyResponse, candidate.FinishReason)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned no text parts", ErrEmptyResponse)
	}
	return text, nil
}
