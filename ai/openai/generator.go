package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/docrag/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
// The relevance gate runs at temperature 0; answer generation streams at a
// slightly higher temperature.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.GeneratorHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.GeneratorModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// IsRelevant runs the binary relevance classification.
// Any answer not beginning with "relevant" counts as irrelevant.
func (g *Generator) IsRelevant(ctx context.Context, contextText, question string) (bool, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(relevanceSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildUserPrompt(contextText, question))},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		g.logger.Error("relevance check failed", "err", err)
		return false, err
	}
	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from relevance model")
		return false, nil
	}

	output := strings.ToLower(strings.TrimSpace(response.Choices[0].Content))
	g.logger.Debug("relevance agent output", "output", output)
	return strings.HasPrefix(output, "relevant"), nil
}

// StreamAnswer generates an answer token by token, forwarding each token to fn.
func (g *Generator) StreamAnswer(ctx context.Context, contextText, question string, fn ai.TokenFunc) error {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(responseSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildUserPrompt(contextText, question) + "\n\nANSWER:")},
		},
	}

	_, err := g.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.2),
		llms.WithStreamingFunc(func(ctx context.Context, token []byte) error {
			if len(token) == 0 {
				return nil
			}
			return fn(ctx, string(token))
		}),
	)
	if err != nil {
		g.logger.Error("answer generation failed", "err", err)
		return err
	}
	return nil
}
