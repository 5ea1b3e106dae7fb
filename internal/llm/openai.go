package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

type openAIGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIGenerator reads the API key from the standard OPENAI_API_KEY
// environment variable via the SDK's default configuration.
func NewOpenAIGenerator(model string) TextGenerator {
	return &openAIGenerator{
		client: openai.NewClient(),
		model:  model,
	}
}

func (o *openAIGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	res, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: o.model,
	})
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}

	if len(res.Choices) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	return res.Choices[0].Message.Content, nil
}
