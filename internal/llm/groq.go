package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type groqGenerator struct {
	client *resty.Client
	model  string
}

// NewGroqGenerator talks to Groq's OpenAI-compatible chat completions endpoint.
func NewGroqGenerator(apiKey, model string) TextGenerator {
	return &groqGenerator{
		client: resty.New().
			SetBaseURL("https://api.groq.com/openai/v1").
			SetAuthToken(apiKey).
			SetTimeout(60 * time.Second),
		model: model,
	}
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *groqGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	var result groqChatResponse
	res, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("groq api error: status=%d body=%s", res.StatusCode(), res.String())
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	return result.Choices[0].Message.Content, nil
}
