// Package advisor turns user input into Ayurvedic guidance via the configured
// text-generation backend, in two modes: free-text advice and a structured
// weekly diet plan.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ayurhealth-backend/internal/llm"
)

// ErrGenerationFailed is returned for any transport or model failure. The
// underlying error is logged, not propagated, so transport details never reach
// the caller.
var ErrGenerationFailed = errors.New("failed to get AI response")

type Advisor struct {
	gen llm.TextGenerator
}

func New(gen llm.TextGenerator) *Advisor {
	return &Advisor{gen: gen}
}

const advicePromptTemplate = `As an Ayurvedic health advisor, provide personalized advice based on the following information. Focus on practical, holistic recommendations incorporating diet, lifestyle, and natural remedies. Keep the response concise and actionable. Use markdown formatting to structure your response with appropriate headings, lists, and emphasis where needed.

User message: %s

Format your response using markdown with:
- Clear headings for different sections (##)
- Bullet points for lists
- *Emphasis* for important points
- > Blockquotes for traditional wisdom
- ` + "`inline code`" + ` for specific terms
- Proper spacing and formatting

Remember to maintain a supportive and knowledgeable tone while providing structured, easy-to-read advice.`

// Advise answers a free-text message as the Ayurvedic advisor persona. The
// response is markdown prose; no schema validation is applied in this mode.
func (a *Advisor) Advise(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message must not be empty")
	}

	text, err := a.gen.GenerateContent(ctx, fmt.Sprintf(advicePromptTemplate, message))
	if err != nil {
		slog.Error("error getting advice from model", "error", err)
		return "", ErrGenerationFailed
	}

	return text, nil
}
