package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Responder answers AI-directed questions on behalf of the service.
type Responder struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewResponder(apiKey string) (*Responder, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &Responder{
		client: client,
		model:  model,
	}, nil
}

func (r *Responder) Close() {
	r.client.Close()
}

// Answer generates a reply to a senior's question.
func (r *Responder) Answer(ctx context.Context, title, content string) (string, error) {
	prompt := fmt.Sprintf(`
		You are answering a question from an elderly user who is not
		comfortable with technology.

		Question title: %s
		Question: %s

		Task: Answer in short numbered steps using plain, friendly
		language. Avoid jargon. Assume a smartphone unless the question
		says otherwise.
		Language: Korean.
		Output: Just the answer text.
	`, title, content)

	resp, err := r.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", fmt.Errorf("gemini returned an empty answer")
	}
	return answer, nil
}
