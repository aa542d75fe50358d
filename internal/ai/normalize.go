package ai

import (
	"fmt"
	"strings"

	"georeview/internal/models"

	"github.com/google/generative-ai-go/genai"
)

// toParts converts the ordered payload into SDK parts, preserving order.
func toParts(payload models.PromptPayload) []genai.Part {
	parts := make([]genai.Part, 0, len(payload.Parts))
	for _, p := range payload.Parts {
		if p.Image != nil {
			parts = append(parts, genai.Blob{MIMEType: p.Image.MIMEType, Data: p.Image.Data})
			continue
		}
		parts = append(parts, genai.Text(p.Text))
	}
	return parts
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", models.ErrResponseValidation)
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate (finish reason %v)", models.ErrResponseValidation, cand.FinishReason)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: candidate has no text", models.ErrResponseValidation)
	}
	return text, nil
}
