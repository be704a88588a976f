package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const translatePrompt = "Translate each line below from English to Spanish. " +
	"Return ONLY the translations, one per line, in the same order:\n"

// TranslationClient translates title batches through the Gemini API.
type TranslationClient struct {
	client *genai.Client
	model  string
}

// NewTranslationClient creates a translation adapter bound to one text model.
func NewTranslationClient(client *genai.Client, model string) *TranslationClient {
	return &TranslationClient{client: client, model: model}
}

// TranslateBatch translates lines in one call. Correlation is positional:
// reply line i is the translation of input line i. Blank reply lines are
// dropped, so a short reply means the tail went missing.
func (c *TranslationClient) TranslateBatch(ctx context.Context, lines []string) ([]string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(translatePrompt+strings.Join(lines, "\n")), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: translate batch: %w", err)
	}
	return splitReply(resp.Text()), nil
}

// splitReply turns the model reply into one translation per line.
func splitReply(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
