package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/aliskhannn/carousel-generator/internal/assets"
)

// NewClient connects to the Gemini API. One client is shared by the image
// and translation adapters.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return client, nil
}

// ImageClient generates images through the Gemini API.
type ImageClient struct {
	client *genai.Client
	model  string
}

// NewImageClient creates an image adapter bound to one model.
func NewImageClient(client *genai.Client, model string) *ImageClient {
	return &ImageClient{client: client, model: model}
}

// Generate renders one image for the prompt and returns its raw bytes.
// Quota and rate limit failures come back wrapped in *assets.QuotaError so
// the fetch policy can tell them from terminal ones.
func (c *ImageClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	})
	if err != nil {
		return nil, classify(fmt.Errorf("gemini: generate image: %w", err))
	}

	data, err := firstImage(resp)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return data, nil
}

// firstImage walks the first candidate for inline image bytes.
func firstImage(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errors.New("empty generation response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("generation stopped early: %s", candidate.FinishReason)
	}
	return nil, errors.New("no image data in response")
}

// classify marks quota failures with the typed error the fetch policy keys
// its retries on.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return &assets.QuotaError{Err: err}
	}
	if assets.IsQuota(err) {
		return &assets.QuotaError{Err: err}
	}
	return err
}
