package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/aliskhannn/carousel-generator/internal/assets"
)

func imageResponse(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "here is your image"},
						{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}},
					},
				},
			},
		},
	}
}

func TestFirstImage(t *testing.T) {
	t.Run("returns inline bytes past leading text parts", func(t *testing.T) {
		data, err := firstImage(imageResponse([]byte("png-bytes")))
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("nil response", func(t *testing.T) {
		_, err := firstImage(nil)
		assert.Error(t, err)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := firstImage(&genai.GenerateContentResponse{})
		assert.Error(t, err)
	})

	t.Run("text only response", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content:      &genai.Content{Parts: []*genai.Part{{Text: "no image for you"}}},
					FinishReason: genai.FinishReasonStop,
				},
			},
		}
		_, err := firstImage(resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no image data")
	})

	t.Run("blocked generation names the finish reason", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}
		_, err := firstImage(resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stopped early")
	})
}

func TestClassify(t *testing.T) {
	t.Run("http 429 becomes a quota error", func(t *testing.T) {
		err := classify(fmt.Errorf("generate: %w", genai.APIError{Code: 429, Message: "slow down"}))
		assert.True(t, assets.IsQuota(err))

		var quota *assets.QuotaError
		assert.True(t, errors.As(err, &quota))
	})

	t.Run("quota wording becomes a quota error", func(t *testing.T) {
		err := classify(errors.New("generate: quota exceeded for project"))
		var quota *assets.QuotaError
		assert.True(t, errors.As(err, &quota))
	})

	t.Run("other api errors pass through", func(t *testing.T) {
		in := fmt.Errorf("generate: %w", genai.APIError{Code: 500, Message: "boom"})
		out := classify(in)
		assert.Equal(t, in, out)
		assert.False(t, assets.IsQuota(out))
	})
}

func TestSplitReply(t *testing.T) {
	t.Run("one translation per line in order", func(t *testing.T) {
		reply := "Crecimiento T3\nPanorama\nRiesgos"
		assert.Equal(t, []string{"Crecimiento T3", "Panorama", "Riesgos"}, splitReply(reply))
	})

	t.Run("blank lines and padding dropped", func(t *testing.T) {
		reply := "\n  Crecimiento T3  \n\nPanorama\n"
		assert.Equal(t, []string{"Crecimiento T3", "Panorama"}, splitReply(reply))
	})

	t.Run("empty reply", func(t *testing.T) {
		assert.Nil(t, splitReply(""))
	})
}
