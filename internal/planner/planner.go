package planner

import (
	"fmt"

	"github.com/aliskhannn/carousel-generator/internal/model"
	"github.com/aliskhannn/carousel-generator/internal/styles"
)

// CoverKey is the job key for the cover page image.
const CoverKey = "cover"

// Prompt topic budgets, in characters.
const (
	coverTopicLimit = 70
	slideTopicLimit = 80
)

// Job is one image-generation request unit. Jobs are created here once,
// resolved at most once by their owning fetch worker, and read-only after.
type Job struct {
	Key    string
	Prompt string
}

// SlideKey returns the job key for the i-th slide.
func SlideKey(i int) string {
	return fmt.Sprintf("slide_%d", i)
}

// Build produces the job set for a request: one cover job plus one job per
// slide, each with a style-conditioned prompt. Pure and deterministic; an
// empty deck still yields the cover job.
func Build(req model.CarouselRequest, style styles.Spec) []Job {
	jobs := make([]Job, 0, len(req.Slides)+1)

	jobs = append(jobs, Job{
		Key: CoverKey,
		Prompt: fmt.Sprintf(
			"Photorealistic, %s aesthetic, high-quality image representing: %s. 16:9 aspect ratio, no text or words in image.",
			style.Descriptor, truncate(req.Title, coverTopicLimit),
		),
	})

	for i, slide := range req.Slides {
		topic := slide.Title
		if topic == "" {
			topic = truncate(slide.Content.Primary(), slideTopicLimit)
		}

		jobs = append(jobs, Job{
			Key: SlideKey(i),
			Prompt: fmt.Sprintf(
				"Photorealistic, %s aesthetic, high-quality image for: %s. Professional, clean, no text or words in image.",
				style.Descriptor, topic,
			),
		})
	}

	return jobs
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
