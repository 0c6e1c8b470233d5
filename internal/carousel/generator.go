package carousel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/KnuggetDeveloper/Carousel-Test/internal/ai"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/config"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/logger"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/prompt"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/slides"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/usage"
)

// URLPrefix is where cmd/server serves the carousel directory.
const URLPrefix = "/uploads/carousel/"

// GenerationResult statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

var (
	// ErrInvalidInput marks a failed request precondition. Handlers report
	// it as a client error; no API call has been made.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorage marks filesystem failures while persisting images.
	ErrStorage = errors.New("storage failure")
)

// ContentResult is the outcome of the content stage.
type ContentResult struct {
	Slides  []slides.SlideContent `json:"slides"`
	RawText string                `json:"raw_text"`
	Usage   ai.TokenUsage         `json:"token_usage"`
}

// ImageResult is the outcome of the first-image stage.
type ImageResult struct {
	SlideNumber int           `json:"slide_number"`
	ImageURL    string        `json:"image_url"`
	Usage       ai.TokenUsage `json:"token_usage"`
}

// GenerationResult is the outcome of one remaining-images item. Never
// mutated once appended; the sequence order matches the input slides.
type GenerationResult struct {
	SlideNumber int           `json:"slide_number"`
	ImageURL    string        `json:"image_url,omitempty"`
	Status      string        `json:"status"`
	Usage       ai.TokenUsage `json:"token_usage"`
	Error       string        `json:"error,omitempty"`
}

// Generator sequences the three generation stages around the AI client and
// persists returned images. Stateless between calls except for the reference
// image cache, which spares re-reading the same file while iterating on
// remaining-images prompts.
type Generator struct {
	cfg      *config.Config
	client   ai.Client
	tracker  *usage.Tracker
	log      *logger.Logger
	refCache *gocache.Cache
}

func New(cfg *config.Config, client ai.Client, tracker *usage.Tracker, log *logger.Logger) *Generator {
	return &Generator{
		cfg:      cfg,
		client:   client,
		tracker:  tracker,
		log:      log,
		refCache: gocache.New(30*time.Minute, 10*time.Minute),
	}
}

// GenerateContent templates transcript into promptTemplate, runs one text
// call and parses the output into slide records. The raw text comes back
// too, for debugging prompt formats.
func (g *Generator) GenerateContent(ctx context.Context, promptTemplate, transcript string) (*ContentResult, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("%w: transcript is required", ErrInvalidInput)
	}
	text, err := prompt.Substitute(promptTemplate, map[string]string{"transcript": transcript})
	if err != nil {
		return nil, fmt.Errorf("prompt template: %w", err)
	}

	resp, err := g.client.GenerateText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("content generation: %w", err)
	}
	g.logUsage("content", resp)

	records := slides.Parse(resp.Text)
	g.log.Info("content generated", "slides", len(records), "raw_chars", len(resp.Text))
	return &ContentResult{Slides: records, RawText: resp.Text, Usage: resp.Usage}, nil
}

// GenerateFirstImage produces the deck's reference image from one slide's
// heading and explanation. slideNumber and totalSlides are informational,
// exposed to the template as {slide_number} and {total_slides}.
func (g *Generator) GenerateFirstImage(ctx context.Context, promptTemplate, heading, explanation string, slideNumber, totalSlides int) (*ImageResult, error) {
	if strings.TrimSpace(heading) == "" {
		return nil, fmt.Errorf("%w: heading is required", ErrInvalidInput)
	}
	if strings.TrimSpace(explanation) == "" {
		return nil, fmt.Errorf("%w: explanation is required", ErrInvalidInput)
	}

	text, err := prompt.BuildImagePrompt(promptTemplate, map[string]string{
		"heading":      heading,
		"explanation":  explanation,
		"slide_number": strconv.Itoa(slideNumber),
		"total_slides": strconv.Itoa(totalSlides),
	})
	if err != nil {
		return nil, fmt.Errorf("prompt template: %w", err)
	}

	resp, err := g.client.GenerateImage(ctx, text, nil)
	if err != nil {
		return nil, fmt.Errorf("image generation: %w", err)
	}
	g.logUsage("first_image", resp)

	url, err := g.saveImage(resp.Images[0], slideNumber)
	if err != nil {
		return nil, err
	}
	g.log.Info("first image generated", "slide", slideNumber, "url", url)
	return &ImageResult{SlideNumber: slideNumber, ImageURL: url, Usage: resp.Usage}, nil
}

// GenerateRemainingImages runs one image call per slide, sequentially and in
// input order, conditioning each on the reference image. Item failures are
// recorded in that item's result and never abort the loop; the call itself
// fails only on its preconditions.
func (g *Generator) GenerateRemainingImages(ctx context.Context, promptTemplate string, items []slides.SlideContent, referenceURL string) ([]GenerationResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: slides are required", ErrInvalidInput)
	}
	ref, err := g.loadReference(referenceURL)
	if err != nil {
		return nil, err
	}

	results := make([]GenerationResult, 0, len(items))
	for _, item := range items {
		results = append(results, g.generateSlideImage(ctx, promptTemplate, item, ref))
	}
	return results, nil
}

func (g *Generator) generateSlideImage(ctx context.Context, promptTemplate string, item slides.SlideContent, ref *ai.ImageData) GenerationResult {
	text, err := prompt.BuildImagePrompt(promptTemplate, map[string]string{
		"heading":     item.Heading,
		"explanation": item.Explanation,
	})
	if err != nil {
		return g.failResult(item.SlideNumber, fmt.Errorf("prompt template: %w", err))
	}

	resp, err := g.client.GenerateImage(ctx, text, ref)
	if err != nil {
		return g.failResult(item.SlideNumber, fmt.Errorf("image generation: %w", err))
	}
	g.logUsage("remaining_images", resp)

	url, err := g.saveImage(resp.Images[0], item.SlideNumber)
	if err != nil {
		return g.failResult(item.SlideNumber, err)
	}

	g.log.Info("slide image generated", "slide", item.SlideNumber, "url", url)
	return GenerationResult{
		SlideNumber: item.SlideNumber,
		ImageURL:    url,
		Status:      StatusCompleted,
		Usage:       resp.Usage,
	}
}

func (g *Generator) failResult(slideNumber int, err error) GenerationResult {
	g.log.Warn("slide image failed", "slide", slideNumber, "error", err)
	return GenerationResult{
		SlideNumber: slideNumber,
		Status:      StatusFailed,
		Error:       err.Error(),
	}
}

// loadReference resolves, validates and reads the reference image, serving
// repeated runs against an unchanged file from the cache.
func (g *Generator) loadReference(referenceURL string) (*ai.ImageData, error) {
	if strings.TrimSpace(referenceURL) == "" {
		return nil, fmt.Errorf("%w: reference image is required", ErrInvalidInput)
	}
	refPath := g.referencePath(referenceURL)

	info, err := os.Stat(refPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reference image not found for %q", ErrInvalidInput, referenceURL)
	}

	key := refPath + "|" + strconv.FormatInt(info.ModTime().UnixNano(), 10)
	if cached, ok := g.refCache.Get(key); ok {
		img := cached.(ai.ImageData)
		return &img, nil
	}

	data, err := os.ReadFile(refPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read reference image: %v", ErrStorage, err)
	}
	img := ai.ImageData{Data: data, MIMEType: mimeForExt(filepath.Ext(refPath))}
	g.refCache.Set(key, img, gocache.DefaultExpiration)
	return &img, nil
}

// referencePath maps a reference URL (or bare file name) back into the
// carousel directory. Only the file name is honored, so request-supplied
// paths cannot point outside storage.
func (g *Generator) referencePath(referenceURL string) string {
	name := path.Base(strings.TrimSpace(referenceURL))
	return filepath.Join(g.cfg.Application.Storage.Carousel, name)
}

// saveImage writes one image payload under the carousel directory and
// returns the URL it is served from. Slide number plus a nanosecond
// timestamp keeps names unique without locking.
func (g *Generator) saveImage(img ai.ImageData, slideNumber int) (string, error) {
	dir := g.cfg.Application.Storage.Carousel
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: create carousel directory: %v", ErrStorage, err)
	}
	name := fmt.Sprintf("slide_%d_%d%s", slideNumber, time.Now().UnixNano(), extForMIME(img.MIMEType))
	if err := os.WriteFile(filepath.Join(dir, name), img.Data, 0644); err != nil {
		return "", fmt.Errorf("%w: write image %s: %v", ErrStorage, name, err)
	}
	return URLPrefix + name, nil
}

func (g *Generator) logUsage(op string, resp *ai.Response) {
	g.tracker.Log(usage.Record{
		Provider:         resp.Provider,
		Model:            resp.Model,
		Operation:        op,
		PromptTokens:     resp.Usage.Input,
		CompletionTokens: resp.Usage.Output,
		TotalTokens:      resp.Usage.Total,
	})
}

func extForMIME(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

func mimeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
