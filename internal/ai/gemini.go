package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/KnuggetDeveloper/Carousel-Test/internal/config"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/logger"
)

type geminiClient struct {
	client   *genai.Client
	provider string
	settings config.ProviderSettings
	log      *logger.Logger
}

func newGeminiClient(ctx context.Context, provider string, settings config.ProviderSettings, log *logger.Logger) (*geminiClient, error) {
	if settings.Key == "" {
		return nil, fmt.Errorf("gemini: api key is not set (GEMINI_KEY)")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  settings.Key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &geminiClient{
		client:   client,
		provider: provider,
		settings: settings,
		log:      log,
	}, nil
}

func (c *geminiClient) GenerateText(ctx context.Context, prompt string) (*Response, error) {
	cfg := &genai.GenerateContentConfig{}
	if c.settings.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(c.settings.Temperature))
	}
	if c.settings.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(c.settings.MaxTokens)
	}

	c.log.Debug("gemini text call", "model", c.settings.Model)
	resp, err := c.client.Models.GenerateContent(ctx, c.settings.Model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate text: %w", err)
	}

	out, err := newResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("gemini generate text: %w", err)
	}
	if out.Text == "" {
		return nil, fmt.Errorf("gemini generate text: response contains no text")
	}
	out.Provider, out.Model = c.provider, c.settings.Model
	return out, nil
}

func (c *geminiClient) GenerateImage(ctx context.Context, prompt string, reference *ImageData) (*Response, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if reference != nil {
		parts = append(parts, genai.NewPartFromBytes(reference.Data, reference.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
		ImageConfig: &genai.ImageConfig{
			AspectRatio: c.settings.AspectRatio,
			ImageSize:   c.settings.ImageSize,
		},
	}

	c.log.Debug("gemini image call", "model", c.settings.ImageModel, "with_reference", reference != nil)
	resp, err := c.client.Models.GenerateContent(ctx, c.settings.ImageModel, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate image: %w", err)
	}

	out, err := newResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("gemini generate image: %w", err)
	}
	if len(out.Images) == 0 {
		return nil, fmt.Errorf("gemini generate image: response contains no image data")
	}
	out.Provider, out.Model = c.provider, c.settings.ImageModel
	return out, nil
}
