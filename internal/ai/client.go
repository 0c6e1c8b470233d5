package ai

import (
	"context"
	"fmt"

	"github.com/KnuggetDeveloper/Carousel-Test/internal/config"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/logger"
)

// Client is the generation capability the orchestrator calls. GenerateText
// guarantees a Response with non-empty Text; GenerateImage guarantees at
// least one image, conditioned on the reference when one is given.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (*Response, error)
	GenerateImage(ctx context.Context, prompt string, reference *ImageData) (*Response, error)
}

// New builds the driver selected by ai.active_provider.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (Client, error) {
	name, settings, err := cfg.AI.Active()
	if err != nil {
		return nil, err
	}

	switch settings.Driver {
	case "gemini":
		return newGeminiClient(ctx, name, settings, log)
	case "mock":
		return newMockClient(name), nil
	default:
		return nil, fmt.Errorf("unknown ai driver %q for provider %q", settings.Driver, name)
	}
}
