package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AI          AIConfig          `mapstructure:"ai"`
	Application ApplicationConfig `mapstructure:"application"`
}

type ApplicationConfig struct {
	Name    string        `mapstructure:"name"`
	Version string        `mapstructure:"version"`
	Host    string        `mapstructure:"host"`
	Port    int           `mapstructure:"port"`
	Mode    string        `mapstructure:"mode"`
	Storage StorageConfig `mapstructure:"storage"`
}

func (c *ApplicationConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type StorageConfig struct {
	// Carousel holds generated slide images, served under /uploads/carousel/.
	Carousel string `mapstructure:"carousel"`
	// Prompts holds .txt overrides for the built-in prompt templates.
	Prompts string `mapstructure:"prompts"`
}

type AIConfig struct {
	ActiveProvider string                      `mapstructure:"active_provider"`
	Providers      map[string]ProviderSettings `mapstructure:"providers"`
}

// Active returns the settings for the configured provider.
func (c *AIConfig) Active() (string, ProviderSettings, error) {
	name := c.ActiveProvider
	settings, ok := c.Providers[name]
	if !ok {
		return "", ProviderSettings{}, fmt.Errorf("ai provider %q is not configured", name)
	}
	return name, settings, nil
}

type ProviderSettings struct {
	Driver      string  `mapstructure:"driver"` // gemini, mock
	Key         string  `mapstructure:"key"`
	Endpoint    string  `mapstructure:"endpoint"`
	Model       string  `mapstructure:"model"`
	ImageModel  string  `mapstructure:"image_model"`
	AspectRatio string  `mapstructure:"aspect_ratio"`
	ImageSize   string  `mapstructure:"image_size"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not found, using system environment variables")
	}

	viper.SetConfigFile("config.yaml") // Support optional config.yaml
	viper.AutomaticEnv()

	// Environment variable mappings
	mappings := []struct {
		key, env string
	}{
		{"application.host", "HOST"},
		{"application.port", "PORT"},
		{"application.mode", "APP_MODE"},
		{"ai.active_provider", "AI_PROVIDER"},

		// Storage
		{"application.storage.carousel", "STORAGE_CAROUSEL"},
		{"application.storage.prompts", "STORAGE_PROMPTS"},

		// AI Providers
		{"ai.providers.gemini.key", "GEMINI_KEY"},
		{"ai.providers.gemini.model", "GEMINI_MODEL"},
		{"ai.providers.gemini.image_model", "GEMINI_IMAGE_MODEL"},
		{"ai.providers.gemini.aspect_ratio", "GEMINI_ASPECT_RATIO"},
		{"ai.providers.gemini.image_size", "GEMINI_IMAGE_SIZE"},
	}

	for _, m := range mappings {
		viper.BindEnv(m.key, m.env)
	}

	// Defaults
	viper.SetDefault("application.name", "Carousel Test")
	viper.SetDefault("application.version", "0.1.0")
	viper.SetDefault("application.port", 8080)
	viper.SetDefault("application.mode", "development")
	viper.SetDefault("application.storage.carousel", "uploads/carousel")
	viper.SetDefault("application.storage.prompts", "prompts")
	viper.SetDefault("ai.providers.gemini.driver", "gemini")
	viper.SetDefault("ai.providers.gemini.model", "gemini-2.5-flash-preview-09-2025")
	viper.SetDefault("ai.providers.gemini.image_model", "gemini-2.5-flash-image")
	viper.SetDefault("ai.providers.gemini.aspect_ratio", "4:5")
	viper.SetDefault("ai.providers.gemini.image_size", "1K")
	viper.SetDefault("ai.providers.mock.driver", "mock")

	if err := viper.ReadInConfig(); err != nil {
		// Ignore if config.yaml is missing
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.AI.ActiveProvider == "" {
		cfg.AI.ActiveProvider = "gemini"
	}

	return &cfg, nil
}
