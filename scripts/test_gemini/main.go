package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

// Connectivity check: one text call against the configured Gemini model.
//
// Usage: go run scripts/test_gemini/main.go
func main() {
	fmt.Println("🛠️  Gemini Connectivity Test")

	godotenv.Load()
	apiKey := os.Getenv("GEMINI_KEY")
	if apiKey == "" {
		log.Fatal("❌ GEMINI_KEY is not set")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash-preview-09-2025"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatalf("❌ Client error: %v", err)
	}

	fmt.Printf("📍 Model: %s\n", model)

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text("Say hello in one short sentence."), nil)
	if err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}

	fmt.Println("✅ Response:")
	fmt.Println(resp.Text())
	if resp.UsageMetadata != nil {
		fmt.Printf("📊 Tokens: %d prompt + %d output = %d total\n",
			resp.UsageMetadata.PromptTokenCount,
			resp.UsageMetadata.CandidatesTokenCount,
			resp.UsageMetadata.TotalTokenCount)
	}
}
