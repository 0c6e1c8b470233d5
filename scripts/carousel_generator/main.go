package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/KnuggetDeveloper/Carousel-Test/internal/ai"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/carousel"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/config"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/logger"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/prompt"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/usage"
)

// Headless end-to-end run: transcript file in, content plus a full image set
// out, using the registered prompt templates. Handy for trying a prompt
// change without clicking through the UI.
//
// Usage: go run scripts/carousel_generator/main.go -transcript talk.txt
func main() {
	transcriptPath := flag.String("transcript", "", "Path to the transcript text file")
	flag.Parse()

	if *transcriptPath == "" {
		fmt.Println("Usage: carousel_generator -transcript <file>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	raw, err := os.ReadFile(*transcriptPath)
	if err != nil {
		log.Fatalf("read transcript: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logg, err := logger.New(cfg.Application.Mode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logg.Sync()

	ctx := context.Background()
	client, err := ai.New(ctx, cfg, logg)
	if err != nil {
		log.Fatalf("ai client: %v", err)
	}
	library, err := prompt.NewLibrary(cfg.Application.Storage.Prompts, logg)
	if err != nil {
		log.Fatalf("prompt library: %v", err)
	}

	tracker := usage.NewTracker()
	gen := carousel.New(cfg, client, tracker, logg)

	contentTpl, _ := library.Get(prompt.ContentPrompt)
	firstTpl, _ := library.Get(prompt.FirstImagePrompt)
	remainingTpl, _ := library.Get(prompt.RemainingImagesPrompt)

	content, err := gen.GenerateContent(ctx, contentTpl, string(raw))
	if err != nil {
		log.Fatalf("content: %v", err)
	}
	fmt.Printf("Parsed %d slides\n", len(content.Slides))
	for _, s := range content.Slides {
		fmt.Printf("  %d. %s\n", s.SlideNumber, s.Heading)
	}
	if len(content.Slides) == 0 {
		log.Fatal("no slides recognized, adjust the content prompt")
	}

	first := content.Slides[0]
	ref, err := gen.GenerateFirstImage(ctx, firstTpl, first.Heading, first.Explanation, first.SlideNumber, len(content.Slides))
	if err != nil {
		log.Fatalf("first image: %v", err)
	}
	fmt.Printf("Reference image: %s\n", ref.ImageURL)

	if len(content.Slides) > 1 {
		results, err := gen.GenerateRemainingImages(ctx, remainingTpl, content.Slides[1:], ref.ImageURL)
		if err != nil {
			log.Fatalf("remaining images: %v", err)
		}
		for _, r := range results {
			if r.Status == carousel.StatusCompleted {
				fmt.Printf("  slide %d: %s\n", r.SlideNumber, r.ImageURL)
			} else {
				fmt.Printf("  slide %d: FAILED (%s)\n", r.SlideNumber, r.Error)
			}
		}
	}

	totals := tracker.Totals()
	fmt.Printf("Done: %d calls, %d tokens\n", totals.Calls, totals.TotalTokens)
}
