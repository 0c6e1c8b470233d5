package ai

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/KnuggetDeveloper/Carousel-Test/internal/slides"
)

func TestMockClient(t *testing.T) {
	c := newMockClient("mock")
	ctx := context.Background()

	t.Run("text output parses into slides", func(t *testing.T) {
		resp, err := c.GenerateText(ctx, "anything")
		if err != nil {
			t.Fatalf("GenerateText: %v", err)
		}
		records := slides.Parse(resp.Text)
		if len(records) != 3 {
			t.Fatalf("mock deck should parse to 3 slides, got %d", len(records))
		}
		for i, r := range records {
			if r.SlideNumber != i+1 {
				t.Errorf("slide %d numbered %d", i, r.SlideNumber)
			}
		}
		if resp.Usage.Total == 0 {
			t.Error("mock usage should be non-zero")
		}
	})

	t.Run("image output is a decodable png", func(t *testing.T) {
		resp, err := c.GenerateImage(ctx, "A red square", nil)
		if err != nil {
			t.Fatalf("GenerateImage: %v", err)
		}
		if len(resp.Images) != 1 {
			t.Fatalf("want 1 image, got %d", len(resp.Images))
		}
		img, err := png.Decode(bytes.NewReader(resp.Images[0].Data))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 320 {
			t.Errorf("bounds %v", img.Bounds())
		}
	})

	t.Run("different prompts give different tiles", func(t *testing.T) {
		a, _ := c.GenerateImage(ctx, "A red square", nil)
		b, _ := c.GenerateImage(ctx, "A very blue circle", nil)
		if bytes.Equal(a.Images[0].Data, b.Images[0].Data) {
			t.Error("expected distinct placeholder images")
		}
	})
}
