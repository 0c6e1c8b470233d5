package ai

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
)

// mockClient fakes the generation capability so the whole harness can be
// exercised without an API key (AI_PROVIDER=mock).
type mockClient struct {
	provider string
}

const mockModel = "mock-1"

func newMockClient(provider string) *mockClient {
	return &mockClient{provider: provider}
}

const mockDeck = `Slide 1
Heading: First Point
Explanation: Mock explanation for the first slide.

Slide 2
Heading: Second Point
Explanation: Mock explanation for the second slide.

Slide 3
Heading: Third Point
Explanation: Mock explanation for the third slide.
`

func (c *mockClient) GenerateText(ctx context.Context, prompt string) (*Response, error) {
	return &Response{
		Provider: c.provider,
		Model:    mockModel,
		Text:     mockDeck,
		Usage:    mockUsage(prompt, mockDeck),
	}, nil
}

func (c *mockClient) GenerateImage(ctx context.Context, prompt string, reference *ImageData) (*Response, error) {
	data, err := placeholderPNG(prompt)
	if err != nil {
		return nil, fmt.Errorf("mock generate image: %w", err)
	}
	return &Response{
		Provider: c.provider,
		Model:    mockModel,
		Images:   []ImageData{{Data: data, MIMEType: "image/png"}},
		Usage:    mockUsage(prompt, ""),
	}, nil
}

// placeholderPNG renders a solid 256x320 tile whose color follows the prompt,
// so consecutive mock slides are visually distinct in the UI.
func placeholderPNG(prompt string) ([]byte, error) {
	sum := 0
	for _, r := range prompt {
		sum += int(r)
	}
	fill := color.RGBA{
		R: uint8(40 + sum%200),
		G: uint8(30 + (sum/3)%200),
		B: uint8(50 + (sum/7)%200),
		A: 255,
	}

	img := image.NewRGBA(image.Rect(0, 0, 256, 320))
	for x := 0; x < 256; x++ {
		for y := 0; y < 320; y++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mockUsage(prompt, output string) TokenUsage {
	in := len(strings.Fields(prompt))
	out := len(strings.Fields(output))
	return TokenUsage{Input: in, Output: out, Total: in + out}
}
