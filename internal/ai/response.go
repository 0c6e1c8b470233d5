package ai

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// TokenUsage mirrors the API's token counts; all zero when the API omits
// them. Informational only.
type TokenUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Total  int `json:"total"`
}

// ImageData is one inline image payload: either extracted from a generation
// response or attached to a request as the reference image.
type ImageData struct {
	Data     []byte
	MIMEType string
}

// Response is the normalized form of a generation response. Every driver
// produces it, so nothing downstream touches SDK types or guesses at
// response shapes.
type Response struct {
	Provider string
	Model    string
	Text     string
	Images   []ImageData
	Usage    TokenUsage
}

// newResponse normalizes an SDK response: it fails on responses without
// candidates or content parts, skips parts flagged as model thoughts,
// concatenates the text parts and collects inline image payloads.
func newResponse(resp *genai.GenerateContentResponse) (*Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("response has no candidates")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return nil, fmt.Errorf("response candidate has no content parts")
	}

	out := &Response{}
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		if part.Text != "" {
			text.WriteString(part.Text)
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			out.Images = append(out.Images, ImageData{
				Data:     part.InlineData.Data,
				MIMEType: part.InlineData.MIMEType,
			})
		}
	}
	out.Text = text.String()

	if um := resp.UsageMetadata; um != nil {
		out.Usage = TokenUsage{
			Input:  int(um.PromptTokenCount),
			Output: int(um.CandidatesTokenCount),
			Total:  int(um.TotalTokenCount),
		}
	}
	return out, nil
}
