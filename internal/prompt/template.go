package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyPrompt marks a blank template or a prompt that substituted down to
// nothing. Callers surface it as a usage error before any API call is made.
var ErrEmptyPrompt = errors.New("empty prompt")

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// imageTokens mark a prompt as already asking for an image (case-insensitive).
var imageTokens = []string{"generate", "create", "image", "draw"}

const imageInstruction = "Generate an image: "

// Substitute replaces every {name} occurrence in template with values[name].
// Matching is case-sensitive and global, and runs in a single pass over the
// original template, so replacement values containing brace substrings are
// never re-substituted. Placeholders without a value stay verbatim.
func Substitute(template string, values map[string]string) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", ErrEmptyPrompt
	}
	out := placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		if v, ok := values[match[1:len(match)-1]]; ok {
			return v
		}
		return match
	})
	return out, nil
}

// EnsureImageInstruction prepends a fixed instruction when the prompt does not
// already ask for an image. A heuristic nudge toward image output, nothing
// more.
func EnsureImageInstruction(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, tok := range imageTokens {
		if strings.Contains(lower, tok) {
			return prompt
		}
	}
	return imageInstruction + prompt
}

// BuildImagePrompt substitutes values into template and applies the image
// instruction guard. Blank templates and blank substitution results are
// rejected.
func BuildImagePrompt(template string, values map[string]string) (string, error) {
	out, err := Substitute(template, values)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: prompt is blank after substitution", ErrEmptyPrompt)
	}
	return EnsureImageInstruction(out), nil
}

// Placeholders lists the distinct placeholder names template references, in
// order of first appearance.
func Placeholders(template string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
