package slides

import (
	"regexp"
	"strconv"
	"strings"
)

// SlideContent is one structured record extracted from model output. Records
// keep the order they appear in the text, not slide-number order.
type SlideContent struct {
	SlideNumber int    `json:"slide_number"`
	Heading     string `json:"heading"`
	Explanation string `json:"explanation"`
}

var (
	markerRe      = regexp.MustCompile(`(?i)slide\s+(\d+)`)
	headingRe     = regexp.MustCompile(`(?is)heading:\s*(.*?)(?:\n\s*\n|explanation:|$)`)
	explanationRe = regexp.MustCompile(`(?is)explanation:\s*(.*)`)
)

// Parse extracts slide records from freeform model text. It never fails:
// text without slide markers yields an empty slice, a block missing its
// heading or explanation is dropped, and slide numbers are carried over
// as written, duplicates and gaps included. Markers appearing inside
// explanation text will split the block there; model output is expected
// not to do that.
func Parse(text string) []SlideContent {
	markers := markerRe.FindAllStringSubmatchIndex(text, -1)
	if len(markers) == 0 {
		return nil
	}

	var records []SlideContent
	for i, m := range markers {
		number, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}

		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		block := text[m[1]:end]

		heading := extractField(headingRe, block)
		explanation := extractField(explanationRe, block)
		if heading == "" || explanation == "" {
			continue
		}

		records = append(records, SlideContent{
			SlideNumber: number,
			Heading:     heading,
			Explanation: explanation,
		})
	}
	return records
}

func extractField(re *regexp.Regexp, block string) string {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return cleanField(m[1])
}

// cleanField strips markdown emphasis markers and surrounding whitespace.
func cleanField(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.TrimSpace(s)
}
