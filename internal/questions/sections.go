package questions

import (
	"regexp"
	"strings"
)

var (
	// A heading is a line holding only a capitalized word followed by
	// letters and spaces.
	headingRe = regexp.MustCompile(`(?m)^[A-Z][a-zA-Z \t]+$`)
	titleRe   = regexp.MustCompile(`\A([A-Z][a-zA-Z \t]+)(?:\n|\z)`)

	// The value runs up to the next colon, across line breaks.
	keyPointRe = regexp.MustCompile(`(?m)^[ \t]*([\p{L}\p{N}_]+(?:[ \t]+[\p{L}\p{N}_]+)*):\s*([^:]+)`)
)

// Section is a span of text introduced by a heading line.
type Section struct {
	Title string
	Text  string // Includes the heading line.
}

// KeyPoint is a "key: value" pair found inside a section. Only Key is
// rendered into questions.
type KeyPoint struct {
	Key   string
	Value string
}

// SplitSections cuts text at heading lines. Text before the first heading
// belongs to no section, and sections with nothing below the heading are
// dropped.
func SplitSections(text string) []Section {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	locs := headingRe.FindAllStringIndex(text, -1)

	var sections []Section
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := text[loc[0]:end]
		if strings.TrimSpace(text[loc[1]:end]) == "" {
			continue
		}
		sections = append(sections, Section{
			Title: sectionTitle(body),
			Text:  body,
		})
	}
	return sections
}

func sectionTitle(section string) string {
	m := titleRe.FindStringSubmatch(section)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// FindKeyPoints scans a section left to right for non-overlapping
// "key: value" lines.
func FindKeyPoints(section string) []KeyPoint {
	matches := keyPointRe.FindAllStringSubmatch(section, -1)
	points := make([]KeyPoint, 0, len(matches))
	for _, m := range matches {
		points = append(points, KeyPoint{
			Key:   m[1],
			Value: strings.TrimSpace(m[2]),
		})
	}
	return points
}

// CountKeyPoints returns how many key points text yields across all sections.
func CountKeyPoints(text string) int {
	n := 0
	for _, s := range SplitSections(text) {
		n += len(FindKeyPoints(s.Text))
	}
	return n
}
