package textutil

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()
	spaceRe     = regexp.MustCompile(`[\s\x{00A0}]+`)
	newlineRe   = regexp.MustCompile(`[\r\n]+`)

	quoteReplacer = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
)

// Sanitize strips HTML from a raw post and normalizes whitespace, newlines
// and fancy quotes. Raw offers come from scraped social media pages and
// arrive with markup and exotic spacing.
func Sanitize(input string) string {
	text := stripPolicy.Sanitize(input)
	text = newlineRe.ReplaceAllString(text, "\n")
	text = spaceRe.ReplaceAllString(text, " ")
	text = quoteReplacer.Replace(text)
	return strings.TrimSpace(text)
}
