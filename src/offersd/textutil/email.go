package textutil

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)

// Longest first, so "edu.pl" is repaired before "pl" gets a chance to match
// a partial suffix.
var knownTLDs = []string{"edu.pl", "org.pl", "net.pl", "com.pl", "com", "eu", "pl"}

var tldJunkRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(knownTLDs))
	for _, tld := range knownTLDs {
		res = append(res, regexp.MustCompile(`(?i)(\.`+regexp.QuoteMeta(tld)+`)([a-zA-Z0-9_]+)\b`))
	}
	return res
}()

var leadingDigitsRe = regexp.MustCompile(`^\d+\.`)
var plausibleTLDRe = regexp.MustCompile(`\.[a-z]{2,4}$`)

// ExtractAndFixEmail finds an email address inside noisy free text. If the
// first scan yields nothing valid it repairs common paste damage (junk glued
// after a known TLD, stray leading numeric-dot prefixes) and scans again.
// Returns the lowercased address, or "" when none is found.
func ExtractAndFixEmail(text string) string {
	if email := tryExtract(text); email != "" {
		return email
	}
	return tryExtract(applyFixes(text))
}

func tryExtract(text string) string {
	match := emailRe.FindString(text)
	if match == "" {
		return ""
	}
	email := strings.ToLower(match)
	if !strings.Contains(email, "@") {
		return ""
	}
	if strings.HasSuffix(email, ".pl") || strings.HasSuffix(email, ".com") ||
		plausibleTLDRe.MatchString(email) {
		return email
	}
	return ""
}

func applyFixes(text string) string {
	for _, re := range tldJunkRes {
		text = re.ReplaceAllString(text, "$1")
	}
	return leadingDigitsRe.ReplaceAllString(text, "")
}
