package dialogue

import (
	"regexp"
	"strings"
)

// occupationPatterns are tried in order; the first match is the occupation.
var occupationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bretired(?: police officer| \w+)?`),
	regexp.MustCompile(`(?i)\b\w+ engineer\b`),
	regexp.MustCompile(`(?i)\bnurse\b`),
	regexp.MustCompile(`(?i)\btruck driver\b`),
	regexp.MustCompile(`(?i)\bpolice officer\b`),
	regexp.MustCompile(`(?i)\b(?:restaurant )?chef\b`),
	regexp.MustCompile(`(?i)\baccountant\b`),
	regexp.MustCompile(`(?i)\bteacher\b`),
	regexp.MustCompile(`(?i)\b\w+ supervisor\b`),
	regexp.MustCompile(`(?i)\b(?:graduate|college|university) student\b`),
	regexp.MustCompile(`(?i)\bstudent\b`),
}

// ExtractOccupation returns the patient's occupation as written in the
// background, lower-cased, or "" if none is recognised.
func ExtractOccupation(background string) string {
	for _, p := range occupationPatterns {
		if m := p.FindString(background); m != "" {
			return strings.ToLower(m)
		}
	}
	return ""
}

// withArticle prefixes an indefinite article.
func withArticle(noun string) string {
	if noun == "" {
		return ""
	}
	switch strings.ToLower(noun[:1]) {
	case "a", "e", "i", "o", "u":
		return "an " + noun
	default:
		return "a " + noun
	}
}
