package dialogue

import (
	"regexp"
	"strings"
	"unicode"
)

type substitution struct {
	pattern *regexp.Regexp
	repl    string
}

// firstPersonRewrites turn profile text echoed in the third person into the
// patient's own voice. Order matters: longer phrases first.
var firstPersonRewrites = []substitution{
	{regexp.MustCompile(`(?i)\b(?:the patient|they) report\w* feeling\b`), "I feel"},
	{regexp.MustCompile(`(?i)\b(?:the patient|they) report\w* that\b`), "I've noticed that"},
	{regexp.MustCompile(`(?i)\b(?:the patient|they) report\w*`), "I've noticed"},
	{regexp.MustCompile(`(?i)\bthe patient is\b`), "I am"},
	{regexp.MustCompile(`(?i)\bthe patient has\b`), "I have"},
	{regexp.MustCompile(`(?i)\bthe patient's\b`), "my"},
	{regexp.MustCompile(`(?i)\bthe patients\b`), "people like me"},
	{regexp.MustCompile(`(?i)\bthey feel\b`), "I feel"},
	{regexp.MustCompile(`(?i)\bthey are feeling\b`), "I am feeling"},
	{regexp.MustCompile(`(?i)\btheirs\b`), "mine"},
	{regexp.MustCompile(`(?i)\btheir\b`), "my"},
	{regexp.MustCompile(`(?i)the patient`), "I"},
	{regexp.MustCompile(`(?i)they report`), "I report"},
}

var sentenceStart = regexp.MustCompile(`(^|[.!?]\s+)(\p{Ll})`)

// ToFirstPerson rewrites third-person references to the patient into first
// person and re-capitalises sentence starts.
func ToFirstPerson(text string) string {
	for _, s := range firstPersonRewrites {
		text = s.pattern.ReplaceAllString(text, s.repl)
	}
	return capitalizeSentences(text)
}

func capitalizeSentences(text string) string {
	return sentenceStart.ReplaceAllStringFunc(text, func(m string) string {
		runes := []rune(m)
		last := len(runes) - 1
		runes[last] = unicode.ToUpper(runes[last])
		return string(runes)
	})
}

// firstSentence returns text up to and including the first terminal
// punctuation mark, or the whole text if there is none.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return text[:i+1]
	}
	return text
}
