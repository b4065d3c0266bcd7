package dialogue

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/mipractice/internal/domain"
)

// intentRule pairs a predicate with the intent it yields. Rules are tried in
// order and the first match wins.
type intentRule struct {
	intent  domain.ClinicianIntent
	pattern *regexp.Regexp
}

var intentRules = []intentRule{
	{domain.IntentEmotion, regexp.MustCompile(`(?i)\bfeel|\bemotion|\bhow are you (?:doing|feeling)\b`)},
	{domain.IntentPlan, regexp.MustCompile(`(?i)\bplan|\bnext steps?\b|\bgoals?\b|\bwhat will you do\b|\bhow to start\b`)},
	{domain.IntentBarrier, regexp.MustCompile(`(?i)\bworr(?:y|ied|ies|ying)\b|\bconcern|\bblock|\bbarrier|\bwhat gets in the way\b`)},
	{domain.IntentInfo, regexp.MustCompile(`(?i)^\s*(?:what|how|when|where|why)\b`)},
}

// ClassifyIntent returns the kind of reply the clinician's utterance is
// trying to elicit. Utterances matching no rule are treated as reflections.
func ClassifyIntent(utterance string) domain.ClinicianIntent {
	text := strings.TrimSpace(utterance)
	for _, rule := range intentRules {
		if rule.pattern.MatchString(text) {
			return rule.intent
		}
	}
	return domain.IntentReflect
}
