package intelligence

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/mipractice/internal/dialogue"
	"github.com/alexanderramin/mipractice/internal/domain"
)

var (
	openQuestionRe = regexp.MustCompile(`(?i)^\s*(?:so,?\s+)?(?:what|how|why|tell me|describe|help me understand|walk me through|in what ways?)\b`)
	reflectionRe   = regexp.MustCompile(`(?i)^\s*(?:so,?\s+)?(?:it sounds like|sounds like|it seems|what I(?:'m| am) hearing|you(?:'re| are| feel| felt|'ve| have| want| wish| think|'d| would| seem| sound)\b|on one hand|part of you)`)
	affirmationRe  = regexp.MustCompile(`(?i)\b(?:that took (?:courage|effort)|well done|great job|good for you|I appreciate|impressive|you(?:'ve| have) (?:already|done|managed|made|worked)|that's (?:great|a big step|a good|impressive|really)|strength|proud of|you care (?:a lot|deeply))\b`)
	changeTalkRe   = regexp.MustCompile(`(?i)\b(?:why (?:might|would) you want|what would (?:be|make|it take)|how important|how confident|on a scale|what are the (?:benefits|advantages|good things|downsides|not so good)|what might change|reasons? (?:to|for) chang|what would you like|where would you like|if you (?:did|decided|were to)|what concerns you|what worries you about)`)
)

// DeterministicFeedback scores the clinician's turns with fixed heuristics.
// Used when no model is configured or the model output fails validation.
func DeterministicFeedback(transcript []domain.Turn) *Feedback {
	var scores MIScores
	turns := 0
	for _, t := range transcript {
		if t.Speaker != domain.SpeakerClinician {
			continue
		}
		turns++
		scoreUtterance(t.Text, &scores)
	}

	fb := &Feedback{
		Scores:                    scores,
		ReflectionToQuestionRatio: reflectionRatio(scores),
		Source:                    FeedbackSourceDeterministic,
	}

	if turns == 0 {
		fb.Summary = "No clinician turns were recorded, so there is nothing to review yet."
		fb.Improvements = []string{"Open the conversation with an open question such as \"What brings you in today?\""}
		return fb
	}

	fb.Strengths, fb.Improvements = assess(scores, fb.ReflectionToQuestionRatio)
	fb.Summary = fmt.Sprintf("Over %d clinician turn(s) you used %d reflection(s), %d open and %d closed question(s), and %d affirmation(s).",
		turns, scores.Reflections, scores.OpenQuestions, scores.ClosedQuestions, scores.Affirmations)
	return fb
}

func scoreUtterance(text string, scores *MIScores) {
	for _, sentence := range splitSentences(text) {
		isQuestion := strings.HasSuffix(sentence, "?")
		switch {
		case isQuestion && openQuestionRe.MatchString(sentence):
			scores.OpenQuestions++
		case isQuestion:
			scores.ClosedQuestions++
		case reflectionRe.MatchString(sentence):
			scores.Reflections++
		}
		if affirmationRe.MatchString(sentence) {
			scores.Affirmations++
		}
		if changeTalkRe.MatchString(sentence) || isQuestion && dialogue.ClassifyIntent(sentence) == domain.IntentPlan {
			scores.ChangeTalkPrompts++
		}
	}
}

// splitSentences breaks text after '.', '!' or '?', keeping the terminator.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// reflectionRatio is reflections per question; with no questions it is the
// reflection count itself.
func reflectionRatio(s MIScores) float64 {
	if q := s.Questions(); q > 0 {
		return float64(s.Reflections) / float64(q)
	}
	return float64(s.Reflections)
}

func assess(s MIScores, ratio float64) (strengths, improvements []string) {
	if s.Reflections > 0 && ratio >= 1 {
		strengths = append(strengths, fmt.Sprintf("You reflected at least as often as you asked questions (ratio %.1f).", ratio))
	} else {
		improvements = append(improvements, fmt.Sprintf("Aim for at least one reflection per question (ratio %.1f). Try starting with \"It sounds like...\".", ratio))
	}

	switch {
	case s.OpenQuestions > 0 && s.OpenQuestions >= s.ClosedQuestions:
		strengths = append(strengths, "Most of your questions were open, inviting the patient to elaborate.")
	case s.ClosedQuestions > 0:
		improvements = append(improvements, "Turn closed questions into open ones, e.g. \"Do you drink every day?\" becomes \"What does a typical week look like?\"")
	}

	if s.Affirmations > 0 {
		strengths = append(strengths, "You affirmed the patient's strengths and efforts.")
	} else {
		improvements = append(improvements, "Affirm something genuine, such as the effort it took to come in today.")
	}

	if s.ChangeTalkPrompts > 0 {
		strengths = append(strengths, "You invited change talk.")
	} else {
		improvements = append(improvements, "Evoke change talk, e.g. \"On a scale of 0 to 10, how important is this change to you?\"")
	}
	return strengths, improvements
}
