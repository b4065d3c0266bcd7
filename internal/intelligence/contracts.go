package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mipractice/internal/domain"
)

// PatientReply is one simulated patient turn.
type PatientReply struct {
	Text   string                 `json:"text"`
	Intent domain.ClinicianIntent `json:"intent"` // classified from the clinician utterance
	Source domain.ReplySource     `json:"source"`
}

// Feedback source values.
const (
	FeedbackSourceLLM           = "llm"
	FeedbackSourceDeterministic = "deterministic"
)

// MIScores counts the motivational interviewing skills observed in the
// clinician's turns.
type MIScores struct {
	Reflections       int `json:"reflections"`
	OpenQuestions     int `json:"open_questions"`
	ClosedQuestions   int `json:"closed_questions"`
	Affirmations      int `json:"affirmations"`
	ChangeTalkPrompts int `json:"change_talk_prompts"`
}

// Questions returns the total number of questions asked.
func (s MIScores) Questions() int {
	return s.OpenQuestions + s.ClosedQuestions
}

// Feedback is the end-of-session review shown to the practitioner.
type Feedback struct {
	Summary                   string   `json:"summary"`
	Strengths                 []string `json:"strengths"`
	Improvements              []string `json:"improvements"`
	Scores                    MIScores `json:"scores"`
	ReflectionToQuestionRatio float64  `json:"reflection_to_question_ratio"`
	Source                    string   `json:"source"` // "llm" or "deterministic"
}

// Markdown renders the feedback as a markdown document.
func (f *Feedback) Markdown() string {
	var b strings.Builder
	b.WriteString("# Session feedback\n\n")
	b.WriteString(f.Summary)
	b.WriteString("\n\n## Skill counts\n\n")
	b.WriteString("| Skill | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Reflections | %d |\n", f.Scores.Reflections)
	fmt.Fprintf(&b, "| Open questions | %d |\n", f.Scores.OpenQuestions)
	fmt.Fprintf(&b, "| Closed questions | %d |\n", f.Scores.ClosedQuestions)
	fmt.Fprintf(&b, "| Affirmations | %d |\n", f.Scores.Affirmations)
	fmt.Fprintf(&b, "| Change talk prompts | %d |\n", f.Scores.ChangeTalkPrompts)
	fmt.Fprintf(&b, "\nReflection to question ratio: **%.1f**\n", f.ReflectionToQuestionRatio)

	writeList(&b, "What went well", f.Strengths)
	writeList(&b, "Try next time", f.Improvements)
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
