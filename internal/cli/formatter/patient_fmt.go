package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var labelStyle = lipgloss.NewStyle().Foreground(ColorDim).Width(10)

// FormatPatientProfile renders a patient card.
func FormatPatientProfile(p domain.PatientProfile) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name))
	b.WriteString(Dim(fmt.Sprintf("  %d, %s", p.Age, p.Sex)))
	b.WriteString("\n")
	b.WriteString(StageBadge(p.StageOfChange))
	b.WriteString("\n\n")

	writeField(&b, "TOPIC", StylePurple.Render(p.Topic))
	writeField(&b, "PROBLEM", p.PresentingProblem)
	writeField(&b, "COMPLAINT", StyleYellow.Render(p.ChiefComplaint))
	writeField(&b, "HISTORY", p.History)
	writeField(&b, "ABOUT", p.Background)

	return RenderBox("Patient", strings.TrimRight(b.String(), "\n"))
}

func writeField(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		value = Dim("--")
	}
	b.WriteString(labelStyle.Render(label))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}

// FormatTopics renders the catalog topics as a numbered list.
func FormatTopics(topics []string) string {
	if len(topics) == 0 {
		return Dim("No topics in the scenario catalog.")
	}
	var b strings.Builder
	for i, t := range topics {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%2d.", i+1)), t))
	}
	return RenderBox("Topics", strings.TrimRight(b.String(), "\n"))
}

// FormatIntent renders a classified clinician intent.
func FormatIntent(intent domain.ClinicianIntent) string {
	return fmt.Sprintf("%s %s", Dim("intent:"), IntentBadge(intent))
}

// IntentBadge colors an intent label.
func IntentBadge(intent domain.ClinicianIntent) string {
	switch intent {
	case domain.IntentEmotion:
		return StylePurple.Render(string(intent))
	case domain.IntentPlan:
		return StyleGreen.Render(string(intent))
	case domain.IntentBarrier:
		return StyleYellow.Render(string(intent))
	case domain.IntentInfo:
		return StyleBlue.Render(string(intent))
	default:
		return StyleFg.Render(string(intent))
	}
}
