package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/intelligence"
)

// FormatUsage renders the tier and this month's session usage.
func FormatUsage(u *domain.Usage) string {
	var b strings.Builder
	writeField(&b, "PLAN", TierBadge(u.Tier))
	writeField(&b, "MONTH", u.MonthStart.Format("January 2006"))
	if u.Limit < 0 {
		writeField(&b, "SESSIONS", fmt.Sprintf("%d used %s", u.Used, Dim("(unlimited)")))
	} else {
		writeField(&b, "SESSIONS", RenderQuotaBar(u.Used, u.Limit))
		writeField(&b, "LEFT", fmt.Sprintf("%d", u.Remaining()))
	}
	return RenderBox("Plan", strings.TrimRight(b.String(), "\n"))
}

// FormatSettings renders persisted user settings.
func FormatSettings(s *domain.Settings) string {
	var b strings.Builder
	status := StyleYellow.Render("○ Not completed")
	if s.OnboardingComplete {
		status = StyleGreen.Render("✔ Completed")
	}
	writeField(&b, "ONBOARDING", status)
	writeField(&b, "TOPIC", s.DefaultTopic)
	writeField(&b, "LEVEL", string(s.DefaultDifficulty))
	return RenderBox("Settings", strings.TrimRight(b.String(), "\n"))
}

// FormatFeedback renders session feedback through glamour. If glamour
// fails the raw markdown is returned.
func FormatFeedback(f *intelligence.Feedback, width int) string {
	md := f.Markdown()
	out, err := RenderMarkdownWithWidth(md, width)
	if err != nil || out == "" {
		return md
	}
	if f.Source == intelligence.FeedbackSourceDeterministic {
		out += "\n" + Dim("  Offline review: generated without a language model.")
	}
	return out
}
