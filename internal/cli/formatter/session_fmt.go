package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mipractice/internal/domain"
)

// FormatSessionList renders practice sessions in a bordered table.
func FormatSessionList(sessions []*domain.PracticeSession, now time.Time) string {
	if len(sessions) == 0 {
		return Dim("No practice sessions yet. Start one with `mipractice practice`.")
	}

	headers := []string{"ID", "PATIENT", "TOPIC", "STAGE", "STATUS", "STARTED"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.Profile.Name),
			s.Profile.Topic,
			StageColor(s.Profile.StageOfChange).Render(string(s.Profile.StageOfChange)),
			StatusPill(s.Status),
			HumanTimestamp(s.StartedAt, now),
		})
	}
	return RenderBox("Sessions", RenderTable(headers, rows))
}

// FormatSessionHeader renders the one-line session summary shown above a
// transcript.
func FormatSessionHeader(s *domain.PracticeSession) string {
	parts := []string{
		TruncID(s.ID),
		StatusPill(s.Status),
		Dim(s.StartedAt.Format("Jan 2 15:04")),
	}
	if s.EndedAt != nil {
		parts = append(parts, Dim(FormatDuration(s.EndedAt.Sub(s.StartedAt))))
	}
	return strings.Join(parts, "  ")
}

// FormatTurn renders one transcript line.
func FormatTurn(t domain.Turn, patientName string) string {
	if t.Speaker == domain.SpeakerClinician {
		return fmt.Sprintf("%s %s", StyleBlue.Render("You:"), t.Text)
	}
	label := patientName
	if label == "" {
		label = "Patient"
	}
	line := fmt.Sprintf("%s %s", StylePurple.Render(label+":"), t.Text)
	if t.Source == domain.SourceMock {
		line += " " + Dim("(offline)")
	}
	return line
}

// FormatTranscript renders all turns, or a placeholder when empty.
func FormatTranscript(turns []domain.Turn, patientName string) string {
	if len(turns) == 0 {
		return Dim("No turns recorded.")
	}
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, FormatTurn(t, patientName))
	}
	return strings.Join(lines, "\n")
}
