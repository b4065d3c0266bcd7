package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mipractice/internal/cli/formatter"
	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// mipracticeHuhTheme returns a huh theme using the formatter palette.
func mipracticeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// pickForm asks for a topic and a difficulty. Empty values mean "any".
func pickForm(topics []string, topic, difficulty *string) *huh.Form {
	topicOpts := make([]huh.Option[string], 0, len(topics)+1)
	topicOpts = append(topicOpts, huh.NewOption("Any topic", ""))
	for _, t := range topics {
		topicOpts = append(topicOpts, huh.NewOption(t, t))
	}

	diffOpts := make([]huh.Option[string], 0, 4)
	diffOpts = append(diffOpts, huh.NewOption("Any difficulty", ""))
	for _, d := range domain.AllDifficulties() {
		diffOpts = append(diffOpts, huh.NewOption(difficultyLabel(d), string(d)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Topic").
				Options(topicOpts...).
				Value(topic),
			huh.NewSelect[string]().
				Title("Difficulty").
				Description("Harder patients are less ready to change.").
				Options(diffOpts...).
				Value(difficulty),
		),
	).WithTheme(mipracticeHuhTheme()).WithShowHelp(false)
}

func difficultyLabel(d domain.Difficulty) string {
	names := make([]string, 0, 3)
	for _, st := range d.Stages() {
		names = append(names, string(st))
	}
	return fmt.Sprintf("%s (%s)", d, strings.Join(names, ", "))
}

func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	).WithTheme(mipracticeHuhTheme()).WithShowHelp(false)
}
