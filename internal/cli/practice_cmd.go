package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/mipractice/internal/cli/formatter"
	"github.com/alexanderramin/mipractice/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const onboardingIntro = `Welcome to mipractice.

You will talk with a simulated patient who is thinking about a change in
their health. Practice open questions, affirmations, reflections and
summaries. Type /end when you are done to get feedback, or /quit to
abandon the session.`

func newPracticeCmd(app *App) *cobra.Command {
	var flags filterFlags
	var pick bool

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Start a practice session and talk with the patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			settings, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}
			if !settings.OnboardingComplete {
				fmt.Fprintln(out, formatter.RenderBox("Getting started", onboardingIntro))
				if err := app.Settings.CompleteOnboarding(ctx); err != nil {
					return err
				}
			}

			if !cmd.Flags().Changed("topic") && settings.DefaultTopic != "" {
				flags.topic = settings.DefaultTopic
			}
			if !cmd.Flags().Changed("difficulty") && settings.DefaultDifficulty != "" {
				flags.difficulty = difficultyFlag(settings.DefaultDifficulty)
			}

			if pick {
				if !app.interactive() {
					return errors.New("--pick needs an interactive terminal")
				}
				difficulty := string(flags.difficulty)
				if err := pickForm(app.Catalog.Topics(), &flags.topic, &difficulty).Run(); err != nil {
					return err
				}
				flags.difficulty = difficultyFlag(difficulty)
			}

			session, err := app.Sessions.Start(ctx, flags.filters())
			if err != nil {
				if errors.Is(err, domain.ErrQuotaExceeded) {
					return fmt.Errorf("%w; run `mipractice plan set premium` for unlimited practice", err)
				}
				return err
			}

			fmt.Fprintln(out, formatter.FormatPatientProfile(session.Profile))

			if app.interactive() {
				return runPracticeView(ctx, cmd, app, session)
			}
			return runLinePractice(ctx, cmd.InOrStdin(), out, app, session)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose topic and difficulty from a menu")

	return cmd
}

func runPracticeView(ctx context.Context, cmd *cobra.Command, app *App, session *domain.PracticeSession) error {
	v := newPracticeView(ctx, app.Sessions, session)
	final, err := tea.NewProgram(v, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
	if err != nil {
		return err
	}

	done := final.(*practiceView)
	out := cmd.OutOrStdout()
	switch {
	case done.err != nil:
		return done.err
	case done.outcome == outcomeEnded:
		printReview(out, done.review)
	case done.outcome == outcomeAbandoned:
		fmt.Fprintln(out, formatter.Dim("Session abandoned."))
	}
	return nil
}

// runLinePractice reads one utterance per line. It is used when stdin is
// not a terminal, so sessions can be scripted. End of input ends the
// session with feedback.
func runLinePractice(ctx context.Context, in io.Reader, out io.Writer, app *App, session *domain.PracticeSession) error {
	fmt.Fprintln(out, formatter.Dim("Type to talk with the patient. /end for feedback, /quit to abandon."))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch command(line) {
		case cmdEnd:
			return endLinePractice(ctx, out, app, session)
		case cmdQuit:
			if err := app.Sessions.Abandon(ctx, session.ID); err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Dim("Session abandoned."))
			return nil
		case cmdPatient:
			fmt.Fprintln(out, formatter.FormatPatientProfile(session.Profile))
			continue
		}

		ex, err := app.Sessions.Say(ctx, session.ID, line)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatter.FormatTurn(ex.Patient, session.Profile.Name))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return endLinePractice(ctx, out, app, session)
}

func endLinePractice(ctx context.Context, out io.Writer, app *App, session *domain.PracticeSession) error {
	review, err := app.Sessions.End(ctx, session.ID)
	if err != nil {
		return err
	}
	printReview(out, review)
	return nil
}

type chatCommand int

const (
	cmdNone chatCommand = iota
	cmdEnd
	cmdQuit
	cmdPatient
	cmdHelp
)

// command recognises slash commands typed in the chat.
func command(input string) chatCommand {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "/end", "/done":
		return cmdEnd
	case "/quit", "/exit", "/q":
		return cmdQuit
	case "/patient":
		return cmdPatient
	case "/help", "/?":
		return cmdHelp
	default:
		return cmdNone
	}
}
