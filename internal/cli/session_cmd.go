package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/mipractice/internal/cli/formatter"
	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/service"
	"github.com/spf13/cobra"
)

const defaultListLimit = 20

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage practice sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionSayCmd(app),
		newSessionEndCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent practice sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionList(sessions, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "Maximum sessions to show")
	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session's patient, transcript and feedback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			session, err := app.Sessions.GetByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading session %s: %w", args[0], err)
			}
			turns, err := app.Sessions.Transcript(ctx, session.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, formatter.FormatSessionHeader(session))
			fmt.Fprintln(out, formatter.FormatPatientProfile(session.Profile))
			fmt.Fprintln(out, formatter.Header("Transcript"))
			fmt.Fprintln(out, formatter.FormatTranscript(turns, session.Profile.Name))

			fb, err := app.Sessions.Feedback(ctx, session.ID)
			switch {
			case errors.Is(err, service.ErrNoFeedback):
				return nil
			case err != nil:
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatFeedback(fb, formatter.TerminalWidth(80)))
			return nil
		},
	}
}

func newSessionSayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "say <id> <utterance>",
		Short: "Say one thing to the patient of an active session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			session, err := app.Sessions.GetByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading session %s: %w", args[0], err)
			}

			stop := app.startSpinner(cmd.ErrOrStderr(), session.Profile.Name+" is thinking...")
			ex, err := app.Sessions.Say(ctx, session.ID, args[1])
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTurn(ex.Patient, session.Profile.Name))
			return nil
		},
	}
}

func newSessionEndCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "end <id>",
		Short: "End a session and show feedback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := app.startSpinner(cmd.ErrOrStderr(), "Reviewing the session...")
			review, err := app.Sessions.End(cmd.Context(), args[0])
			stop()
			if err != nil {
				return err
			}
			printReview(cmd.OutOrStdout(), review)
			return nil
		},
	}
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a session and its transcript",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := app.Sessions.GetByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading session %s: %w", args[0], err)
			}
			if err := app.Sessions.Delete(ctx, session.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s (%s)\n", formatter.TruncID(session.ID), session.Profile.Name)
			return nil
		},
	}
}

// startSpinner shows a spinner on w when running in a terminal. The
// returned function stops it.
func (a *App) startSpinner(w io.Writer, message string) func() {
	if !a.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(w, message)
}

func printReview(w io.Writer, review *service.SessionReview) {
	fmt.Fprintf(w, "Session %s completed.\n\n", formatter.TruncID(review.Session.ID))
	fmt.Fprintln(w, formatter.FormatFeedback(review.Feedback, formatter.TerminalWidth(80)))
}

func clinicianTurn(text string) domain.Turn {
	return domain.Turn{Speaker: domain.SpeakerClinician, Text: text}
}

func patientTurn(text string) domain.Turn {
	return domain.Turn{Speaker: domain.SpeakerPatient, Text: text, Source: domain.SourceMock}
}
