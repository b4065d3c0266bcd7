package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/mipractice/internal/cli/formatter"
	"github.com/alexanderramin/mipractice/internal/dialogue"
	"github.com/alexanderramin/mipractice/internal/scenario"
	"github.com/spf13/cobra"
)

func newPatientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Generate simulated patients",
	}

	cmd.AddCommand(
		newPatientGenerateCmd(app),
		newPatientTopicsCmd(app),
	)

	return cmd
}

func newPatientGenerateCmd(app *App) *cobra.Command {
	var flags filterFlags
	var seed int64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a patient profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := app.Generator
			if cmd.Flags().Changed("seed") {
				gen = scenario.NewSeededGenerator(app.Catalog, seed)
			}
			profile := gen.GenerateProfile(flags.filters())

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(profile, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding profile: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			fmt.Fprintln(out, formatter.FormatPatientProfile(profile))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for a reproducible profile")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")

	return cmd
}

func newPatientTopicsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List scenario topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTopics(app.Catalog.Topics()))
			return nil
		},
	}
}

func newIntentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intent <utterance>",
		Short: "Classify what a clinician utterance is asking for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIntent(dialogue.ClassifyIntent(args[0])))
			return nil
		},
	}
}

func newRespondCmd(app *App) *cobra.Command {
	var flags filterFlags
	var seed int64
	var sessionID string

	cmd := &cobra.Command{
		Use:   "respond <utterance>",
		Short: "Print the offline patient reply to one utterance",
		Long: "Print the offline patient reply to one utterance. Without --session a " +
			"fresh patient is generated; with --session the stored patient answers " +
			"and nothing is recorded.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if sessionID != "" {
				session, err := app.Sessions.GetByID(cmd.Context(), sessionID)
				if err != nil {
					return fmt.Errorf("loading session %s: %w", sessionID, err)
				}
				reply := app.Responder.Respond(args[0], session.Profile)
				fmt.Fprintln(out, formatter.FormatTurn(patientTurn(reply), session.Profile.Name))
				return nil
			}

			gen := app.Generator
			if cmd.Flags().Changed("seed") {
				gen = scenario.NewSeededGenerator(app.Catalog, seed)
			}
			profile := gen.GenerateProfile(flags.filters())

			fmt.Fprintln(out, formatter.FormatPatientProfile(profile))
			fmt.Fprintln(out, formatter.FormatTurn(clinicianTurn(args[0]), ""))
			fmt.Fprintln(out, formatter.FormatTurn(patientTurn(app.Responder.Respond(args[0], profile)), profile.Name))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for a reproducible patient")
	cmd.Flags().StringVar(&sessionID, "session", "", "Answer as the patient of a stored session")

	return cmd
}
