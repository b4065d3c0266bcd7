package cli

import (
	"fmt"

	"github.com/alexanderramin/mipractice/internal/cli/formatter"
	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the subscription tier and this month's usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := app.Subscription.Usage(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUsage(usage))
			return nil
		},
	}

	cmd.AddCommand(newPlanSetCmd(app))
	return cmd
}

func newPlanSetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:       "set <free|premium>",
		Short:     "Change the subscription tier",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.TierFree), string(domain.TierPremium)},
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, ok := domain.ParseTier(args[0])
			if !ok {
				return fmt.Errorf("unknown tier %q (want free or premium)", args[0])
			}

			if app.interactive() && !yes {
				confirmed := false
				form := confirmForm(fmt.Sprintf("Switch to the %s plan?", tier), &confirmed)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Plan unchanged."))
					return nil
				}
			}

			if err := app.Subscription.SetTier(cmd.Context(), tier); err != nil {
				return err
			}
			usage, err := app.Subscription.Usage(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUsage(usage))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newOnboardingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Show or change the onboarding state",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show settings and onboarding state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := app.Settings.Get(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(s))
				return nil
			},
		},
		&cobra.Command{
			Use:   "complete",
			Short: "Mark onboarding as done",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Settings.CompleteOnboarding(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Onboarding marked complete.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Show the introduction again on the next practice session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Settings.ResetOnboarding(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Onboarding reset.")
				return nil
			},
		},
		newOnboardingDefaultsCmd(app),
	)

	return cmd
}

func newOnboardingDefaultsCmd(app *App) *cobra.Command {
	var topic, difficulty string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Set the default topic and difficulty for practice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Settings.SetDefaults(cmd.Context(), topic, domain.Difficulty(difficulty)); err != nil {
				return err
			}
			s, err := app.Settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "Default scenario topic (empty for any)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Default difficulty (empty for any)")
	return cmd
}
