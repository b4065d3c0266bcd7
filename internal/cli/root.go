package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mipractice/internal/dialogue"
	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/scenario"
	"github.com/alexanderramin/mipractice/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the services and reference data used by CLI commands.
type App struct {
	Catalog      *scenario.Catalog
	Generator    *scenario.Generator
	Responder    *dialogue.Responder
	Sessions     service.PracticeSessionService
	Subscription service.SubscriptionService
	Settings     service.SettingsService

	// IsInteractive reports whether stdin is a terminal. Nil means never,
	// which keeps the chat in line mode.
	IsInteractive func() bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "mipractice" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "mipractice",
		Short:         "Practice motivational interviewing with a simulated patient",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPatientCmd(app),
		newIntentCmd(),
		newRespondCmd(app),
		newPracticeCmd(app),
		newSessionCmd(app),
		newPlanCmd(app),
		newOnboardingCmd(app),
	)

	return root
}

// filterFlags are the patient filters shared by generate, respond and
// practice.
type filterFlags struct {
	topic      string
	stage      stageFlag
	difficulty difficultyFlag
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.topic, "topic", "", "Scenario topic (see `mipractice patient topics`)")
	cmd.Flags().Var(&f.stage, "stage", "Stage of change: "+stageNames())
	cmd.Flags().Var(&f.difficulty, "difficulty", "Difficulty: "+difficultyNames())
}

func (f *filterFlags) filters() domain.ProfileFilters {
	return domain.ProfileFilters{
		Topic:         strings.TrimSpace(f.topic),
		StageOfChange: domain.StageOfChange(f.stage),
		Difficulty:    domain.Difficulty(f.difficulty),
	}
}

// stageFlag rejects unknown stage names at parse time so a typo does not
// silently widen the draw.
type stageFlag domain.StageOfChange

var _ pflag.Value = (*stageFlag)(nil)

func (s *stageFlag) String() string { return string(*s) }
func (s *stageFlag) Type() string   { return "stage" }

func (s *stageFlag) Set(v string) error {
	st, ok := domain.ParseStage(v)
	if !ok {
		return fmt.Errorf("unknown stage %q (want one of %s)", v, stageNames())
	}
	*s = stageFlag(st)
	return nil
}

type difficultyFlag domain.Difficulty

var _ pflag.Value = (*difficultyFlag)(nil)

func (d *difficultyFlag) String() string { return string(*d) }
func (d *difficultyFlag) Type() string   { return "difficulty" }

func (d *difficultyFlag) Set(v string) error {
	parsed, ok := domain.ParseDifficulty(v)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (want one of %s)", v, difficultyNames())
	}
	*d = difficultyFlag(parsed)
	return nil
}

func stageNames() string {
	names := make([]string, 0, 5)
	for _, st := range domain.AllStages() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}

func difficultyNames() string {
	names := make([]string, 0, 3)
	for _, d := range domain.AllDifficulties() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}
