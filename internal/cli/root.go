package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dstack-labs/create-dstack-app/internal/branding"
	"github.com/dstack-labs/create-dstack-app/internal/config"
	"github.com/dstack-labs/create-dstack-app/internal/failure"
	"github.com/dstack-labs/create-dstack-app/internal/project"
	"github.com/dstack-labs/create-dstack-app/internal/prompt"
	"github.com/dstack-labs/create-dstack-app/internal/runtime"
	"github.com/dstack-labs/create-dstack-app/internal/scaffold"
	"github.com/dstack-labs/create-dstack-app/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` asks for a project name, a template and two optional steps, then copies
the bundled template into a new directory, installs dependencies and initializes
a Git repository.

Run it without arguments in the directory that should contain the new project.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScaffold(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// reportedError marks an error whose diagnosis has already been printed.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(context.Background())
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func runScaffold(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	settings := loadSettings(errOut)
	logger := newLogger(errOut, settings.LogLevel)
	warnInvalidConfig(logger)

	fmt.Fprintf(out, "Welcome to %s!\n\n", branding.CLIName())

	runner := &runtime.ExecRunner{}
	if debugEnabled(settings.LogLevel) {
		runner.Stdout = errOut
		runner.Stderr = errOut
	}

	sc := &scaffold.Scaffolder{
		Runner:        runner,
		Asker:         prompt.NewTerminal(in, out),
		Chdir:         os.Chdir,
		Getwd:         os.Getwd,
		Exists:        project.PathExists,
		TemplatesRoot: settings.TemplatesDir,
		Settings:      *settings,
		Logger:        logger,
		Out:           out,
		ErrOut:        errOut,
	}

	report, err := sc.Execute(ctx)
	if err != nil {
		failure.Diagnose(errOut, err)
		return &reportedError{err: err}
	}

	report.Render(out)
	updater.PrintNotice(out, config.Dir(), buildVersion)
	return nil
}

// loadSettings reads the settings file and environment. A broken settings
// file is reported and replaced by the defaults so a scaffold can still run.
func loadSettings(errOut io.Writer) *config.Settings {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(errOut, "Warning: %v; using default settings\n", err)
		d := config.Defaults()
		return &d
	}
	return settings
}

func warnInvalidConfig(logger *slog.Logger) {
	result, err := config.ValidateFile(config.FilePath())
	if err != nil {
		logger.Warn("could not validate settings file", "path", config.FilePath(), "error", err)
		return
	}
	for _, issue := range result.Issues {
		logger.Warn("invalid setting", "path", config.FilePath(), "issue", issue.String())
	}
}
