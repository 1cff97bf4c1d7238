package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dstack-labs/create-dstack-app/internal/branding"
	"github.com/dstack-labs/create-dstack-app/internal/config"
	"github.com/dstack-labs/create-dstack-app/internal/updater"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
	versionCheck bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		switch {
		case versionShort:
			fmt.Fprintln(out, buildVersion)
		case versionJSON:
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
				"module":  branding.GoModule(),
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
		default:
			fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		}

		if !versionCheck {
			return nil
		}
		if buildVersion == "dev" {
			fmt.Fprintln(out, "Development build; skipping release check.")
			return nil
		}

		check, err := updater.New(buildVersion).Latest(cmd.Context(), config.Dir())
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}
		if check.UpdateAvailable {
			updater.WriteNotice(out, check)
			return nil
		}
		fmt.Fprintf(out, "You are on the latest version (%s).\n", check.Release.Version)
		return nil
	},
}
