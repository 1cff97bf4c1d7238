package cli

import (
	"fmt"
	"strings"

	"github.com/dstack-labs/create-dstack-app/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.create-dstack-app/config.yaml.

Known keys: ` + strings.Join(config.Keys(), ", ") + `.
Every key can also be set through the environment, e.g. CREATE_DSTACK_APP_INSTALL_COMMAND.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Load(); err != nil {
			return err
		}
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Load(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings file against its schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		path := config.FilePath()
		fmt.Fprintf(out, "Settings validation: %s\n", path)

		result, err := config.ValidateFile(path)
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %v\n", err)
			return fmt.Errorf("settings validation failed: %w", err)
		}
		if result.Valid {
			fmt.Fprintln(out, "  [ OK ] Valid settings")
			return nil
		}

		fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "    - %s\n", issue)
		}
		return fmt.Errorf("settings file %s has %d validation issue(s)", path, len(result.Issues))
	},
}
