package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/armazem/internal/config"
	"github.com/example/armazem/internal/db"
	"github.com/example/armazem/internal/wire"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change client configuration",
	Long: `Configuration is read from config.json in the data directory (~/.armazem by
default, ARMAZEM_DATA_DIR to override), a .env file in the working directory
and ARMAZEM_* environment variables, in increasing priority.

Keys: ` + strings.Join(config.Keys(), ", "),
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := wire.Config()
		out := cmd.OutOrStdout()

		dbPath, _ := db.GetDBPath()
		fmt.Fprintf(out, "%-12s %s\n", config.KeyBackendURL, cfg.BackendURL)
		fmt.Fprintf(out, "%-12s %s\n", config.KeyAPIPrefix, cfg.APIPrefix)
		fmt.Fprintf(out, "%-12s %s\n", config.KeyTimeout, cfg.Timeout)
		fmt.Fprintf(out, "%-12s %s\n", config.KeyLogLevel, cfg.LogLevel)
		fmt.Fprintf(out, "%-12s %s\n", "data_dir", cfg.DataDir)
		fmt.Fprintf(out, "%-12s %s\n", "api", cfg.APIBaseURL())
		fmt.Fprintf(out, "%-12s %s\n", "store", dbPath)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.DataDir()
		if err != nil {
			return err
		}
		if err := config.SaveValue(dir, args[0], args[1]); err != nil {
			return err
		}
		success(cmd, "%s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// ConfigCmd returns the config command.
func ConfigCmd() *cobra.Command {
	return configCmd
}
