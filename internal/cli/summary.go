package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/armazem/internal/wire"
)

// SummaryCmd returns the summary command.
func SummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show dashboard counts and alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if err := requireSession(ctx); err != nil {
				return report(cmd, err, "")
			}
			if _, err := wire.SummaryAdapterWithOutput(cmd.OutOrStdout()).Show(ctx); err != nil {
				return report(cmd, err, "Erro ao carregar dados")
			}
			return nil
		},
	}
}

// AlertsCmd returns the alerts command.
func AlertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Check current alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if err := requireSession(ctx); err != nil {
				return report(cmd, err, "")
			}
			if _, err := wire.SummaryAdapterWithOutput(cmd.OutOrStdout()).Alerts(ctx); err != nil {
				return report(cmd, err, "Erro ao carregar dados")
			}
			return nil
		},
	}
}
