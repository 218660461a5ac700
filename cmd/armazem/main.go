package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/armazem/internal/cli"
	"github.com/example/armazem/internal/version"
	"github.com/example/armazem/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "armazem",
		Short:   "Armazém - warehouse and site asset management client",
		Version: version.String(),
		Long: `armazem is a terminal client for the warehouse backend.
It manages equipment, vehicles, materials, sites and storage locations,
and records check-in/check-out, stock and kilometre movements.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Session
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.RegisterCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.WhoamiCmd())
	rootCmd.AddCommand(cli.ThemeCmd())

	// Dashboard
	rootCmd.AddCommand(cli.SummaryCmd())
	rootCmd.AddCommand(cli.AlertsCmd())
	rootCmd.AddCommand(cli.RelatoriosCmd())
	rootCmd.AddCommand(cli.ExportarCmd())

	// Entity commands
	rootCmd.AddCommand(cli.EquipamentosCmd())
	rootCmd.AddCommand(cli.ViaturasCmd())
	rootCmd.AddCommand(cli.MateriaisCmd())
	rootCmd.AddCommand(cli.ObrasCmd())
	rootCmd.AddCommand(cli.LocaisCmd())
	rootCmd.AddCommand(cli.MovimentosCmd())

	// Files
	rootCmd.AddCommand(cli.UploadCmd())
	rootCmd.AddCommand(cli.UploadsCmd())

	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	wire.Close()

	if err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
