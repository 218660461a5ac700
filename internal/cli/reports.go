package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	cliadapter "github.com/example/armazem/internal/adapters/cli"
	"github.com/example/armazem/internal/adapters/xlsx"
	"github.com/example/armazem/internal/app"
	corereport "github.com/example/armazem/internal/core/report"
	"github.com/example/armazem/internal/wire"
)

// RelatoriosCmd returns the relatorios command group (read-only reports).
func RelatoriosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relatorios",
		Aliases: []string{"reports"},
		Short:   "Movement, stock, site, maintenance, alert and usage reports",
	}

	cmd.AddCommand(reportCmd(corereport.KindMovements, "movimentos", "Equipment and vehicle movements over a period", cobra.NoArgs, periodFlags(true)))
	cmd.AddCommand(reportCmd(corereport.KindStock, "stock", "Material stock movements and consumption", cobra.NoArgs, periodFlags(true)))
	cmd.AddCommand(reportCmd(corereport.KindSite, "obra <id>", "Resources and consumption of one site", cobra.ExactArgs(1), periodFlags(false)))
	cmd.AddCommand(reportCmd(corereport.KindMaintenance, "manutencoes", "Equipment and vehicles under repair", cobra.NoArgs, resourceTypeFlag))
	cmd.AddCommand(reportCmd(corereport.KindAlerts, "alertas", "Expiring and expired documents", cobra.NoArgs, func(cmd *cobra.Command, f *corereport.Filter) {
		resourceTypeFlag(cmd, f)
		cmd.Flags().IntVar(&f.DaysAhead, "dias", 0, "Days ahead to look for expiring documents")
	}))
	cmd.AddCommand(reportCmd(corereport.KindUsage, "utilizacao", "Movement counts and current state per asset", cobra.NoArgs, func(cmd *cobra.Command, f *corereport.Filter) {
		resourceTypeFlag(cmd, f)
		cmd.Flags().StringVar(&f.State, "estado", "", "disponivel, em_obra or manutencao")
		cmd.Flags().StringVar(&f.From, "de", "", "Start date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&f.To, "ate", "", "End date (YYYY-MM-DD)")
	}))
	return cmd
}

func periodFlags(withSite bool) func(*cobra.Command, *corereport.Filter) {
	return func(cmd *cobra.Command, f *corereport.Filter) {
		cmd.Flags().IntVar(&f.Month, "mes", 0, "Month (1-12); needs --ano")
		cmd.Flags().IntVar(&f.Year, "ano", 0, "Year")
		if withSite {
			cmd.Flags().StringVar(&f.SiteID, "obra", "", "Restrict to one site id")
		}
	}
}

func resourceTypeFlag(cmd *cobra.Command, f *corereport.Filter) {
	cmd.Flags().StringVar(&f.ResourceType, "tipo-recurso", "", "equipamento or viatura")
}

func reportCmd(kind corereport.Kind, use, short string, args cobra.PositionalArgs, flags func(*cobra.Command, *corereport.Filter)) *cobra.Command {
	var (
		f      corereport.Filter
		export string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind == corereport.KindSite {
				f.SiteID = args[0]
			}

			ctx := commandContext(cmd)
			if err := requireSession(ctx); err != nil {
				return report(cmd, err, "")
			}

			adapter := wire.ReportAdapterWithOutput(cmd.OutOrStdout())
			if export == "" {
				if _, err := adapter.Show(ctx, kind, f); err != nil {
					return report(cmd, err, app.MsgLoadFailed)
				}
				return nil
			}

			view, err := adapter.Fetch(ctx, kind, f)
			if err != nil {
				return report(cmd, err, app.MsgLoadFailed)
			}
			if err := writeReportExport(export, view); err != nil {
				return err
			}
			success(cmd, "Relatório exportado para %s", export)
			return nil
		},
	}
	flags(cmd, &f)
	cmd.Flags().StringVar(&export, "export", "", "Write the report to an .xlsx file instead")
	return cmd
}

// reportSheets lays a report out as a summary tab followed by one tab per section.
func reportSheets(view *cliadapter.ReportView) []xlsx.Sheet {
	summary := xlsx.Sheet{
		Name:    "Resumo",
		Headers: []string{"INDICADOR", "VALOR"},
		Rows:    [][]string{{"Relatório", view.Title}},
	}
	for _, s := range view.Stats {
		summary.Rows = append(summary.Rows, []string{s.Label, s.Value})
	}

	sheets := []xlsx.Sheet{summary}
	for _, sec := range view.Sections {
		sheets = append(sheets, xlsx.Sheet{Name: sec.Title, Headers: sec.Headers, Rows: sec.Plain})
	}
	return sheets
}

func writeReportExport(path string, view *cliadapter.ReportView) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := xlsx.WriteSheets(f, reportSheets(view)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportarCmd returns the exportar command, which downloads the backend's
// full inventory as PDF or Excel.
func ExportarCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "exportar <pdf|excel>",
		Short:     "Download the full inventory as PDF or Excel",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(corereport.FormatPDF), string(corereport.FormatExcel)},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := corereport.Format(args[0])
			path := output
			if path == "" {
				path = "inventario" + corereport.Extension(format)
			}

			ctx := commandContext(cmd)
			if err := requireSession(ctx); err != nil {
				return report(cmd, err, "")
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			result, err := wire.ReportAdapterWithOutput(cmd.OutOrStdout()).Download(ctx, format, f)
			if err != nil {
				f.Close()
				os.Remove(path)
				return report(cmd, err, "Erro ao exportar")
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			success(cmd, "Inventário exportado para %s (%s)", path, humanize.Bytes(uint64(result.Size)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default inventario.pdf or inventario.xlsx)")
	return cmd
}
