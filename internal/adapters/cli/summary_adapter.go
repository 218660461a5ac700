package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
)

// SummaryAdapter translates dashboard commands to SummaryService calls.
type SummaryAdapter struct {
	service primary.SummaryService
	out     io.Writer
}

// NewSummaryAdapter creates a new SummaryAdapter with the given service.
func NewSummaryAdapter(service primary.SummaryService, out io.Writer) *SummaryAdapter {
	return &SummaryAdapter{
		service: service,
		out:     out,
	}
}

// Show prints the dashboard counts followed by the alerts.
func (a *SummaryAdapter) Show(ctx context.Context) (*models.Summary, error) {
	s, err := a.service.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	bold := color.New(color.Bold)
	fmt.Fprintln(a.out, bold.Sprint("Equipamentos"))
	fmt.Fprintf(a.out, "  Total: %d   Ativos: %d   Em obra: %d\n", s.Equipamentos.Total, s.Equipamentos.Ativos, s.Equipamentos.EmObra)
	fmt.Fprintln(a.out, bold.Sprint("Viaturas"))
	fmt.Fprintf(a.out, "  Total: %d   Ativas: %d   Em obra: %d\n", s.Viaturas.Total, s.Viaturas.Ativas, s.Viaturas.EmObra)
	fmt.Fprintln(a.out, bold.Sprint("Materiais"))
	fmt.Fprintf(a.out, "  Total: %d   Stock total: %s\n", s.Materiais.Total, humanize.FormatFloat("#.###,##", s.Materiais.StockTotal))
	fmt.Fprintln(a.out, bold.Sprint("Obras"))
	fmt.Fprintf(a.out, "  Total: %d   Ativas: %d\n", s.Obras.Total, s.Obras.Ativas)
	fmt.Fprintln(a.out)

	a.renderAlerts(s.Alerts)
	return s, nil
}

// Alerts prints the current alert list.
func (a *SummaryAdapter) Alerts(ctx context.Context) (*models.AlertCheck, error) {
	check, err := a.service.CheckAlerts(ctx)
	if err != nil {
		return nil, err
	}
	a.renderAlerts(check.Alerts)
	return check, nil
}

func (a *SummaryAdapter) renderAlerts(alerts []models.Alert) {
	if len(alerts) == 0 {
		fmt.Fprintln(a.out, color.New(color.FgGreen).Sprint("✓ Sem alertas"))
		return
	}

	fmt.Fprintf(a.out, "%s (%d)\n", color.New(color.Bold).Sprint("Alertas"), len(alerts))
	for _, alert := range alerts {
		fmt.Fprintf(a.out, "  %s %s: %s\n", AlertMark(alert), alert.Item, alert.Message)
	}
}

// AlertMark renders urgent alerts in red and advisory ones in yellow.
func AlertMark(alert models.Alert) string {
	if alert.Urgent {
		return color.New(color.FgRed).Sprint("!!")
	}
	return color.New(color.FgYellow).Sprint(" !")
}
