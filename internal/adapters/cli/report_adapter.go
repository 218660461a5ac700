package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/core/report"
	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
)

// ReportView is a report laid out as headline figures and tables, ready for
// the terminal or a workbook.
type ReportView struct {
	Title    string
	Stats    []Stat
	Sections []Section
}

// Stat is one headline figure.
type Stat struct {
	Label string
	Value string
}

// Section is one titled table of a report. Rows may carry terminal colors,
// Plain never does.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
	Plain   [][]string
	Empty   string
}

// NewSection lays items out with cols.
func NewSection[R any](title string, items []R, cols []Column[R], empty string) Section {
	headers, rows := Rows(items, cols)
	_, plain := PlainRows(items, cols)
	return Section{Title: title, Headers: headers, Rows: rows, Plain: plain, Empty: empty}
}

// ReportAdapter translates report commands to ReportService calls.
type ReportAdapter struct {
	service primary.ReportService
	out     io.Writer
}

// NewReportAdapter creates a new ReportAdapter with the given service.
func NewReportAdapter(service primary.ReportService, out io.Writer) *ReportAdapter {
	return &ReportAdapter{
		service: service,
		out:     out,
	}
}

// Fetch runs kind with f and lays the result out.
func (a *ReportAdapter) Fetch(ctx context.Context, kind report.Kind, f report.Filter) (*ReportView, error) {
	switch kind {
	case report.KindMovements:
		r, err := a.service.Movements(ctx, f)
		if err != nil {
			return nil, err
		}
		return MovementView(r), nil
	case report.KindStock:
		r, err := a.service.Stock(ctx, f)
		if err != nil {
			return nil, err
		}
		return StockView(r), nil
	case report.KindSite:
		r, err := a.service.Site(ctx, f)
		if err != nil {
			return nil, err
		}
		return SiteView(r), nil
	case report.KindMaintenance:
		r, err := a.service.Maintenance(ctx, f)
		if err != nil {
			return nil, err
		}
		return MaintenanceView(r), nil
	case report.KindAlerts:
		r, err := a.service.DocumentAlerts(ctx, f)
		if err != nil {
			return nil, err
		}
		return DocumentAlertView(r), nil
	case report.KindUsage:
		r, err := a.service.Usage(ctx, f)
		if err != nil {
			return nil, err
		}
		return UsageView(r), nil
	}
	return nil, report.CanRun(kind, f).Error()
}

// Show fetches and prints a report.
func (a *ReportAdapter) Show(ctx context.Context, kind report.Kind, f report.Filter) (*ReportView, error) {
	view, err := a.Fetch(ctx, kind, f)
	if err != nil {
		return nil, err
	}
	a.Render(view)
	return view, nil
}

// Render prints the title, the headline figures and every section.
func (a *ReportAdapter) Render(view *ReportView) {
	bold := color.New(color.Bold)
	fmt.Fprintln(a.out, bold.Sprint(view.Title))

	if len(view.Stats) > 0 {
		parts := make([]string, len(view.Stats))
		for i, s := range view.Stats {
			parts[i] = s.Label + ": " + s.Value
		}
		fmt.Fprintf(a.out, "  %s\n", strings.Join(parts, "   "))
	}

	for _, sec := range view.Sections {
		fmt.Fprintln(a.out)
		fmt.Fprintf(a.out, "%s (%d)\n", bold.Sprint(sec.Title), len(sec.Rows))
		if len(sec.Rows) == 0 {
			fmt.Fprintln(a.out, sec.Empty)
			continue
		}
		writeTable(a.out, sec.Headers, sec.Rows)
	}
}

// Download saves the backend's inventory export into w.
func (a *ReportAdapter) Download(ctx context.Context, format report.Format, w io.Writer) (*primary.ExportResult, error) {
	return a.service.Export(ctx, format, w)
}

// ============================================================================
// Views
// ============================================================================

func count(n int) string {
	return strconv.Itoa(n)
}

func quantity(f float64) string {
	return humanize.FormatFloat("#.###,##", f)
}

// MovementBadge colors a movement direction.
func MovementBadge(tipo string) string {
	switch tipo {
	case models.MovimentoSaida:
		return color.New(color.FgYellow).Sprint(tipo)
	case models.MovimentoEntrada:
		return color.New(color.FgGreen).Sprint(tipo)
	}
	return orDash(tipo)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return "-"
}

// MovementView lays out the asset movement report.
func MovementView(r *models.MovementReport) *ReportView {
	s := r.Estatisticas
	return &ReportView{
		Title: "Relatório de movimentos",
		Stats: []Stat{
			{"Movimentos", count(s.TotalMovimentos)},
			{"Saídas", count(s.TotalSaidas)},
			{"Devoluções", count(s.TotalDevolucoes)},
			{"Equipamentos movidos", count(s.EquipamentosMovidos)},
			{"Viaturas movidas", count(s.ViaturasMovidas)},
		},
		Sections: []Section{
			NewSection("Movimentos", r.Movimentos, []Column[models.ReportMovement]{
				{"DATA", func(m models.ReportMovement) string { return form.DateOnly(m.Data) }},
				{"TIPO", func(m models.ReportMovement) string { return MovementBadge(m.TipoMovimento) }},
				{"RECURSO", func(m models.ReportMovement) string { return orDash(m.TipoRecurso) }},
				{"IDENTIFICADOR", func(m models.ReportMovement) string { return firstOf(m.RecursoIdentificador, m.RecursoID) }},
				{"OBRA", func(m models.ReportMovement) string { return firstOf(m.ObraNome, m.ObraID) }},
				{"RESPONSÁVEL", func(m models.ReportMovement) string { return orDash(m.Responsavel) }},
			}, "Nenhum movimento no período."),
		},
	}
}

func materialUsageColumns() []Column[models.MaterialUsage] {
	return []Column[models.MaterialUsage]{
		{"CÓDIGO", func(m models.MaterialUsage) string { return firstOf(m.Codigo, m.MaterialID) }},
		{"DESCRIÇÃO", func(m models.MaterialUsage) string { return orDash(m.Descricao) }},
		{"UNIDADE", func(m models.MaterialUsage) string { return orDash(m.Unidade) }},
		{"ENTRADAS", func(m models.MaterialUsage) string { return number(m.TotalEntradas) }},
		{"SAÍDAS", func(m models.MaterialUsage) string { return number(m.TotalSaidas) }},
		{"CONSUMO", func(m models.MaterialUsage) string { return number(m.ConsumoLiquido) }},
	}
}

// StockView lays out the material stock report.
func StockView(r *models.StockReport) *ReportView {
	s := r.Estatisticas
	return &ReportView{
		Title: "Relatório de stock",
		Stats: []Stat{
			{"Movimentos", count(s.TotalMovimentos)},
			{"Entradas", quantity(s.TotalEntradas)},
			{"Saídas", quantity(s.TotalSaidas)},
			{"Consumo líquido", quantity(s.ConsumoLiquido)},
			{"Materiais", count(s.MateriaisDiferentes)},
		},
		Sections: []Section{
			NewSection("Movimentos de stock", r.Movimentos, []Column[models.ReportStockMovement]{
				{"DATA", func(m models.ReportStockMovement) string { return form.DateOnly(m.Data) }},
				{"TIPO", func(m models.ReportStockMovement) string { return MovementBadge(m.TipoMovimento) }},
				{"MATERIAL", func(m models.ReportStockMovement) string {
					return firstOf(strings.TrimSpace(m.MaterialCodigo+" "+m.MaterialDescricao), m.MaterialID)
				}},
				{"QUANTIDADE", func(m models.ReportStockMovement) string { return number(m.Quantidade) }},
				{"OBRA", func(m models.ReportStockMovement) string { return firstOf(m.ObraNome, m.ObraID) }},
				{"RESPONSÁVEL", func(m models.ReportStockMovement) string { return orDash(m.Responsavel) }},
			}, "Nenhum movimento de stock no período."),
			NewSection("Resumo por material", r.MateriaisResumo, materialUsageColumns(), "Sem consumos."),
		},
	}
}

// SiteView lays out the report of one site.
func SiteView(r *models.SiteReport) *ReportView {
	s := r.Estatisticas
	site := models.LookupItem{ID: r.Obra.ID, Codigo: r.Obra.Codigo, Nome: r.Obra.Nome}
	return &ReportView{
		Title: "Relatório da obra " + site.Label(),
		Stats: []Stat{
			{"Equipamentos", count(s.EquipamentosAtuais)},
			{"Viaturas", count(s.ViaturasAtuais)},
			{"Movimentos", count(s.MovimentosAtivos)},
			{"Movimentos de stock", count(s.MovimentosStock)},
			{"Saídas", count(s.TotalSaidasAtivos)},
			{"Devoluções", count(s.TotalDevolucoes)},
		},
		Sections: []Section{
			NewSection("Equipamentos na obra", r.RecursosAtuais.Equipamentos, []Column[models.Equipment]{
				{"CÓDIGO", func(e models.Equipment) string { return e.Codigo }},
				{"DESCRIÇÃO", func(e models.Equipment) string { return orDash(e.Descricao) }},
				{"MARCA", func(e models.Equipment) string { return orDash(e.Marca) }},
				{"ESTADO", func(e models.Equipment) string { return EstadoBadge(e.EstadoConservacao) }},
			}, "Nenhum equipamento na obra."),
			NewSection("Viaturas na obra", r.RecursosAtuais.Viaturas, []Column[models.Vehicle]{
				{"MATRÍCULA", func(v models.Vehicle) string { return v.Matricula }},
				{"MARCA", func(v models.Vehicle) string { return orDash(v.Marca) }},
				{"MODELO", func(v models.Vehicle) string { return orDash(v.Modelo) }},
			}, "Nenhuma viatura na obra."),
			NewSection("Consumo de materiais", r.ConsumoMateriais, materialUsageColumns(), "Sem consumos."),
		},
	}
}

// MaintenanceView lays out the assets under repair.
func MaintenanceView(r *models.MaintenanceReport) *ReportView {
	s := r.Estatisticas
	return &ReportView{
		Title: "Relatório de manutenções",
		Stats: []Stat{
			{"Equipamentos", count(s.TotalEquipamentos)},
			{"Viaturas", count(s.TotalViaturas)},
			{"Total", count(s.TotalGeral)},
		},
		Sections: []Section{
			NewSection("Equipamentos em manutenção", r.Equipamentos, []Column[models.Equipment]{
				{"CÓDIGO", func(e models.Equipment) string { return e.Codigo }},
				{"DESCRIÇÃO", func(e models.Equipment) string { return orDash(e.Descricao) }},
				{"AVARIA", func(e models.Equipment) string { return orDash(e.DescricaoAvaria) }},
			}, "Nenhum equipamento em manutenção."),
			NewSection("Viaturas em manutenção", r.Viaturas, []Column[models.Vehicle]{
				{"MATRÍCULA", func(v models.Vehicle) string { return v.Matricula }},
				{"MARCA", func(v models.Vehicle) string { return orDash(v.Marca) }},
				{"MODELO", func(v models.Vehicle) string { return orDash(v.Modelo) }},
			}, "Nenhuma viatura em manutenção."),
		},
	}
}

// DocumentAlertMark renders expired documents in red, urgent ones in yellow.
func DocumentAlertMark(a models.DocumentAlert) string {
	switch {
	case a.Expirado:
		return color.New(color.FgRed).Sprint("expirado")
	case a.Urgente:
		return color.New(color.FgYellow).Sprint("urgente")
	}
	return "próximo"
}

// DocumentAlertView lays out the expiring documents.
func DocumentAlertView(r *models.DocumentAlertReport) *ReportView {
	s := r.Estatisticas
	return &ReportView{
		Title: "Relatório de alertas",
		Stats: []Stat{
			{"Alertas", count(s.TotalAlertas)},
			{"Expirados", count(s.Expirados)},
			{"Urgentes", count(s.Urgentes)},
			{"Próximos", count(s.Proximos)},
		},
		Sections: []Section{
			NewSection("Alertas", r.Alertas, []Column[models.DocumentAlert]{
				{"RECURSO", func(a models.DocumentAlert) string { return orDash(a.TipoRecurso) }},
				{"IDENTIFICADOR", func(a models.DocumentAlert) string { return firstOf(a.Identificador, a.RecursoID) }},
				{"DOCUMENTO", func(a models.DocumentAlert) string { return orDash(a.TipoAlerta) }},
				{"VALIDADE", func(a models.DocumentAlert) string { return orDash(form.DateOnly(a.DataValidade)) }},
				{"DIAS", func(a models.DocumentAlert) string {
					if a.DiasRestantes == nil {
						return "-"
					}
					return count(*a.DiasRestantes)
				}},
				{"ESTADO", DocumentAlertMark},
			}, "Sem alertas."),
		},
	}
}

// UsageStateLabel renders a usage state for people.
func UsageStateLabel(state string) string {
	switch state {
	case report.StateAvailable:
		return color.New(color.FgGreen).Sprint("disponível")
	case report.StateOnSite:
		return "em obra"
	case report.StateMaintenance:
		return color.New(color.FgYellow).Sprint("manutenção")
	}
	return orDash(state)
}

func usageColumns() []Column[models.ResourceUsage] {
	return []Column[models.ResourceUsage]{
		{"IDENTIFICADOR", func(u models.ResourceUsage) string { return firstOf(u.Identifier(), u.ID) }},
		{"DESCRIÇÃO", func(u models.ResourceUsage) string {
			return firstOf(u.Descricao, strings.TrimSpace(u.Marca+" "+u.Modelo))
		}},
		{"ESTADO", func(u models.ResourceUsage) string { return UsageStateLabel(u.EstadoAtual) }},
		{"MOVIMENTOS", func(u models.ResourceUsage) string { return count(u.TotalMovimentos) }},
		{"SAÍDAS", func(u models.ResourceUsage) string { return count(u.TotalSaidas) }},
		{"DEVOLUÇÕES", func(u models.ResourceUsage) string { return count(u.TotalDevolucoes) }},
	}
}

func usageCounts(c models.UsageCounts) string {
	return fmt.Sprintf("%d (%d disponíveis, %d em obra, %d em manutenção)", c.Total, c.Disponivel, c.EmObra, c.Manutencao)
}

// UsageView lays out the asset utilisation report.
func UsageView(r *models.UsageReport) *ReportView {
	return &ReportView{
		Title: "Relatório de utilização",
		Stats: []Stat{
			{"Equipamentos", usageCounts(r.Estatisticas.Equipamentos)},
			{"Viaturas", usageCounts(r.Estatisticas.Viaturas)},
		},
		Sections: []Section{
			NewSection("Equipamentos", r.Equipamentos, usageColumns(), "Nenhum equipamento."),
			NewSection("Viaturas", r.Viaturas, usageColumns(), "Nenhuma viatura."),
		},
	}
}
