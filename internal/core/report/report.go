// Package report builds the requests of the read-only backend reports.
// This is part of the Functional Core - no I/O, only pure functions.
package report

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/example/armazem/internal/models"
)

// Kind selects a report.
type Kind string

const (
	KindMovements   Kind = "movimentos"
	KindStock       Kind = "stock"
	KindSite        Kind = "obra"
	KindMaintenance Kind = "manutencoes"
	KindAlerts      Kind = "alertas"
	KindUsage       Kind = "utilizacao"
)

// Kinds lists the reports in menu order.
var Kinds = []Kind{KindMovements, KindStock, KindSite, KindMaintenance, KindAlerts, KindUsage}

// Current states of an asset in the usage report.
const (
	StateAvailable   = "disponivel"
	StateOnSite      = "em_obra"
	StateMaintenance = "manutencao"
)

// States lists the accepted usage states.
var States = []string{StateAvailable, StateOnSite, StateMaintenance}

const dateLayout = "2006-01-02"

// Filter holds the query options of a report. Zero values are omitted.
type Filter struct {
	Month        int    // 1..12; needs Year
	Year         int    // movimentos, stock, obra
	SiteID       string // restricts movimentos and stock; selects the obra report
	ResourceType string // equipamento or viatura; manutencoes, alertas, utilizacao
	State        string // utilizacao
	From, To     string // YYYY-MM-DD; utilizacao
	DaysAhead    int    // alertas
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Field   string
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

func deny(field, format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// CanRun evaluates whether kind may be requested with f.
// Rules:
// - The kind must be known
// - The obra report needs a site
// - A month must be 1..12 and come with a year
// - Resource type, state, dates and days ahead must be valid, and only
//   given to the reports that take them
func CanRun(kind Kind, f Filter) GuardResult {
	if !slices.Contains(Kinds, kind) {
		return deny("relatorio", "Relatório desconhecido: %s", kind)
	}

	periodic := kind == KindMovements || kind == KindStock || kind == KindSite
	if f.Month != 0 || f.Year != 0 {
		if !periodic {
			return deny("mes", "O relatório %s não é filtrado por mês ou ano", kind)
		}
		if f.Month < 0 || f.Month > 12 {
			return deny("mes", "Mês inválido: %d", f.Month)
		}
		if f.Month != 0 && f.Year == 0 {
			return deny("ano", "Indique o ano do mês %d", f.Month)
		}
		if f.Year < 0 {
			return deny("ano", "Ano inválido: %d", f.Year)
		}
	}

	if kind == KindSite && strings.TrimSpace(f.SiteID) == "" {
		return deny("obra", "Indique a obra")
	}
	if f.SiteID != "" && !periodic {
		return deny("obra", "O relatório %s não é filtrado por obra", kind)
	}

	if f.ResourceType != "" {
		if kind != KindMaintenance && kind != KindAlerts && kind != KindUsage {
			return deny("tipo_recurso", "O relatório %s não é filtrado por tipo de recurso", kind)
		}
		if f.ResourceType != models.RecursoEquipamento && f.ResourceType != models.RecursoViatura {
			return deny("tipo_recurso", "Tipo de recurso inválido: %s", f.ResourceType)
		}
	}

	if f.State != "" {
		if kind != KindUsage {
			return deny("estado", "O relatório %s não é filtrado por estado", kind)
		}
		if !slices.Contains(States, f.State) {
			return deny("estado", "Estado inválido: %s", f.State)
		}
	}

	if f.From != "" || f.To != "" {
		if kind != KindUsage {
			return deny("data_inicio", "O relatório %s não é filtrado por datas", kind)
		}
		if r := checkRange(f.From, f.To); !r.Allowed {
			return r
		}
	}

	if f.DaysAhead != 0 {
		if kind != KindAlerts {
			return deny("dias_antecedencia", "O relatório %s não usa dias de antecedência", kind)
		}
		if f.DaysAhead < 0 {
			return deny("dias_antecedencia", "Dias de antecedência inválidos: %d", f.DaysAhead)
		}
	}

	return GuardResult{Allowed: true}
}

func checkRange(from, to string) GuardResult {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = time.Parse(dateLayout, from); err != nil {
			return deny("data_inicio", "Data inválida: %s", from)
		}
	}
	if to != "" {
		if end, err = time.Parse(dateLayout, to); err != nil {
			return deny("data_fim", "Data inválida: %s", to)
		}
	}
	if from != "" && to != "" && start.After(end) {
		return deny("data_inicio", "A data inicial é posterior à data final")
	}
	return GuardResult{Allowed: true}
}

// Path returns the request path of kind with f encoded as its query string.
// Query keys are sorted, so equal filters give equal paths.
func Path(kind Kind, f Filter) string {
	q := url.Values{}
	path := "/relatorios/" + string(kind)

	switch kind {
	case KindMovements, KindStock:
		setPeriod(q, f)
		if f.SiteID != "" {
			q.Set("obra_id", f.SiteID)
		}
	case KindSite:
		path = "/relatorios/obra/" + url.PathEscape(f.SiteID)
		setPeriod(q, f)
	case KindMaintenance:
		setString(q, "tipo_recurso", f.ResourceType)
	case KindAlerts:
		setString(q, "tipo_recurso", f.ResourceType)
		if f.DaysAhead > 0 {
			q.Set("dias_antecedencia", strconv.Itoa(f.DaysAhead))
		}
	case KindUsage:
		setString(q, "tipo_recurso", f.ResourceType)
		setString(q, "estado", f.State)
		setString(q, "data_inicio", f.From)
		setString(q, "data_fim", f.To)
	}

	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func setPeriod(q url.Values, f Filter) {
	if f.Month > 0 {
		q.Set("mes", strconv.Itoa(f.Month))
	}
	if f.Year > 0 {
		q.Set("ano", strconv.Itoa(f.Year))
	}
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// ============================================================================
// Backend exports
// ============================================================================

// Format selects a full-inventory export produced by the backend.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// ExportPath returns the download path of format.
func ExportPath(format Format) (string, error) {
	switch format {
	case FormatPDF, FormatExcel:
		return "/export/" + string(format), nil
	}
	return "", fmt.Errorf("formato de exportação desconhecido: %s", format)
}

// Extension is the file extension conventionally used for format.
func Extension(format Format) string {
	if format == FormatExcel {
		return ".xlsx"
	}
	return ".pdf"
}

// MatchesFormat reports whether the media type of a download fits format.
func MatchesFormat(format Format, mime string) bool {
	base := strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	switch format {
	case FormatPDF:
		return base == "application/pdf"
	case FormatExcel:
		return strings.Contains(base, "spreadsheet") || base == "application/vnd.ms-excel"
	}
	return false
}
