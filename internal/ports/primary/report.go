package primary

import (
	"context"
	"io"

	"github.com/example/armazem/internal/core/report"
	"github.com/example/armazem/internal/models"
)

// ReportService defines the primary port for the read-only reports.
// Filters are checked locally; a rejected filter sends no request.
type ReportService interface {
	Movements(ctx context.Context, f report.Filter) (*models.MovementReport, error)
	Stock(ctx context.Context, f report.Filter) (*models.StockReport, error)
	Site(ctx context.Context, f report.Filter) (*models.SiteReport, error)
	Maintenance(ctx context.Context, f report.Filter) (*models.MaintenanceReport, error)
	DocumentAlerts(ctx context.Context, f report.Filter) (*models.DocumentAlertReport, error)
	Usage(ctx context.Context, f report.Filter) (*models.UsageReport, error)

	// Export downloads the backend's full inventory export into w.
	// Nothing is written when the download is not of the requested format.
	Export(ctx context.Context, format report.Format, w io.Writer) (*ExportResult, error)
}

// ExportResult describes a completed export download.
type ExportResult struct {
	Format report.Format
	MIME   string
	Size   int64
}
