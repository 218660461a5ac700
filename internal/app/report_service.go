package app

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/core/report"
	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
	"github.com/example/armazem/internal/ports/secondary"
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	backend secondary.Backend
	logger  *zap.Logger
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(backend secondary.Backend, logger *zap.Logger) *ReportServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportServiceImpl{backend: backend, logger: logger}
}

var _ primary.ReportService = (*ReportServiceImpl)(nil)

// fetchReport checks f for kind and decodes the report into a new T.
func fetchReport[T any](ctx context.Context, backend secondary.Backend, kind report.Kind, f report.Filter) (*T, error) {
	if check := report.CanRun(kind, f); !check.Allowed {
		verr := apperr.NewValidationError()
		verr.Add(check.Field, check.Reason)
		return nil, verr
	}

	var out T
	if err := backend.Get(ctx, report.Path(kind, f), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch %s report: %w", kind, err)
	}
	return &out, nil
}

// Movements fetches the asset movement report.
func (s *ReportServiceImpl) Movements(ctx context.Context, f report.Filter) (*models.MovementReport, error) {
	return fetchReport[models.MovementReport](ctx, s.backend, report.KindMovements, f)
}

// Stock fetches the material stock report.
func (s *ReportServiceImpl) Stock(ctx context.Context, f report.Filter) (*models.StockReport, error) {
	return fetchReport[models.StockReport](ctx, s.backend, report.KindStock, f)
}

// Site fetches the report of f.SiteID.
func (s *ReportServiceImpl) Site(ctx context.Context, f report.Filter) (*models.SiteReport, error) {
	return fetchReport[models.SiteReport](ctx, s.backend, report.KindSite, f)
}

// Maintenance fetches the assets under repair.
func (s *ReportServiceImpl) Maintenance(ctx context.Context, f report.Filter) (*models.MaintenanceReport, error) {
	r, err := fetchReport[models.MaintenanceReport](ctx, s.backend, report.KindMaintenance, f)
	if err != nil {
		return nil, err
	}
	if r.Estatisticas.TotalGeral == 0 {
		r.Estatisticas.TotalGeral = r.Estatisticas.TotalEquipamentos + r.Estatisticas.TotalViaturas
	}
	return r, nil
}

// DocumentAlerts fetches the expiring documents.
func (s *ReportServiceImpl) DocumentAlerts(ctx context.Context, f report.Filter) (*models.DocumentAlertReport, error) {
	r, err := fetchReport[models.DocumentAlertReport](ctx, s.backend, report.KindAlerts, f)
	if err != nil {
		return nil, err
	}
	if r.Estatisticas.TotalAlertas == 0 {
		r.Estatisticas.TotalAlertas = len(r.Alertas)
	}
	return r, nil
}

// Usage fetches the asset utilisation report.
func (s *ReportServiceImpl) Usage(ctx context.Context, f report.Filter) (*models.UsageReport, error) {
	return fetchReport[models.UsageReport](ctx, s.backend, report.KindUsage, f)
}

// Export downloads the inventory export and checks its content before
// handing it to w. The backend's Content-Type or the sniffed type must fit format.
func (s *ReportServiceImpl) Export(ctx context.Context, format report.Format, w io.Writer) (*primary.ExportResult, error) {
	path, err := report.ExportPath(format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	contentType, err := s.backend.Download(ctx, path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s export: %w", format, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%s export is empty", format)
	}

	detected := mimetype.Detect(buf.Bytes()).String()
	if !report.MatchesFormat(format, detected) && !report.MatchesFormat(format, contentType) {
		return nil, fmt.Errorf("%s export returned %s", format, detected)
	}

	size, err := io.Copy(w, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s export: %w", format, err)
	}

	s.logger.Info("export downloaded",
		zap.String("format", string(format)),
		zap.String("content_type", contentType),
		zap.Int64("size", size),
	)

	mime := contentType
	if mime == "" {
		mime = detected
	}
	return &primary.ExportResult{Format: format, MIME: mime, Size: size}, nil
}
