package primary

import (
	"context"

	"github.com/example/armazem/internal/models"
)

// SummaryService defines the primary port for the dashboard.
type SummaryService interface {
	// GetSummary returns the dashboard counts and alerts.
	GetSummary(ctx context.Context) (*models.Summary, error)

	// CheckAlerts returns the current alert list.
	CheckAlerts(ctx context.Context) (*models.AlertCheck, error)
}
