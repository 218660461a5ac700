package app

import (
	"context"
	"fmt"

	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
	"github.com/example/armazem/internal/ports/secondary"
)

// SummaryServiceImpl implements the SummaryService interface.
type SummaryServiceImpl struct {
	backend secondary.Backend
}

// NewSummaryService creates a new SummaryService with injected dependencies.
func NewSummaryService(backend secondary.Backend) *SummaryServiceImpl {
	return &SummaryServiceImpl{backend: backend}
}

var _ primary.SummaryService = (*SummaryServiceImpl)(nil)

// GetSummary fetches the dashboard aggregate once.
func (s *SummaryServiceImpl) GetSummary(ctx context.Context) (*models.Summary, error) {
	var summary models.Summary
	if err := s.backend.Get(ctx, PathSummary, &summary); err != nil {
		return nil, fmt.Errorf("failed to fetch summary: %w", err)
	}
	return &summary, nil
}

// CheckAlerts fetches the current alerts.
func (s *SummaryServiceImpl) CheckAlerts(ctx context.Context) (*models.AlertCheck, error) {
	var check models.AlertCheck
	if err := s.backend.Get(ctx, PathAlertsCheck, &check); err != nil {
		return nil, fmt.Errorf("failed to check alerts: %w", err)
	}
	if check.Total == 0 {
		check.Total = len(check.Alerts)
	}
	return &check, nil
}
