package service

import (
	"context"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/database"
)

// AlertService exposes the alert log: listing most recent first and flag
// updates. Alert creation happens only through the tracker's dedup path.
type AlertService struct {
	alerts database.AlertRepository
}

func NewAlertService(alerts database.AlertRepository) *AlertService {
	return &AlertService{alerts: alerts}
}

func (s *AlertService) List(ctx context.Context, filter *domain.AlertFilter) ([]domain.Alert, error) {
	if filter == nil {
		filter = &domain.AlertFilter{}
	}
	return s.alerts.List(ctx, filter)
}

func (s *AlertService) MarkRead(ctx context.Context, alertID string) (bool, error) {
	return s.alerts.MarkRead(ctx, alertID)
}

func (s *AlertService) Resolve(ctx context.Context, alertID string) (bool, error) {
	return s.alerts.Resolve(ctx, alertID)
}

func (s *AlertService) Delete(ctx context.Context, alertID string) (bool, error) {
	return s.alerts.Delete(ctx, alertID)
}
