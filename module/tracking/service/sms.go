package service

import (
	"context"
	"fmt"
	"time"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/database"
)

// SMSService records reports from the SMS fallback channel. They form an
// append-only audit log kept apart from vehicle histories.
type SMSService struct {
	positions database.SMSPositionRepository
}

func NewSMSService(positions database.SMSPositionRepository) *SMSService {
	return &SMSService{positions: positions}
}

func (s *SMSService) Record(ctx context.Context, vehicleID string, lat, lng *float64) (*domain.SMSPosition, error) {
	if lat == nil || lng == nil {
		return nil, fmt.Errorf("%w: latitude and longitude are required", domain.ErrValidation)
	}
	if vehicleID == "" {
		vehicleID = domain.DefaultSMSVehicleID
	}

	p := &domain.SMSPosition{
		VehicleID:  vehicleID,
		Lat:        *lat,
		Lng:        *lng,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.positions.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert sms position: %w", err)
	}
	return p, nil
}

func (s *SMSService) List(ctx context.Context) ([]domain.SMSPosition, error) {
	return s.positions.List(ctx)
}
