package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/geo"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/database"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/publisher"
)

// TrackerService runs the ingestion pipeline: validate, record the raw
// sample, grow the vehicle's history, and raise a deduplicated alert when
// the owner's zone is breached.
type TrackerService struct {
	positions database.PositionRepository
	histories database.HistoryRepository
	zones     database.ZoneRepository
	alerts    database.AlertRepository
	publisher publisher.AlertPublisher

	// DedupWindow mutes repeat alerts of the same (vehicle, kind). Set
	// before first use; defaults to DefaultDedupWindow.
	DedupWindow time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTrackerService(
	positions database.PositionRepository,
	histories database.HistoryRepository,
	zones database.ZoneRepository,
	alerts database.AlertRepository,
	pub publisher.AlertPublisher,
) *TrackerService {
	return &TrackerService{
		positions:   positions,
		histories:   histories,
		zones:       zones,
		alerts:      alerts,
		publisher:   pub,
		DedupWindow: DefaultDedupWindow,
		locks:       map[string]*sync.Mutex{},
	}
}

// Ingest processes one position report. Validation failures wrap
// domain.ErrValidation and leave no state behind. Once the history write
// succeeded, later failures still return the result carrying the updated
// history so the caller can tell partial success from total failure. A
// stored zone that turns out to be malformed only logs a warning; the
// position stays recorded.
func (s *TrackerService) Ingest(ctx context.Context, update *domain.PositionUpdate) (*domain.IngestResult, error) {
	p, err := validate(update)
	if err != nil {
		return nil, err
	}

	if err := s.positions.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert position: %w", err)
	}

	history, err := s.appendToHistory(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update history: %w", err)
	}
	result := &domain.IngestResult{History: history}

	if update.OwnerID == "" {
		return result, nil
	}

	zone, err := s.zones.Get(ctx, update.OwnerID)
	if err != nil {
		return result, fmt.Errorf("resolve zone: %w", err)
	}
	if zone == nil {
		// common case: the owner never drew a zone
		return result, nil
	}

	inside, err := Evaluate(zone, p.Lat, p.Lng)
	if err != nil {
		log.Printf("skipping geofence check for %s: %v", p.VehicleID, err)
		return result, nil
	}
	if inside {
		return result, nil
	}

	alert, err := s.raiseExitAlert(ctx, update.OwnerID, p)
	if err != nil {
		return result, err
	}
	result.Alert = alert
	return result, nil
}

// appendToHistory serializes appends per vehicle so concurrent reports for
// the same vehicle cannot lose a distance update. Distance grows by the
// haversine step from the previous point, never recomputed from scratch.
func (s *TrackerService) appendToHistory(ctx context.Context, p *domain.Position) (*domain.History, error) {
	lock := s.vehicleLock(p.VehicleID)
	lock.Lock()
	defer lock.Unlock()

	history, err := s.histories.Get(ctx, p.VehicleID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = &domain.History{VehicleID: p.VehicleID, StartedAt: p.Timestamp}
	}

	point := domain.PathPoint{
		Lat:       p.Lat,
		Lng:       p.Lng,
		Timestamp: p.Timestamp,
		Speed:     p.Speed,
	}
	if n := len(history.Path); n > 0 {
		last := history.Path[n-1]
		history.DistanceKm += geo.DistanceKm(last.Lat, last.Lng, point.Lat, point.Lng)
	}
	history.Path = append(history.Path, point)

	if err := s.histories.Upsert(ctx, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *TrackerService) raiseExitAlert(ctx context.Context, ownerID string, p *domain.Position) (*domain.Alert, error) {
	now := p.Timestamp
	recent, err := s.alerts.Recent(ctx, p.VehicleID, domain.AlertOutOfGeofence, now.Add(-s.DedupWindow))
	if err != nil {
		return nil, fmt.Errorf("recent alerts: %w", err)
	}
	if !ShouldEmit(p.VehicleID, domain.AlertOutOfGeofence, now, recent, s.DedupWindow) {
		return nil, nil
	}

	alert := &domain.Alert{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		VehicleID:   p.VehicleID,
		Kind:        domain.AlertOutOfGeofence,
		Description: fmt.Sprintf("Vehicle %s left the surveillance zone.", p.VehicleID),
		CreatedAt:   now,
	}
	if err := s.alerts.Insert(ctx, alert); err != nil {
		return nil, fmt.Errorf("insert alert: %w", err)
	}

	// the alert is durable at this point; a broker hiccup is not a reason
	// to fail the ingest
	if err := s.publisher.Publish(ctx, alert); err != nil {
		log.Printf("publish alert %s: %v", alert.ID, err)
	}
	return alert, nil
}

// GetHistory returns the vehicle's path and cumulative distance. A vehicle
// that never reported yields an empty history, not an error.
func (s *TrackerService) GetHistory(ctx context.Context, vehicleID string) (*domain.History, error) {
	history, err := s.histories.Get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = &domain.History{VehicleID: vehicleID}
	}
	return history, nil
}

func (s *TrackerService) GetLatest(ctx context.Context, vehicleID string) (*domain.Position, error) {
	return s.positions.GetLatest(ctx, vehicleID)
}

func (s *TrackerService) GetAllVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.positions.GetAllVehicles(ctx)
}

func (s *TrackerService) vehicleLock(vehicleID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[vehicleID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[vehicleID] = lock
	}
	return lock
}

func validate(update *domain.PositionUpdate) (*domain.Position, error) {
	if update.VehicleID == "" {
		return nil, fmt.Errorf("%w: vehicle_id is required", domain.ErrValidation)
	}
	if update.Latitude == nil {
		return nil, fmt.Errorf("%w: latitude is required", domain.ErrValidation)
	}
	if update.Longitude == nil {
		return nil, fmt.Errorf("%w: longitude is required", domain.ErrValidation)
	}
	lat, lng := *update.Latitude, *update.Longitude
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}

	ts := update.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &domain.Position{
		VehicleID: update.VehicleID,
		Lat:       lat,
		Lng:       lng,
		Speed:     update.Speed,
		Timestamp: ts,
	}, nil
}

// IsValidation reports whether err came from input validation, as opposed
// to an internal failure.
func IsValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
