package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/geo"
)

type mockPositionRepo struct {
	insertFn func(ctx context.Context, p *domain.Position) error

	mu       sync.Mutex
	inserted []*domain.Position
}

func (m *mockPositionRepo) Insert(ctx context.Context, p *domain.Position) error {
	m.mu.Lock()
	m.inserted = append(m.inserted, p)
	m.mu.Unlock()
	if m.insertFn != nil {
		return m.insertFn(ctx, p)
	}
	return nil
}

func (m *mockPositionRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inserted)
}

func (m *mockPositionRepo) GetLatest(_ context.Context, _ string) (*domain.Position, error) {
	return nil, errors.New("not implemented")
}

func (m *mockPositionRepo) GetAllVehicles(_ context.Context) ([]domain.Vehicle, error) {
	return nil, nil
}

type mockHistoryRepo struct {
	getFn    func(ctx context.Context, vehicleID string) (*domain.History, error)
	upsertFn func(ctx context.Context, h *domain.History) error
}

func (m *mockHistoryRepo) Get(ctx context.Context, vehicleID string) (*domain.History, error) {
	return m.getFn(ctx, vehicleID)
}

func (m *mockHistoryRepo) Upsert(ctx context.Context, h *domain.History) error {
	return m.upsertFn(ctx, h)
}

type mockZoneRepo struct {
	getFn func(ctx context.Context, ownerID string) (*domain.Zone, error)
}

func (m *mockZoneRepo) Get(ctx context.Context, ownerID string) (*domain.Zone, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockZoneRepo) Replace(_ context.Context, _, _ string, _ geo.Ring) error {
	return errors.New("not implemented")
}

func (m *mockZoneRepo) Delete(_ context.Context, _ string) (bool, error) {
	return false, errors.New("not implemented")
}

type mockAlertRepo struct {
	insertFn func(ctx context.Context, a *domain.Alert) error
	stored   []domain.Alert
}

func (m *mockAlertRepo) Insert(ctx context.Context, a *domain.Alert) error {
	if m.insertFn != nil {
		if err := m.insertFn(ctx, a); err != nil {
			return err
		}
	}
	m.stored = append(m.stored, *a)
	return nil
}

func (m *mockAlertRepo) Recent(_ context.Context, vehicleID string, kind domain.AlertKind, since time.Time) ([]domain.Alert, error) {
	var results []domain.Alert
	for _, a := range m.stored {
		if a.VehicleID == vehicleID && a.Kind == kind && !a.CreatedAt.Before(since) {
			results = append(results, a)
		}
	}
	return results, nil
}

func (m *mockAlertRepo) List(_ context.Context, _ *domain.AlertFilter) ([]domain.Alert, error) {
	return m.stored, nil
}

func (m *mockAlertRepo) MarkRead(_ context.Context, _ string) (bool, error) { return false, nil }
func (m *mockAlertRepo) Resolve(_ context.Context, _ string) (bool, error)  { return false, nil }
func (m *mockAlertRepo) Delete(_ context.Context, _ string) (bool, error)   { return false, nil }

type mockAlertPublisher struct {
	publishFn func(ctx context.Context, alert *domain.Alert) error
	published []*domain.Alert
}

func (m *mockAlertPublisher) Publish(ctx context.Context, alert *domain.Alert) error {
	m.published = append(m.published, alert)
	if m.publishFn != nil {
		return m.publishFn(ctx, alert)
	}
	return nil
}

// memHistories wires a mockHistoryRepo to an in-memory map so multi-sample
// flows behave like real storage.
func memHistories() (map[string]*domain.History, *mockHistoryRepo) {
	store := map[string]*domain.History{}
	var mu sync.Mutex
	repo := &mockHistoryRepo{
		getFn: func(_ context.Context, vehicleID string) (*domain.History, error) {
			mu.Lock()
			defer mu.Unlock()
			h, ok := store[vehicleID]
			if !ok {
				return nil, nil
			}
			cp := *h
			cp.Path = append([]domain.PathPoint(nil), h.Path...)
			return &cp, nil
		},
		upsertFn: func(_ context.Context, h *domain.History) error {
			mu.Lock()
			defer mu.Unlock()
			store[h.VehicleID] = h
			return nil
		},
	}
	return store, repo
}

func newTestTracker(zones *mockZoneRepo) (*TrackerService, map[string]*domain.History, *mockPositionRepo, *mockAlertRepo, *mockAlertPublisher) {
	if zones == nil {
		zones = &mockZoneRepo{}
	}
	store, histories := memHistories()
	positions := &mockPositionRepo{}
	alerts := &mockAlertRepo{}
	pub := &mockAlertPublisher{}
	svc := NewTrackerService(positions, histories, zones, alerts, pub)
	return svc, store, positions, alerts, pub
}

func f(v float64) *float64 { return &v }

func update(owner, vehicle string, lat, lng float64, ts time.Time) *domain.PositionUpdate {
	return &domain.PositionUpdate{
		OwnerID:   owner,
		VehicleID: vehicle,
		Latitude:  f(lat),
		Longitude: f(lng),
		Timestamp: ts,
	}
}

func TestIngest_FirstSample(t *testing.T) {
	svc, store, positions, _, _ := newTestTracker(nil)
	ts := time.Unix(1715003456, 0)

	result, err := svc.Ingest(context.Background(), update("", "V1", 48.8566, 2.3522, ts))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Alert != nil {
		t.Error("expected no alert")
	}
	if len(result.History.Path) != 1 {
		t.Fatalf("expected 1 path point, got %d", len(result.History.Path))
	}
	if result.History.DistanceKm != 0 {
		t.Errorf("expected 0 distance, got %f", result.History.DistanceKm)
	}
	if positions.count() != 1 {
		t.Errorf("expected raw sample recorded, got %d", positions.count())
	}
	if store["V1"] == nil {
		t.Error("expected history persisted")
	}
}

func TestIngest_AccumulatesDistance(t *testing.T) {
	svc, _, _, _, _ := newTestTracker(nil)
	ts := time.Unix(1715003456, 0)

	if _, err := svc.Ingest(context.Background(), update("", "V1", 48.8566, 2.3522, ts)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := svc.Ingest(context.Background(), update("", "V1", 48.8570, 2.3530, ts.Add(time.Minute)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Alert != nil {
		t.Error("expected no alert without a zone")
	}
	want := geo.DistanceKm(48.8566, 2.3522, 48.8570, 2.3530)
	got := result.History.DistanceKm
	if math.Abs(got-want) > 1e-9*want {
		t.Errorf("expected distance %v, got %v", want, got)
	}
	if got < 0.05 || got > 0.1 {
		t.Errorf("expected a sub-100m step, got %f km", got)
	}
}

func TestIngest_DistanceInvariantOverManySamples(t *testing.T) {
	svc, _, _, _, _ := newTestTracker(nil)
	ts := time.Unix(1715000000, 0)

	points := [][2]float64{
		{48.8566, 2.3522},
		{48.8580, 2.3544},
		{48.8601, 2.3501},
		{48.8650, 2.3488},
		{48.8633, 2.3550},
	}

	var want float64
	var result *domain.IngestResult
	var err error
	for i, p := range points {
		result, err = svc.Ingest(context.Background(), update("", "V1", p[0], p[1], ts.Add(time.Duration(i)*time.Minute)))
		if err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if i > 0 {
			prev := points[i-1]
			want += geo.DistanceKm(prev[0], prev[1], p[0], p[1])
		}
	}

	got := result.History.DistanceKm
	if math.Abs(got-want) > 1e-9*want {
		t.Errorf("expected distance %v, got %v", want, got)
	}
	if len(result.History.Path) != len(points) {
		t.Errorf("expected %d path points, got %d", len(points), len(result.History.Path))
	}
}

func TestIngest_MissingLatitude(t *testing.T) {
	svc, store, positions, _, _ := newTestTracker(nil)

	_, err := svc.Ingest(context.Background(), &domain.PositionUpdate{
		VehicleID: "V1",
		Longitude: f(2.3522),
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if positions.count() != 0 {
		t.Error("expected no sample recorded")
	}
	if len(store) != 0 {
		t.Error("expected history untouched")
	}
}

func TestIngest_MissingLongitude(t *testing.T) {
	svc, _, _, _, _ := newTestTracker(nil)

	_, err := svc.Ingest(context.Background(), &domain.PositionUpdate{
		VehicleID: "V1",
		Latitude:  f(48.8566),
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestIngest_OutOfRangeCoordinates(t *testing.T) {
	svc, _, _, _, _ := newTestTracker(nil)

	_, err := svc.Ingest(context.Background(), update("", "V1", 91, 0, time.Time{}))
	if !IsValidation(err) {
		t.Fatalf("expected validation error for latitude 91, got %v", err)
	}
	_, err = svc.Ingest(context.Background(), update("", "V1", 0, -181, time.Time{}))
	if !IsValidation(err) {
		t.Fatalf("expected validation error for longitude -181, got %v", err)
	}
}

func TestIngest_NoZoneRegistered(t *testing.T) {
	zones := &mockZoneRepo{
		getFn: func(_ context.Context, ownerID string) (*domain.Zone, error) {
			if ownerID != "user-1" {
				return nil, errors.New("unexpected owner")
			}
			return nil, nil
		},
	}
	svc, _, _, alerts, _ := newTestTracker(zones)

	result, err := svc.Ingest(context.Background(), update("user-1", "V1", 50, 50, time.Unix(1715003456, 0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Alert != nil {
		t.Error("expected no alert without a zone")
	}
	if len(alerts.stored) != 0 {
		t.Errorf("expected no alerts stored, got %d", len(alerts.stored))
	}
}

func TestIngest_InsideZone(t *testing.T) {
	zones := &mockZoneRepo{
		getFn: func(_ context.Context, _ string) (*domain.Zone, error) {
			return squareZone(), nil
		},
	}
	svc, _, _, alerts, _ := newTestTracker(zones)

	result, err := svc.Ingest(context.Background(), update("user-1", "V1", 5, 5, time.Unix(1715003456, 0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Alert != nil {
		t.Error("expected no alert inside the zone")
	}
	if len(alerts.stored) != 0 {
		t.Errorf("expected no alerts stored, got %d", len(alerts.stored))
	}
}

func TestIngest_OutsideZoneRaisesAlert(t *testing.T) {
	zones := &mockZoneRepo{
		getFn: func(_ context.Context, _ string) (*domain.Zone, error) {
			return squareZone(), nil
		},
	}
	svc, _, _, alerts, pub := newTestTracker(zones)
	ts := time.Unix(1715003456, 0)

	result, err := svc.Ingest(context.Background(), update("user-1", "V1", 50, 50, ts))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Alert == nil {
		t.Fatal("expected an alert")
	}
	if result.Alert.Kind != domain.AlertOutOfGeofence {
		t.Errorf("expected out_of_geofence, got %s", result.Alert.Kind)
	}
	if result.Alert.ID == "" {
		t.Error("expected alert id assigned")
	}
	if !strings.Contains(result.Alert.Description, "V1") {
		t.Errorf("expected description to name the vehicle, got %q", result.Alert.Description)
	}
	if len(alerts.stored) != 1 {
		t.Fatalf("expected 1 alert stored, got %d", len(alerts.stored))
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 alert published, got %d", len(pub.published))
	}
}

func TestIngest_DedupWindow(t *testing.T) {
	zones := &mockZoneRepo{
		getFn: func(_ context.Context, _ string) (*domain.Zone, error) {
			return squareZone(), nil
		},
	}
	svc, _, _, alerts, _ := newTestTracker(zones)
	t0 := time.Unix(1715003456, 0)

	first, err := svc.Ingest(context.Background(), update("user-1", "V1", 50, 50, t0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Alert == nil {
		t.Fatal("expected first exit to alert")
	}

	second, err := svc.Ingest(context.Background(), update("user-1", "V1", 50.1, 50.1, t0.Add(2*time.Minute)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Alert != nil {
		t.Error("expected second exit suppressed within the window")
	}

	third, err := svc.Ingest(context.Background(), update("user-1", "V1", 50.2, 50.2, t0.Add(10*time.Minute)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.Alert == nil {
		t.Error("expected a new alert after the window passed")
	}
	if len(alerts.stored) != 2 {
		t.Errorf("expected 2 alerts stored, got %d", len(alerts.stored))
	}
}

func TestIngest_DedupWindowOverride(t *testing.T) {
	zones := &mockZoneRepo{
		getFn: func(_ context.Context, _ string) (*domain.Zone, error) {
			return squareZone(), nil
		},
	}
	svc, _, _, _, _ := newTestTracker(zones)
	svc.DedupWindow = time.Minute
	t0 := time.Unix(1715003456, 0)

	if _, err := svc.Ingest(context.Background(), update("user-1", "V1", 50, 50, t0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Ingest(context.Background(), update("user-1", "V1", 50, 50, t0.Add(2*time.Minute)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Alert == nil {
		t.Error("expected a new alert 2 minutes later with a 1-minute window")
	}
}

func TestIngest_MalformedZoneDegradesGracefully(t *testing.T) {
	zones := &mockZoneRepo{
		getFn: func(_ context.Context, _ string) (*domain.Zone, error) {
			return &domain.Zone{OwnerID: "user-1", Polygon: geo.Ring{{0, 0}, {10, 10}}}, nil
		},
	}
	svc, store, _, alerts, _ := newTestTracker(zones)

	result, err := svc.Ingest(context.Background(), update("user-1", "V1", 50, 50, time.Unix(1715003456, 0)))
	if err != nil {
		t.Fatalf("expected malformed zone to not fail the ingest, got %v", err)
	}
	if result.Alert != nil {
		t.Error("expected no alert from a malformed zone")
	}
	if len(alerts.stored) != 0 {
		t.Errorf("expected no alerts stored, got %d", len(alerts.stored))
	}
	if store["V1"] == nil {
		t.Error("expected the position still recorded")
	}
}

func TestIngest_ZoneLookupFailureIsPartialSuccess(t *testing.T) {
	zones := &mockZoneRepo{
		getFn: func(_ context.Context, _ string) (*domain.Zone, error) {
			return nil, errors.New("storage down")
		},
	}
	svc, store, _, _, _ := newTestTracker(zones)

	result, err := svc.Ingest(context.Background(), update("user-1", "V1", 50, 50, time.Unix(1715003456, 0)))
	if err == nil {
		t.Fatal("expected an error from the zone lookup")
	}
	if IsValidation(err) {
		t.Error("expected a non-validation error")
	}
	if result == nil || result.History == nil {
		t.Fatal("expected the result to carry the already-updated history")
	}
	if store["V1"] == nil {
		t.Error("expected history persisted despite the lookup failure")
	}
}

func TestIngest_PublishFailureDoesNotFail(t *testing.T) {
	zones := &mockZoneRepo{
		getFn: func(_ context.Context, _ string) (*domain.Zone, error) {
			return squareZone(), nil
		},
	}
	store, histories := memHistories()
	positions := &mockPositionRepo{}
	alerts := &mockAlertRepo{}
	pub := &mockAlertPublisher{
		publishFn: func(_ context.Context, _ *domain.Alert) error {
			return errors.New("rabbitmq down")
		},
	}
	svc := NewTrackerService(positions, histories, zones, alerts, pub)

	result, err := svc.Ingest(context.Background(), update("user-1", "V1", 50, 50, time.Unix(1715003456, 0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Alert == nil {
		t.Fatal("expected the persisted alert returned despite the publish failure")
	}
	if store["V1"] == nil {
		t.Error("expected history persisted")
	}
}

func TestIngest_ConcurrentSameVehicle(t *testing.T) {
	svc, store, positions, _, _ := newTestTracker(nil)
	ts := time.Unix(1715003456, 0)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			lat := 48.8566 + float64(i)*0.0001
			if _, err := svc.Ingest(context.Background(), update("", "V1", lat, 2.3522, ts.Add(time.Duration(i)*time.Second))); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if positions.count() != n {
		t.Errorf("expected %d raw samples recorded, got %d", n, positions.count())
	}
	h := store["V1"]
	if h == nil {
		t.Fatal("expected history")
	}
	if len(h.Path) != n {
		t.Fatalf("expected %d path points, got %d", n, len(h.Path))
	}
	var want float64
	for i := 1; i < len(h.Path); i++ {
		prev, cur := h.Path[i-1], h.Path[i]
		want += geo.DistanceKm(prev.Lat, prev.Lng, cur.Lat, cur.Lng)
	}
	if math.Abs(h.DistanceKm-want) > 1e-9*want {
		t.Errorf("distance invariant broken: stored %v, recomputed %v", h.DistanceKm, want)
	}
}

func TestGetHistory_UnknownVehicle(t *testing.T) {
	svc, _, _, _, _ := newTestTracker(nil)

	h, err := svc.GetHistory(context.Background(), "GHOST")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h == nil {
		t.Fatal("expected an empty history, not nil")
	}
	if len(h.Path) != 0 || h.DistanceKm != 0 {
		t.Errorf("expected empty history, got %d points / %f km", len(h.Path), h.DistanceKm)
	}
}
