package subscriber

import (
	"context"
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
)

const topicPattern = "/fleet/vehicle/+/location"

type trackerService interface {
	Ingest(ctx context.Context, update *domain.PositionUpdate) (*domain.IngestResult, error)
}

type positionMessage struct {
	OwnerID   string   `json:"owner_id"`
	VehicleID string   `json:"vehicle_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Speed     *float64 `json:"speed"`
	Timestamp int64    `json:"timestamp"`
}

type PositionSubscriber struct {
	client     mqtt.Client
	trackerSvc trackerService
}

func NewPositionSubscriber(client mqtt.Client, trackerSvc trackerService) *PositionSubscriber {
	return &PositionSubscriber{
		client:     client,
		trackerSvc: trackerSvc,
	}
}

func (s *PositionSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *PositionSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw positionMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid position message: %v", err)
		return
	}

	update := &domain.PositionUpdate{
		OwnerID:   raw.OwnerID,
		VehicleID: raw.VehicleID,
		Latitude:  raw.Latitude,
		Longitude: raw.Longitude,
		Speed:     raw.Speed,
	}
	if raw.Timestamp > 0 {
		update.Timestamp = time.Unix(raw.Timestamp, 0).UTC()
	}

	result, err := s.trackerSvc.Ingest(context.Background(), update)
	if err != nil {
		log.Printf("ingest position for %s: %v", raw.VehicleID, err)
		return
	}
	if result.Alert != nil {
		log.Printf("alert %s raised for vehicle %s", result.Alert.ID, result.Alert.VehicleID)
	}
}
