package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type positionMessage struct {
	OwnerID   string  `json:"owner_id,omitempty"`
	VehicleID string  `json:"vehicle_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
	Timestamp int64   `json:"timestamp"`
}

// Simulates a device driving away from a start point: each tick drifts the
// position a little, so after enough ticks the vehicle leaves any zone drawn
// around the start.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}
	vehicleID := "V1"
	if v := os.Getenv("VEHICLE_ID"); v != "" {
		vehicleID = v
	}
	ownerID := os.Getenv("OWNER_ID")

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("tracker-mock-device")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	// start in central Paris, wander from there
	lat, lng := 48.8566, 2.3522

	log.Printf("connected to %s, publishing %s every %ds...", broker, vehicleID, intervalSec)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	topic := fmt.Sprintf("/fleet/vehicle/%s/location", vehicleID)
	for range ticker.C {
		lat += (rand.Float64() - 0.3) * 0.001
		lng += (rand.Float64() - 0.3) * 0.001

		msg := positionMessage{
			OwnerID:   ownerID,
			VehicleID: vehicleID,
			Latitude:  lat,
			Longitude: lng,
			Speed:     rand.Float64() * 90,
			Timestamp: time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
