package config

import (
	"database/sql"
	"errors"
	"net/http"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
)

type HealthChecker struct {
	db       *sql.DB
	amqpConn *amqp.Connection
	mqtt     mqtt.Client
}

func NewHealthChecker(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client) *HealthChecker {
	return &HealthChecker{db: db, amqpConn: amqpConn, mqtt: mqttClient}
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

type depStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (h *HealthChecker) Handle(c *gin.Context) {
	checks := map[string]error{
		"postgres": h.db.PingContext(c.Request.Context()),
		"rabbitmq": nil,
		"mqtt":     nil,
	}
	if h.amqpConn.IsClosed() {
		checks["rabbitmq"] = errors.New("connection closed")
	}
	if !h.mqtt.IsConnected() {
		checks["mqtt"] = errors.New("not connected")
	}

	status := http.StatusOK
	deps := map[string]depStatus{}
	for name, err := range checks {
		if err != nil {
			deps[name] = depStatus{Status: "down", Error: err.Error()}
			status = http.StatusServiceUnavailable
		} else {
			deps[name] = depStatus{Status: "up"}
		}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
