package tracking

import (
	"database/sql"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	handler "github.com/haroldegbako/vehicule-tracker/module/tracking/internal/handler/http"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/handler/subscriber"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/database/postgres"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/internal/repository/publisher/rabbitmq"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/service"
)

type Module struct {
	TrackerSvc *service.TrackerService
	ZoneSvc    *service.ZoneService
	AlertSvc   *service.AlertService
	SMSSvc     *service.SMSService

	handlers   []interface{ Register(r *gin.RouterGroup) }
	subscriber *subscriber.PositionSubscriber
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client) (*Module, error) {
	positionRepo := postgres.NewPositionRepo(db)
	historyRepo := postgres.NewHistoryRepo(db)
	zoneRepo := postgres.NewZoneRepo(db)
	alertRepo := postgres.NewAlertRepo(db)
	smsRepo := postgres.NewSMSPositionRepo(db)

	alertPub, err := rabbitmq.NewAlertPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("alert publisher: %w", err)
	}

	trackerSvc := service.NewTrackerService(positionRepo, historyRepo, zoneRepo, alertRepo, alertPub)
	zoneSvc := service.NewZoneService(zoneRepo)
	alertSvc := service.NewAlertService(alertRepo)
	smsSvc := service.NewSMSService(smsRepo)

	sub := subscriber.NewPositionSubscriber(mqttClient, trackerSvc)

	return &Module{
		TrackerSvc: trackerSvc,
		ZoneSvc:    zoneSvc,
		AlertSvc:   alertSvc,
		SMSSvc:     smsSvc,
		handlers: []interface{ Register(r *gin.RouterGroup) }{
			handler.NewTrackingHandler(trackerSvc),
			handler.NewZoneHandler(zoneSvc),
			handler.NewAlertHandler(alertSvc),
			handler.NewSMSHandler(smsSvc),
		},
		subscriber: sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	for _, h := range m.handlers {
		h.Register(r)
	}
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
