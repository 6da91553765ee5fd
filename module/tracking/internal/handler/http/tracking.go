package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/service"
)

type trackerService interface {
	Ingest(ctx context.Context, update *domain.PositionUpdate) (*domain.IngestResult, error)
	GetHistory(ctx context.Context, vehicleID string) (*domain.History, error)
	GetLatest(ctx context.Context, vehicleID string) (*domain.Position, error)
	GetAllVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

type positionRequest struct {
	OwnerID   string   `json:"owner_id"`
	VehicleID string   `json:"vehicle_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Speed     *float64 `json:"speed"`
	Timestamp int64    `json:"timestamp"`
}

type ingestResponse struct {
	Status     string        `json:"status"`
	DistanceKm float64       `json:"distance_km"`
	Alert      *domain.Alert `json:"alert,omitempty"`
}

type TrackingHandler struct {
	trackerSvc trackerService
}

func NewTrackingHandler(trackerSvc trackerService) *TrackingHandler {
	return &TrackingHandler{trackerSvc: trackerSvc}
}

func (h *TrackingHandler) Register(r *gin.RouterGroup) {
	r.POST("/positions", h.UpdatePosition)
	r.GET("/vehicles", h.GetAllVehicles)
	r.GET("/vehicles/:vehicle_id/location", h.GetLatestLocation)
	r.GET("/vehicles/:vehicle_id/history", h.GetHistory)
}

func (h *TrackingHandler) UpdatePosition(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	update := &domain.PositionUpdate{
		OwnerID:   req.OwnerID,
		VehicleID: req.VehicleID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Speed:     req.Speed,
	}
	if req.Timestamp > 0 {
		update.Timestamp = time.Unix(req.Timestamp, 0).UTC()
	}

	result, err := h.trackerSvc.Ingest(c.Request.Context(), update)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process position"})
		return
	}

	c.JSON(http.StatusOK, ingestResponse{
		Status:     "ok",
		DistanceKm: result.History.DistanceKm,
		Alert:      result.Alert,
	})
}

func (h *TrackingHandler) GetAllVehicles(c *gin.Context) {
	vehicles, err := h.trackerSvc.GetAllVehicles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *TrackingHandler) GetLatestLocation(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	p, err := h.trackerSvc.GetLatest(c.Request.Context(), vehicleID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *TrackingHandler) GetHistory(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	history, err := h.trackerSvc.GetHistory(c.Request.Context(), vehicleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
