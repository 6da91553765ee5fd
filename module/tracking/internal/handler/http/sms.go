package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/service"
)

type smsService interface {
	Record(ctx context.Context, vehicleID string, lat, lng *float64) (*domain.SMSPosition, error)
	List(ctx context.Context) ([]domain.SMSPosition, error)
}

type smsPositionRequest struct {
	VehicleID string   `json:"vehicle_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type SMSHandler struct {
	smsSvc smsService
}

func NewSMSHandler(smsSvc smsService) *SMSHandler {
	return &SMSHandler{smsSvc: smsSvc}
}

func (h *SMSHandler) Register(r *gin.RouterGroup) {
	r.POST("/sms/positions", h.ReceivePosition)
	r.GET("/sms/positions", h.ListPositions)
}

func (h *SMSHandler) ReceivePosition(c *gin.Context) {
	var req smsPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	_, err := h.smsSvc.Record(c.Request.Context(), req.VehicleID, req.Latitude, req.Longitude)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record position"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SMSHandler) ListPositions(c *gin.Context) {
	positions, err := h.smsSvc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch positions"})
		return
	}

	c.JSON(http.StatusOK, positions)
}
