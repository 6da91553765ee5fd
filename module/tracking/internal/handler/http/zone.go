package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
	"github.com/haroldegbako/vehicule-tracker/module/tracking/geo"
)

type zoneService interface {
	Set(ctx context.Context, ownerID, name string, polygon geo.Ring) error
	Get(ctx context.Context, ownerID string) (*domain.Zone, error)
	Delete(ctx context.Context, ownerID string) (bool, error)
}

type zoneRequest struct {
	Name    string   `json:"name"`
	Polygon geo.Ring `json:"polygon"`
}

type ZoneHandler struct {
	zoneSvc zoneService
}

func NewZoneHandler(zoneSvc zoneService) *ZoneHandler {
	return &ZoneHandler{zoneSvc: zoneSvc}
}

func (h *ZoneHandler) Register(r *gin.RouterGroup) {
	r.PUT("/users/:user_id/zone", h.SaveZone)
	r.GET("/users/:user_id/zone", h.GetZone)
	r.DELETE("/users/:user_id/zone", h.DeleteZone)
}

func (h *ZoneHandler) SaveZone(c *gin.Context) {
	ownerID := c.Param("user_id")

	var req zoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.zoneSvc.Set(c.Request.Context(), ownerID, req.Name, req.Polygon); err != nil {
		if errors.Is(err, domain.ErrInvalidZone) || errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save zone"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "zone saved"})
}

func (h *ZoneHandler) GetZone(c *gin.Context) {
	ownerID := c.Param("user_id")

	zone, err := h.zoneSvc.Get(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch zone"})
		return
	}
	if zone == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no zone registered"})
		return
	}

	c.JSON(http.StatusOK, zone)
}

func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	ownerID := c.Param("user_id")

	existed, err := h.zoneSvc.Delete(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete zone"})
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "no zone registered"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "zone deleted"})
}
