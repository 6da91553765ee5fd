package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
)

type alertService interface {
	List(ctx context.Context, filter *domain.AlertFilter) ([]domain.Alert, error)
	MarkRead(ctx context.Context, alertID string) (bool, error)
	Resolve(ctx context.Context, alertID string) (bool, error)
	Delete(ctx context.Context, alertID string) (bool, error)
}

type AlertHandler struct {
	alertSvc alertService
}

func NewAlertHandler(alertSvc alertService) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc}
}

func (h *AlertHandler) Register(r *gin.RouterGroup) {
	r.GET("/alerts", h.ListAlerts)
	r.POST("/alerts/:alert_id/read", h.MarkRead)
	r.POST("/alerts/:alert_id/resolve", h.Resolve)
	r.DELETE("/alerts/:alert_id", h.DeleteAlert)
}

func (h *AlertHandler) ListAlerts(c *gin.Context) {
	filter := &domain.AlertFilter{
		VehicleID: c.Query("vehicle_id"),
	}
	if kind := c.Query("kind"); kind != "" {
		k := domain.AlertKind(kind)
		if !k.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown alert kind"})
			return
		}
		filter.Kind = k
	}
	if unread := c.Query("unread"); unread != "" {
		v, err := strconv.ParseBool(unread)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unread parameter"})
			return
		}
		filter.UnreadOnly = v
	}
	if limit := c.Query("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		filter.Limit = v
	}

	alerts, err := h.alertSvc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) MarkRead(c *gin.Context) {
	h.flagUpdate(c, h.alertSvc.MarkRead)
}

func (h *AlertHandler) Resolve(c *gin.Context) {
	h.flagUpdate(c, h.alertSvc.Resolve)
}

func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	h.flagUpdate(c, h.alertSvc.Delete)
}

func (h *AlertHandler) flagUpdate(c *gin.Context, op func(ctx context.Context, alertID string) (bool, error)) {
	alertID := c.Param("alert_id")

	found, err := op(c.Request.Context(), alertID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update alert"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
