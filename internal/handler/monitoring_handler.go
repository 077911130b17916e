package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TronTram/TimeTracker-sub003/internal/model"
	"github.com/TronTram/TimeTracker-sub003/internal/service"
)

type MonitoringHandler struct {
	monitoringService *service.MonitoringService
}

func NewMonitoringHandler(monitoringService *service.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{monitoringService: monitoringService}
}

func (h *MonitoringHandler) RecordPerformance(c *gin.Context) {
	var event model.PerformanceEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		writeInvalidJSON(c)
		return
	}

	result, apiErr := h.monitoringService.Record(event)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MonitoringHandler) PerformanceStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.monitoringService.Stats()})
}
