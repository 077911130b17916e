package service

import (
	"go.uber.org/zap"

	apperrors "github.com/TronTram/TimeTracker-sub003/internal/errors"
	"github.com/TronTram/TimeTracker-sub003/internal/model"
)

type MonitoringService struct {
	logger *zap.Logger
}

func NewMonitoringService(logger *zap.Logger) *MonitoringService {
	return &MonitoringService{logger: logger}
}

type AlertResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Alerted bool   `json:"alerted"`
}

// Record applies the alert policy to a reported performance event:
// slow_api fires above 5000ms, slow_operation above 3000ms, memory_warning
// always fires, performance_threshold never auto-fires.
func (s *MonitoringService) Record(event model.PerformanceEvent) (*AlertResult, *apperrors.APIError) {
	if event.Name == "" {
		return nil, apperrors.BadRequest("invalid_event", "event name is required")
	}

	var alerted bool
	switch event.Type {
	case model.EventSlowAPI:
		alerted = event.DurationMillis != nil && *event.DurationMillis > model.SlowAPIAlertThresholdMillis
	case model.EventSlowOperation:
		alerted = event.DurationMillis != nil && *event.DurationMillis > model.SlowOperationAlertThresholdMillis
	case model.EventMemoryWarning:
		alerted = true
	case model.EventPerformanceThreshold:
		alerted = false
	default:
		return nil, apperrors.BadRequest("invalid_event_type", "unknown performance event type")
	}

	fields := []zap.Field{
		zap.String("type", event.Type),
		zap.String("name", event.Name),
		zap.Time("timestamp", event.Timestamp),
	}
	if event.DurationMillis != nil {
		fields = append(fields, zap.Int64("durationMs", *event.DurationMillis))
	}
	if event.Error != "" {
		fields = append(fields, zap.String("eventError", event.Error))
	}

	if alerted {
		s.logger.Warn("performance alert", fields...)
	} else {
		s.logger.Debug("performance event", fields...)
	}

	message := "event recorded"
	if alerted {
		message = "alert triggered"
	}
	return &AlertResult{Success: true, Message: message, Alerted: alerted}, nil
}

// Stats returns a static mock payload; there is no aggregation engine behind
// the monitoring endpoint.
func (s *MonitoringService) Stats() map[string]interface{} {
	return map[string]interface{}{
		"totalEvents":       0,
		"alertsTriggered":   0,
		"slowOperations":    0,
		"slowApiCalls":      0,
		"memoryWarnings":    0,
		"averageDurationMs": 0,
		"windowHours":       24,
	}
}
