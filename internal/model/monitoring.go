package model

import "time"

const (
	EventSlowOperation        = "slow_operation"
	EventSlowAPI              = "slow_api"
	EventMemoryWarning        = "memory_warning"
	EventPerformanceThreshold = "performance_threshold"
)

const (
	SlowAPIAlertThresholdMillis       = 5000
	SlowOperationAlertThresholdMillis = 3000
)

type PerformanceEvent struct {
	Type           string            `json:"type"`
	Name           string            `json:"name"`
	DurationMillis *int64            `json:"duration,omitempty"`
	Threshold      *int64            `json:"threshold,omitempty"`
	Error          string            `json:"error,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	Context        map[string]string `json:"context,omitempty"`
}
