package registry

import "time"

type CreateEquipmentRequest struct {
	Name     string  `json:"name" binding:"required"`
	Type     string  `json:"type" binding:"required"`
	Location string  `json:"location" binding:"required"`
	Uptime   float64 `json:"uptime"`
}

type RecordFailureRequest struct {
	FailureType string     `json:"failure_type" binding:"required"`
	Date        *time.Time `json:"date"`
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
