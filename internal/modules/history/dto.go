package history

import "time"

type AppendFailureRequest struct {
	EquipmentID int64     `json:"equipment_id" binding:"required"`
	FailureType string    `json:"failure_type" binding:"required"`
	Date        time.Time `json:"date"`
}
