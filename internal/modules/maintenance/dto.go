package maintenance

import "time"

type ScheduleRequest struct {
	EquipmentID     int64     `json:"equipment_id" binding:"required"`
	ScheduledDate   time.Time `json:"scheduled_date" binding:"required"`
	MaintenanceType string    `json:"maintenance_type" binding:"required"`
	Notes           string    `json:"notes"`
}

type CompleteRequest struct {
	Date *time.Time `json:"date"`
}
