package domain

import "time"

type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

func (s MaintenanceStatus) Terminal() bool {
	return s == MaintenanceCompleted || s == MaintenanceCancelled
}

type MaintenanceRequest struct {
	ID              int64             `json:"id"`
	EquipmentID     int64             `json:"equipment_id"`
	ScheduledDate   time.Time         `json:"scheduled_date"`
	MaintenanceType string            `json:"maintenance_type"`
	Notes           string            `json:"notes,omitempty"`
	Status          MaintenanceStatus `json:"status"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
