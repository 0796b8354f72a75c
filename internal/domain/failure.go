package domain

import "time"

type FailureRecord struct {
	ID          int64     `json:"id"`
	EquipmentID int64     `json:"equipment_id"`
	Date        time.Time `json:"date"`
	FailureType string    `json:"failure_type"`
	Resolved    bool      `json:"resolved"`
	CreatedAt   time.Time `json:"created_at"`
}
