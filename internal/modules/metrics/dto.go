package metrics

import (
	"time"

	"conectasonda/internal/domain"
)

type Snapshot struct {
	TotalEquipments      int64                            `json:"total_equipments"`
	ActiveAlerts         int64                            `json:"active_alerts"`
	PredictedFailures    int64                            `json:"predicted_failures"`
	MaintenanceScheduled int64                            `json:"maintenance_scheduled"`
	SystemAccuracy       float64                          `json:"system_accuracy"`
	AvgResponseTime      string                           `json:"avg_response_time"`
	TypeSummary          map[domain.EquipmentType]int64   `json:"type_summary"`
	StatusSummary        map[domain.EquipmentStatus]int64 `json:"status_summary"`
}

type Report struct {
	ReportType  string    `json:"report_type"`
	GeneratedAt time.Time `json:"generated_at"`
	Snapshot    Snapshot  `json:"snapshot"`
}
