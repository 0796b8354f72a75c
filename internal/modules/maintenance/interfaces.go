package maintenance

import (
	"context"
	"time"

	"conectasonda/internal/domain"
)

// MaintenanceRepository persists requests. Schedule, Complete and Cancel
// update the request and its equipment row in one transaction so a request
// never succeeds while the equipment is left behind.
type MaintenanceRepository interface {
	Schedule(ctx context.Context, req *domain.MaintenanceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error)
	List(ctx context.Context) ([]domain.MaintenanceRequest, error)
	HasOpen(ctx context.Context, equipmentID int64) (bool, error)
	Transition(ctx context.Context, id int64, from, to domain.MaintenanceStatus) (int64, error)
	Complete(ctx context.Context, id, equipmentID int64, date time.Time) (int64, error)
	Cancel(ctx context.Context, id, equipmentID int64, revert domain.EquipmentStatus) (int64, error)
}

// EquipmentReader guards scheduling against unknown equipment.
type EquipmentReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

// PredictionExpirer retires the live prediction once completed maintenance
// has addressed the risk.
type PredictionExpirer interface {
	ExpireActive(ctx context.Context, equipmentID int64) error
}

// FailureChecker decides whether a cancelled request leaves the equipment
// failed or operational.
type FailureChecker interface {
	HasUnresolved(ctx context.Context, equipmentID int64) (bool, error)
}
