package registry

import (
	"context"
	"time"

	"conectasonda/internal/domain"
)

// EquipmentRepository defines the storage operations the registry needs.
type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context, t *domain.EquipmentType) ([]domain.Equipment, error)
	RecordFailure(ctx context.Context, id int64, failureType string, date time.Time) (*domain.Equipment, *domain.FailureRecord, error)
	SetMaintenanceCompleted(ctx context.Context, id int64, date time.Time) (int64, error)
	SetStatus(ctx context.Context, id int64, status domain.EquipmentStatus) (int64, error)
}
