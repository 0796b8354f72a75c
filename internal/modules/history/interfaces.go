package history

import (
	"context"

	"conectasonda/internal/domain"
)

type FailureRepository interface {
	Create(ctx context.Context, rec *domain.FailureRecord) error
	GetByID(ctx context.Context, id int64) (*domain.FailureRecord, error)
	List(ctx context.Context, equipmentID *int64) ([]domain.FailureRecord, error)
	Resolve(ctx context.Context, id int64) (int64, error)
	HasUnresolved(ctx context.Context, equipmentID int64) (bool, error)
}

// EquipmentChecker guards appends against dangling equipment references.
type EquipmentChecker interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}
