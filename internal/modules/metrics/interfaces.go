package metrics

import (
	"context"

	"conectasonda/internal/domain"
)

type EquipmentCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) (map[domain.EquipmentType]int64, error)
	CountByStatus(ctx context.Context) (map[domain.EquipmentStatus]int64, error)
}

type PredictionCounter interface {
	CountActive(ctx context.Context) (int64, error)
	CountActiveAtRisk(ctx context.Context) (int64, error)
}

type MaintenanceCounter interface {
	CountOpen(ctx context.Context) (int64, error)
}
