package prediction

import (
	"context"

	"conectasonda/internal/domain"
)

type PredictionRepository interface {
	SupersedeActive(ctx context.Context, p *domain.Prediction) error
	GetByID(ctx context.Context, id int64) (*domain.Prediction, error)
	ListActive(ctx context.Context, risk *domain.RiskLevel) ([]domain.Prediction, error)
	ExpireActive(ctx context.Context, equipmentID int64) error
	Acknowledge(ctx context.Context, id int64) (int64, error)
}

type EquipmentReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

type FailureReader interface {
	RecentByEquipment(ctx context.Context, equipmentID int64, limit int) ([]domain.FailureRecord, error)
}

// AlertNotifier receives high and critical predictions. Delivery is best
// effort; a failed notification never fails the prediction.
type AlertNotifier interface {
	PredictionAlert(p *domain.Prediction)
}
