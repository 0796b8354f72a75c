package metrics

import (
	"context"
	"time"
)

// Service derives dashboard metrics on demand. It holds no state of its own;
// every snapshot is recomputed from the stores at call time. System accuracy
// and average response time come from outside the engine (historical
// prediction-vs-outcome comparison) and are injected as configuration.
type Service struct {
	equipment   EquipmentCounter
	predictions PredictionCounter
	maintenance MaintenanceCounter
	accuracy    float64
	avgResponse string
	now         func() time.Time
}

func NewService(
	equipment EquipmentCounter,
	predictions PredictionCounter,
	maintenance MaintenanceCounter,
	accuracy float64,
	avgResponse string,
) *Service {
	return &Service{
		equipment:   equipment,
		predictions: predictions,
		maintenance: maintenance,
		accuracy:    accuracy,
		avgResponse: avgResponse,
		now:         time.Now,
	}
}

func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	total, err := s.equipment.Count(ctx)
	if err != nil {
		return nil, err
	}

	alerts, err := s.predictions.CountActiveAtRisk(ctx)
	if err != nil {
		return nil, err
	}

	predicted, err := s.predictions.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	open, err := s.maintenance.CountOpen(ctx)
	if err != nil {
		return nil, err
	}

	byType, err := s.equipment.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.equipment.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		TotalEquipments:      total,
		ActiveAlerts:         alerts,
		PredictedFailures:    predicted,
		MaintenanceScheduled: open,
		SystemAccuracy:       s.accuracy,
		AvgResponseTime:      s.avgResponse,
		TypeSummary:          byType,
		StatusSummary:        byStatus,
	}, nil
}

func (s *Service) Report(ctx context.Context, reportType string) (*Report, error) {
	if reportType == "" {
		reportType = "general"
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		ReportType:  reportType,
		GeneratedAt: s.now(),
		Snapshot:    *snap,
	}, nil
}
