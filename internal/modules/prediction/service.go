package prediction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conectasonda/internal/domain"
	"conectasonda/internal/pkg/keymutex"

	"gorm.io/gorm"
)

const recentFailureWindow = 10

// Service materializes risk assessments. Scoring runs outside the
// per-equipment lock so a slow model call never serializes other writes on
// the fleet; the lock is taken only to commit the resulting prediction.
type Service struct {
	predictions  PredictionRepository
	equipment    EquipmentReader
	failures     FailureReader
	scorer       Scorer
	notifier     AlertNotifier
	locks        *keymutex.KeyMutex
	scoreTimeout time.Duration
	now          func() time.Time
}

func NewService(
	predictions PredictionRepository,
	equipment EquipmentReader,
	failures FailureReader,
	scorer Scorer,
	notifier AlertNotifier,
	locks *keymutex.KeyMutex,
	scoreTimeout time.Duration,
) *Service {
	if scoreTimeout <= 0 {
		scoreTimeout = 5 * time.Second
	}
	return &Service{
		predictions:  predictions,
		equipment:    equipment,
		failures:     failures,
		scorer:       scorer,
		notifier:     notifier,
		locks:        locks,
		scoreTimeout: scoreTimeout,
		now:          time.Now,
	}
}

// Predict scores the equipment, classifies the result and commits it as the
// single active prediction, expiring any prior one.
func (s *Service) Predict(ctx context.Context, equipmentID int64) (*domain.Prediction, error) {
	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	recent, err := s.failures.RecentByEquipment(ctx, equipmentID, recentFailureWindow)
	if err != nil {
		return nil, err
	}

	scoreCtx, cancel := context.WithTimeout(ctx, s.scoreTimeout)
	defer cancel()

	probability, confidence, err := s.scorer.Score(scoreCtx, eq, recent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringUnavailable, err)
	}

	probability = clamp01(probability)
	confidence = clamp01(confidence)
	risk := domain.RiskLevelFor(probability)

	p := &domain.Prediction{
		EquipmentID:      equipmentID,
		Probability:      probability,
		Confidence:       confidence,
		RiskLevel:        risk,
		PredictedFailure: predictedFailure(eq, recent),
		EstimatedTime:    s.now().Add(horizonFor(risk)),
		Status:           domain.PredictionActive,
	}

	s.locks.Lock(equipmentID)
	err = s.predictions.SupersedeActive(ctx, p)
	s.locks.Unlock(equipmentID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && (risk == domain.RiskHigh || risk == domain.RiskCritical) {
		s.notifier.PredictionAlert(p)
	}

	return p, nil
}

// List returns active predictions, highest probability first.
func (s *Service) List(ctx context.Context, riskFilter *domain.RiskLevel) ([]domain.Prediction, error) {
	if riskFilter != nil && !riskFilter.Valid() {
		return nil, ErrValidation
	}
	return s.predictions.ListActive(ctx, riskFilter)
}

// Acknowledge marks an active prediction as seen. It stays the equipment's
// current assessment and is still superseded by the next Predict.
func (s *Service) Acknowledge(ctx context.Context, id int64) (*domain.Prediction, error) {
	rows, err := s.predictions.Acknowledge(ctx, id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		if _, err := s.predictions.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		} else if err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}
	return s.predictions.GetByID(ctx, id)
}

// ExpireActive retires the equipment's live prediction. The scheduler calls
// this when completed maintenance addresses the risk.
func (s *Service) ExpireActive(ctx context.Context, equipmentID int64) error {
	return s.predictions.ExpireActive(ctx, equipmentID)
}

// predictedFailure picks the most frequent failure type in recent history,
// falling back to the most common known mode for the equipment type.
func predictedFailure(eq *domain.Equipment, recent []domain.FailureRecord) string {
	counts := make(map[string]int, len(recent))
	best, bestN := "", 0
	for _, rec := range recent {
		counts[rec.FailureType]++
		if counts[rec.FailureType] > bestN {
			best, bestN = rec.FailureType, counts[rec.FailureType]
		}
	}
	if best != "" {
		return best
	}

	if modes := domain.FailureModes(eq.Type); len(modes) > 0 {
		return modes[0]
	}
	return "general wear"
}
