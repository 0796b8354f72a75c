package history

import (
	"context"
	"errors"
	"time"

	"conectasonda/internal/domain"

	"gorm.io/gorm"
)

// Service is the append-only failure history log. Records are immutable
// except for the resolved flag, which can only go false→true.
type Service struct {
	failures  FailureRepository
	equipment EquipmentChecker
	now       func() time.Time
}

func NewService(failures FailureRepository, equipment EquipmentChecker) *Service {
	return &Service{
		failures:  failures,
		equipment: equipment,
		now:       time.Now,
	}
}

func (s *Service) Append(ctx context.Context, req AppendFailureRequest) (*domain.FailureRecord, error) {
	if req.FailureType == "" {
		return nil, ErrValidation
	}

	if _, err := s.equipment.GetByID(ctx, req.EquipmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}

	rec := &domain.FailureRecord{
		EquipmentID: req.EquipmentID,
		Date:        date,
		FailureType: req.FailureType,
	}
	if err := s.failures.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Query returns failure records newest first, optionally for one equipment.
func (s *Service) Query(ctx context.Context, equipmentID *int64) ([]domain.FailureRecord, error) {
	return s.failures.List(ctx, equipmentID)
}

// Resolve marks a record resolved. Resolving an already-resolved record is a
// no-op, not an error, so callers can retry safely.
func (s *Service) Resolve(ctx context.Context, id int64) (*domain.FailureRecord, error) {
	rows, err := s.failures.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	rec, err := s.failures.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	_ = rows // zero with an existing record means it was already resolved
	return rec, nil
}

func (s *Service) HasUnresolved(ctx context.Context, equipmentID int64) (bool, error) {
	return s.failures.HasUnresolved(ctx, equipmentID)
}
