package registry

import (
	"context"
	"errors"
	"time"

	"conectasonda/internal/domain"
	"conectasonda/internal/pkg/keymutex"

	"gorm.io/gorm"
)

// Service is the authoritative owner of equipment records. Failure recording
// takes the per-equipment lock; the maintenance-driven mutators
// (ApplyMaintenanceCompletion, SetStatus) are called by the scheduler, which
// already holds that lock.
type Service struct {
	equipment EquipmentRepository
	locks     *keymutex.KeyMutex
	now       func() time.Time
}

func NewService(equipment EquipmentRepository, locks *keymutex.KeyMutex) *Service {
	return &Service{
		equipment: equipment,
		locks:     locks,
		now:       time.Now,
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	eq, err := s.equipment.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *Service) List(ctx context.Context, typeFilter *domain.EquipmentType) ([]domain.Equipment, error) {
	if typeFilter != nil && !typeFilter.Valid() {
		return nil, ErrValidation
	}
	return s.equipment.List(ctx, typeFilter)
}

// Create provisions a new equipment record, starting operational.
func (s *Service) Create(ctx context.Context, req CreateEquipmentRequest) (*domain.Equipment, error) {
	t := domain.EquipmentType(req.Type)
	if !t.Valid() {
		return nil, ErrValidation
	}
	if req.Uptime < 0 || req.Uptime > 1 {
		return nil, ErrValidation
	}

	eq := &domain.Equipment{
		Name:     req.Name,
		Type:     t,
		Location: req.Location,
		Status:   domain.StatusOperational,
		Uptime:   req.Uptime,
	}
	if err := s.equipment.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// RecordFailure appends a failure record, increments the failure counter and
// marks the equipment failed, atomically.
func (s *Service) RecordFailure(ctx context.Context, id int64, failureType string, date time.Time) (*domain.Equipment, *domain.FailureRecord, error) {
	if failureType == "" {
		return nil, nil, ErrValidation
	}
	if date.IsZero() {
		date = s.now()
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	eq, rec, err := s.equipment.RecordFailure(ctx, id, failureType, date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return eq, rec, nil
}

// ApplyMaintenanceCompletion flips under_maintenance equipment back to
// operational and stamps last_maintenance. Caller holds the equipment lock.
func (s *Service) ApplyMaintenanceCompletion(ctx context.Context, id int64, date time.Time) error {
	rows, err := s.equipment.SetMaintenanceCompleted(ctx, id, date)
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := s.equipment.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return ErrInvalidTransition
	}
	return nil
}

// SetStatus is the scheduler's hook for entering maintenance and for cancel
// reverts. Caller holds the equipment lock.
func (s *Service) SetStatus(ctx context.Context, id int64, status domain.EquipmentStatus) error {
	if !status.Valid() {
		return ErrValidation
	}

	rows, err := s.equipment.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
