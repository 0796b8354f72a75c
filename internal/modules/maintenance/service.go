package maintenance

import (
	"context"
	"errors"
	"time"

	"conectasonda/internal/domain"
	"conectasonda/internal/pkg/keymutex"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Service runs the maintenance state machine:
// scheduled → in_progress → completed, with cancel allowed from either
// non-terminal state. At most one open request exists per equipment.
type Service struct {
	requests    MaintenanceRepository
	equipment   EquipmentReader
	predictions PredictionExpirer
	failures    FailureChecker
	locks       *keymutex.KeyMutex
	now         func() time.Time
}

func NewService(
	requests MaintenanceRepository,
	equipment EquipmentReader,
	predictions PredictionExpirer,
	failures FailureChecker,
	locks *keymutex.KeyMutex,
) *Service {
	return &Service{
		requests:    requests,
		equipment:   equipment,
		predictions: predictions,
		failures:    failures,
		locks:       locks,
		now:         time.Now,
	}
}

// Schedule creates a request and moves the equipment under maintenance.
// Conflicts are checked under the equipment lock; the partial unique index
// backstops them when several instances share the database.
func (s *Service) Schedule(ctx context.Context, req ScheduleRequest) (*domain.MaintenanceRequest, error) {
	if req.MaintenanceType == "" || req.ScheduledDate.IsZero() {
		return nil, ErrValidation
	}

	s.locks.Lock(req.EquipmentID)
	defer s.locks.Unlock(req.EquipmentID)

	if _, err := s.equipment.GetByID(ctx, req.EquipmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	open, err := s.requests.HasOpen(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrConflict
	}

	m := &domain.MaintenanceRequest{
		EquipmentID:     req.EquipmentID,
		ScheduledDate:   req.ScheduledDate,
		MaintenanceType: req.MaintenanceType,
		Notes:           req.Notes,
		Status:          domain.MaintenanceScheduled,
	}
	if err := s.requests.Schedule(ctx, m); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}

	return m, nil
}

// Start moves a scheduled request to in_progress.
func (s *Service) Start(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	req, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(req.EquipmentID)
	defer s.locks.Unlock(req.EquipmentID)

	rows, err := s.requests.Transition(ctx, id, domain.MaintenanceScheduled, domain.MaintenanceInProgress)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidTransition
	}

	return s.requests.GetByID(ctx, id)
}

// Complete finishes an in_progress request, returns the equipment to
// operational with last_maintenance stamped, and expires its live
// prediction. Request and equipment commit together: if a failure was
// recorded while the work was in progress, the equipment is no longer
// under maintenance and the whole call fails with an invalid transition.
func (s *Service) Complete(ctx context.Context, id int64, date time.Time) (*domain.MaintenanceRequest, error) {
	req, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = s.now()
	}

	s.locks.Lock(req.EquipmentID)
	defer s.locks.Unlock(req.EquipmentID)

	rows, err := s.requests.Complete(ctx, id, req.EquipmentID, date)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidTransition
	}

	if err := s.predictions.ExpireActive(ctx, req.EquipmentID); err != nil {
		return nil, err
	}

	return s.requests.GetByID(ctx, id)
}

// Cancel aborts a non-terminal request. The equipment reverts to failed when
// an unresolved failure is still outstanding, otherwise to operational.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	req, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(req.EquipmentID)
	defer s.locks.Unlock(req.EquipmentID)

	unresolved, err := s.failures.HasUnresolved(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}

	revert := domain.StatusOperational
	if unresolved {
		revert = domain.StatusFailed
	}

	rows, err := s.requests.Cancel(ctx, id, req.EquipmentID, revert)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidTransition
	}

	return s.requests.GetByID(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	return s.get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	return s.requests.List(ctx)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}
