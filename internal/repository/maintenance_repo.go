package repository

import (
	"context"
	"errors"
	"time"

	"conectasonda/internal/domain"

	"gorm.io/gorm"
)

// errAbortTx rolls a composite transaction back when a conditional update
// inside it matched nothing.
var errAbortTx = errors.New("abort transaction")

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

type maintenanceModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	EquipmentID     int64      `gorm:"column:equipment_id;index"`
	ScheduledDate   time.Time  `gorm:"column:scheduled_date"`
	MaintenanceType string     `gorm:"column:maintenance_type"`
	Notes           *string    `gorm:"column:notes"`
	Status          string     `gorm:"column:status;index"`
	CompletedAt     *time.Time `gorm:"column:completed_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (maintenanceModel) TableName() string { return "maintenance_requests" }

var openMaintenanceStatuses = []string{
	string(domain.MaintenanceScheduled),
	string(domain.MaintenanceInProgress),
}

func toDomainMaintenance(m maintenanceModel) *domain.MaintenanceRequest {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.MaintenanceRequest{
		ID:              m.ID,
		EquipmentID:     m.EquipmentID,
		ScheduledDate:   m.ScheduledDate,
		MaintenanceType: m.MaintenanceType,
		Notes:           notes,
		Status:          domain.MaintenanceStatus(m.Status),
		CompletedAt:     m.CompletedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// Schedule inserts the request and moves its equipment under maintenance in
// a single transaction. The partial unique index on open requests makes a
// concurrent duplicate fail the insert and roll the whole thing back.
func (r *MaintenanceRepository) Schedule(ctx context.Context, req *domain.MaintenanceRequest) error {
	var notes *string
	if req.Notes != "" {
		v := req.Notes
		notes = &v
	}

	m := maintenanceModel{
		EquipmentID:     req.EquipmentID,
		ScheduledDate:   req.ScheduledDate,
		MaintenanceType: req.MaintenanceType,
		Notes:           notes,
		Status:          string(req.Status),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		_, err := setEquipmentStatusTx(tx, req.EquipmentID, domain.StatusUnderMaintenance)
		return err
	})
	if err != nil {
		return err
	}

	req.ID = m.ID
	req.CreatedAt = m.CreatedAt
	req.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
	var m maintenanceModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainMaintenance(m), nil
}

func (r *MaintenanceRepository) List(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	var rows []maintenanceModel
	err := r.db.WithContext(ctx).
		Order("scheduled_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.MaintenanceRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMaintenance(m))
	}
	return out, nil
}

func (r *MaintenanceRepository) HasOpen(ctx context.Context, equipmentID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&maintenanceModel{}).
		Where("equipment_id = ? AND status IN ?", equipmentID, openMaintenanceStatuses).
		Count(&n).Error
	return n > 0, err
}

func (r *MaintenanceRepository) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&maintenanceModel{}).
		Where("status IN ?", openMaintenanceStatuses).
		Count(&n).Error
	return n, err
}

// Transition moves a request from one status to another. Zero rows updated
// means the request is absent or not in the expected status.
func (r *MaintenanceRepository) Transition(ctx context.Context, id int64, from, to domain.MaintenanceStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&maintenanceModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	return res.RowsAffected, res.Error
}

// Complete finishes an in_progress request and returns its equipment to
// service in a single transaction. Zero rows means the request is not in
// progress or the equipment is no longer under maintenance; in either case
// nothing is committed.
func (r *MaintenanceRepository) Complete(ctx context.Context, id, equipmentID int64, date time.Time) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&maintenanceModel{}).
			Where("id = ? AND status = ?", id, string(domain.MaintenanceInProgress)).
			Updates(map[string]any{
				"status":       string(domain.MaintenanceCompleted),
				"completed_at": date,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAbortTx
		}

		rows, err := applyMaintenanceCompletionTx(tx, equipmentID, date)
		if err != nil {
			return err
		}
		if rows == 0 {
			return errAbortTx
		}
		return nil
	})
	if errors.Is(err, errAbortTx) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return 1, nil
}

// Cancel cancels an open request and reverts its equipment to the given
// status in a single transaction. Zero rows means the request is absent or
// already terminal.
func (r *MaintenanceRepository) Cancel(ctx context.Context, id, equipmentID int64, revert domain.EquipmentStatus) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&maintenanceModel{}).
			Where("id = ? AND status IN ?", id, openMaintenanceStatuses).
			Update("status", string(domain.MaintenanceCancelled))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAbortTx
		}

		_, err := setEquipmentStatusTx(tx, equipmentID, revert)
		return err
	})
	if errors.Is(err, errAbortTx) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return 1, nil
}
