package repository

import (
	"context"
	"time"

	"conectasonda/internal/domain"

	"gorm.io/gorm"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

type equipmentModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name"`
	Type            string     `gorm:"column:type"`
	Location        string     `gorm:"column:location"`
	Status          string     `gorm:"column:status"`
	LastMaintenance *time.Time `gorm:"column:last_maintenance"`
	LastFailure     *time.Time `gorm:"column:last_failure"`
	FailureCount    int        `gorm:"column:failure_count"`
	Uptime          float64    `gorm:"column:uptime"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (equipmentModel) TableName() string { return "equipment" }

func toDomainEquipment(m equipmentModel) *domain.Equipment {
	return &domain.Equipment{
		ID:              m.ID,
		Name:            m.Name,
		Type:            domain.EquipmentType(m.Type),
		Location:        m.Location,
		Status:          domain.EquipmentStatus(m.Status),
		LastMaintenance: m.LastMaintenance,
		LastFailure:     m.LastFailure,
		FailureCount:    m.FailureCount,
		Uptime:          m.Uptime,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toEquipmentModel(e *domain.Equipment) equipmentModel {
	return equipmentModel{
		ID:              e.ID,
		Name:            e.Name,
		Type:            string(e.Type),
		Location:        e.Location,
		Status:          string(e.Status),
		LastMaintenance: e.LastMaintenance,
		LastFailure:     e.LastFailure,
		FailureCount:    e.FailureCount,
		Uptime:          e.Uptime,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	m := toEquipmentModel(e)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	e.ID = m.ID
	e.CreatedAt = m.CreatedAt
	e.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var m equipmentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainEquipment(m), nil
}

// List returns equipment in insertion order, optionally filtered by type.
func (r *EquipmentRepository) List(ctx context.Context, t *domain.EquipmentType) ([]domain.Equipment, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if t != nil {
		q = q.Where("type = ?", string(*t))
	}

	var rows []equipmentModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Equipment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainEquipment(m))
	}
	return out, nil
}

// RecordFailure appends the failure record, bumps the failure counter and
// marks the equipment failed in a single transaction, so concurrent readers
// never observe a partial update.
func (r *EquipmentRepository) RecordFailure(ctx context.Context, id int64, failureType string, date time.Time) (*domain.Equipment, *domain.FailureRecord, error) {
	var (
		eq  equipmentModel
		rec failureModel
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&eq, "id = ?", id).Error; err != nil {
			return err
		}

		rec = failureModel{
			EquipmentID: id,
			Date:        date,
			FailureType: failureType,
			Resolved:    false,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}

		eq.Status = string(domain.StatusFailed)
		eq.LastFailure = &date
		eq.FailureCount++
		return tx.Save(&eq).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return toDomainEquipment(eq), toDomainFailure(rec), nil
}

// applyMaintenanceCompletionTx flips under_maintenance equipment back to
// operational and stamps last_maintenance. Zero rows means the equipment is
// absent or not under maintenance. Shared with the scheduler's completion
// transaction so both run the same update rule.
func applyMaintenanceCompletionTx(tx *gorm.DB, id int64, date time.Time) (int64, error) {
	res := tx.Model(&equipmentModel{}).
		Where("id = ? AND status = ?", id, string(domain.StatusUnderMaintenance)).
		Updates(map[string]any{
			"status":           string(domain.StatusOperational),
			"last_maintenance": date,
		})
	return res.RowsAffected, res.Error
}

func setEquipmentStatusTx(tx *gorm.DB, id int64, status domain.EquipmentStatus) (int64, error) {
	res := tx.Model(&equipmentModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	return res.RowsAffected, res.Error
}

// SetMaintenanceCompleted flips under_maintenance equipment back to
// operational and stamps last_maintenance. Returns the number of rows
// updated; zero means the equipment is absent or not under maintenance.
func (r *EquipmentRepository) SetMaintenanceCompleted(ctx context.Context, id int64, date time.Time) (int64, error) {
	return applyMaintenanceCompletionTx(r.db.WithContext(ctx), id, date)
}

func (r *EquipmentRepository) SetStatus(ctx context.Context, id int64, status domain.EquipmentStatus) (int64, error) {
	return setEquipmentStatusTx(r.db.WithContext(ctx), id, status)
}

func (r *EquipmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&equipmentModel{}).Count(&n).Error
	return n, err
}

func (r *EquipmentRepository) CountByType(ctx context.Context) (map[domain.EquipmentType]int64, error) {
	rows, err := r.countGrouped(ctx, "type")
	if err != nil {
		return nil, err
	}
	out := make(map[domain.EquipmentType]int64, len(rows))
	for k, v := range rows {
		out[domain.EquipmentType(k)] = v
	}
	return out, nil
}

func (r *EquipmentRepository) CountByStatus(ctx context.Context) (map[domain.EquipmentStatus]int64, error) {
	rows, err := r.countGrouped(ctx, "status")
	if err != nil {
		return nil, err
	}
	out := make(map[domain.EquipmentStatus]int64, len(rows))
	for k, v := range rows {
		out[domain.EquipmentStatus(k)] = v
	}
	return out, nil
}

func (r *EquipmentRepository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	type row struct {
		Key string `gorm:"column:key"`
		N   int64  `gorm:"column:n"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Select(column + " AS key, COUNT(*) AS n").
		Group(column).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, g := range rows {
		out[g.Key] = g.N
	}
	return out, nil
}
