package repository

import (
	"context"
	"time"

	"conectasonda/internal/domain"

	"gorm.io/gorm"
)

type FailureRepository struct {
	db *gorm.DB
}

func NewFailureRepository(db *gorm.DB) *FailureRepository {
	return &FailureRepository{db: db}
}

type failureModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	EquipmentID int64     `gorm:"column:equipment_id;index"`
	Date        time.Time `gorm:"column:date"`
	FailureType string    `gorm:"column:failure_type"`
	Resolved    bool      `gorm:"column:resolved"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (failureModel) TableName() string { return "failure_records" }

func toDomainFailure(m failureModel) *domain.FailureRecord {
	return &domain.FailureRecord{
		ID:          m.ID,
		EquipmentID: m.EquipmentID,
		Date:        m.Date,
		FailureType: m.FailureType,
		Resolved:    m.Resolved,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *FailureRepository) Create(ctx context.Context, rec *domain.FailureRecord) error {
	m := failureModel{
		EquipmentID: rec.EquipmentID,
		Date:        rec.Date,
		FailureType: rec.FailureType,
		Resolved:    rec.Resolved,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	rec.ID = m.ID
	rec.CreatedAt = m.CreatedAt
	return nil
}

func (r *FailureRepository) GetByID(ctx context.Context, id int64) (*domain.FailureRecord, error) {
	var m failureModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainFailure(m), nil
}

// List returns failure records newest first, optionally for one equipment.
func (r *FailureRepository) List(ctx context.Context, equipmentID *int64) ([]domain.FailureRecord, error) {
	q := r.db.WithContext(ctx).Order("date DESC, id DESC")
	if equipmentID != nil {
		q = q.Where("equipment_id = ?", *equipmentID)
	}

	var rows []failureModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.FailureRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainFailure(m))
	}
	return out, nil
}

func (r *FailureRepository) RecentByEquipment(ctx context.Context, equipmentID int64, limit int) ([]domain.FailureRecord, error) {
	var rows []failureModel
	err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.FailureRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainFailure(m))
	}
	return out, nil
}

// Resolve marks the record resolved. Zero rows updated means the record is
// either absent or already resolved; the caller disambiguates.
func (r *FailureRepository) Resolve(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&failureModel{}).
		Where("id = ? AND resolved = ?", id, false).
		Update("resolved", true)
	return res.RowsAffected, res.Error
}

func (r *FailureRepository) HasUnresolved(ctx context.Context, equipmentID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&failureModel{}).
		Where("equipment_id = ? AND resolved = ?", equipmentID, false).
		Count(&n).Error
	return n > 0, err
}
