package repository

import (
	"context"
	"time"

	"conectasonda/internal/domain"

	"gorm.io/gorm"
)

type PredictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

type predictionModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	EquipmentID      int64     `gorm:"column:equipment_id;index"`
	Probability      float64   `gorm:"column:probability"`
	Confidence       float64   `gorm:"column:confidence"`
	RiskLevel        string    `gorm:"column:risk_level"`
	PredictedFailure string    `gorm:"column:predicted_failure"`
	EstimatedTime    time.Time `gorm:"column:estimated_time"`
	Status           string    `gorm:"column:status;index"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (predictionModel) TableName() string { return "predictions" }

func toDomainPrediction(m predictionModel) *domain.Prediction {
	return &domain.Prediction{
		ID:               m.ID,
		EquipmentID:      m.EquipmentID,
		Probability:      m.Probability,
		Confidence:       m.Confidence,
		RiskLevel:        domain.RiskLevel(m.RiskLevel),
		PredictedFailure: m.PredictedFailure,
		EstimatedTime:    m.EstimatedTime,
		Status:           domain.PredictionStatus(m.Status),
		CreatedAt:        m.CreatedAt,
	}
}

// nonExpiredStatuses are the statuses a new prediction supersedes.
var nonExpiredStatuses = []string{
	string(domain.PredictionActive),
	string(domain.PredictionAcknowledged),
}

// SupersedeActive expires the equipment's current assessment and inserts the
// new active prediction in one transaction, keeping at most one live
// prediction per equipment.
func (r *PredictionRepository) SupersedeActive(ctx context.Context, p *domain.Prediction) error {
	m := predictionModel{
		EquipmentID:      p.EquipmentID,
		Probability:      p.Probability,
		Confidence:       p.Confidence,
		RiskLevel:        string(p.RiskLevel),
		PredictedFailure: p.PredictedFailure,
		EstimatedTime:    p.EstimatedTime,
		Status:           string(p.Status),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&predictionModel{}).
			Where("equipment_id = ? AND status IN ?", p.EquipmentID, nonExpiredStatuses).
			Update("status", string(domain.PredictionExpired)).Error
		if err != nil {
			return err
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}

	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	return nil
}

func (r *PredictionRepository) GetByID(ctx context.Context, id int64) (*domain.Prediction, error) {
	var m predictionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainPrediction(m), nil
}

// ListActive returns active predictions ordered by probability descending,
// ties broken by equipment id ascending for determinism.
func (r *PredictionRepository) ListActive(ctx context.Context, risk *domain.RiskLevel) ([]domain.Prediction, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", string(domain.PredictionActive)).
		Order("probability DESC, equipment_id ASC")
	if risk != nil {
		q = q.Where("risk_level = ?", string(*risk))
	}

	var rows []predictionModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Prediction, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPrediction(m))
	}
	return out, nil
}

// ExpireActive retires the equipment's live prediction, e.g. after completed
// maintenance addressed the risk.
func (r *PredictionRepository) ExpireActive(ctx context.Context, equipmentID int64) error {
	return r.db.WithContext(ctx).
		Model(&predictionModel{}).
		Where("equipment_id = ? AND status IN ?", equipmentID, nonExpiredStatuses).
		Update("status", string(domain.PredictionExpired)).Error
}

func (r *PredictionRepository) Acknowledge(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&predictionModel{}).
		Where("id = ? AND status = ?", id, string(domain.PredictionActive)).
		Update("status", string(domain.PredictionAcknowledged))
	return res.RowsAffected, res.Error
}

func (r *PredictionRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&predictionModel{}).
		Where("status = ?", string(domain.PredictionActive)).
		Count(&n).Error
	return n, err
}

func (r *PredictionRepository) CountActiveAtRisk(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&predictionModel{}).
		Where("status = ? AND risk_level IN ?",
			string(domain.PredictionActive),
			[]string{string(domain.RiskHigh), string(domain.RiskCritical)}).
		Count(&n).Error
	return n, err
}
