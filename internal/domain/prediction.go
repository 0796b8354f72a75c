package domain

import "time"

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh || r == RiskCritical
}

// RiskLevelFor classifies a failure probability into a risk band.
// The band is the only source of a prediction's risk level.
func RiskLevelFor(probability float64) RiskLevel {
	switch {
	case probability < 0.25:
		return RiskLow
	case probability < 0.5:
		return RiskMedium
	case probability < 0.75:
		return RiskHigh
	default:
		return RiskCritical
	}
}

type PredictionStatus string

const (
	PredictionActive       PredictionStatus = "active"
	PredictionAcknowledged PredictionStatus = "acknowledged"
	PredictionExpired      PredictionStatus = "expired"
)

type Prediction struct {
	ID               int64            `json:"id"`
	EquipmentID      int64            `json:"equipment_id"`
	Probability      float64          `json:"probability"`
	Confidence       float64          `json:"confidence"`
	RiskLevel        RiskLevel        `json:"risk_level"`
	PredictedFailure string           `json:"predicted_failure"`
	EstimatedTime    time.Time        `json:"estimated_time"`
	Status           PredictionStatus `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
}
