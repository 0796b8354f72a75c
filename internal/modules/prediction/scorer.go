package prediction

import (
	"context"
	"time"

	"conectasonda/internal/domain"
)

// Scorer is the external risk-scoring capability. Implementations may call
// out to a model service; the engine wraps every call in a timeout.
type Scorer interface {
	Score(ctx context.Context, eq *domain.Equipment, recent []domain.FailureRecord) (probability, confidence float64, err error)
}

// HeuristicScorer is the built-in baseline: failure probability from uptime,
// failure count and recent unresolved failures. It stands in until a real
// model endpoint is wired up.
type HeuristicScorer struct{}

func (HeuristicScorer) Score(ctx context.Context, eq *domain.Equipment, recent []domain.FailureRecord) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	p := 1 - eq.Uptime

	count := eq.FailureCount
	if count > 10 {
		count = 10
	}
	p += 0.03 * float64(count)

	for _, rec := range recent {
		if !rec.Resolved {
			p += 0.15
			break
		}
	}

	samples := len(recent)
	if samples > 10 {
		samples = 10
	}
	confidence := 0.85 + 0.013*float64(samples)

	return clamp01(p), clamp01(confidence), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// horizonFor maps a risk band to the forecast horizon for the estimated
// failure time.
func horizonFor(risk domain.RiskLevel) time.Duration {
	switch risk {
	case domain.RiskCritical:
		return 24 * time.Hour
	case domain.RiskHigh:
		return 72 * time.Hour
	case domain.RiskMedium:
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}
