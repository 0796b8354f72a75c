package prediction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"conectasonda/internal/domain"
	"conectasonda/internal/pkg/keymutex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) SupersedeActive(ctx context.Context, p *domain.Prediction) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 77
	}
	return args.Error(0)
}

func (m *MockPredictionRepository) GetByID(ctx context.Context, id int64) (*domain.Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) ListActive(ctx context.Context, risk *domain.RiskLevel) ([]domain.Prediction, error) {
	args := m.Called(ctx, risk)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) ExpireActive(ctx context.Context, equipmentID int64) error {
	args := m.Called(ctx, equipmentID)
	return args.Error(0)
}

func (m *MockPredictionRepository) Acknowledge(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockEquipmentReader struct {
	mock.Mock
}

func (m *MockEquipmentReader) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

type MockFailureReader struct {
	mock.Mock
}

func (m *MockFailureReader) RecentByEquipment(ctx context.Context, equipmentID int64, limit int) ([]domain.FailureRecord, error) {
	args := m.Called(ctx, equipmentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FailureRecord), args.Error(1)
}

// fixedScorer always returns the same score.
type fixedScorer struct {
	probability float64
	confidence  float64
	err         error
}

func (s fixedScorer) Score(ctx context.Context, eq *domain.Equipment, recent []domain.FailureRecord) (float64, float64, error) {
	return s.probability, s.confidence, s.err
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen []*domain.Prediction
}

func (n *recordingNotifier) PredictionAlert(p *domain.Prediction) {
	n.mu.Lock()
	n.seen = append(n.seen, p)
	n.mu.Unlock()
}

func newPredictService(repo PredictionRepository, eq EquipmentReader, fr FailureReader, sc Scorer, n AlertNotifier) *Service {
	return NewService(repo, eq, fr, sc, n, keymutex.New(), time.Second)
}

func TestService_Predict_ClassifiesRisk(t *testing.T) {
	cases := []struct {
		probability float64
		risk        domain.RiskLevel
	}{
		{0.1, domain.RiskLow},
		{0.3, domain.RiskMedium},
		{0.6, domain.RiskHigh},
		{0.9, domain.RiskCritical},
	}

	for _, tc := range cases {
		repo := new(MockPredictionRepository)
		repo.On("SupersedeActive", mock.Anything, mock.Anything).Return(nil)
		equipment := new(MockEquipmentReader)
		equipment.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Equipment{ID: 1, Type: domain.TypeTurnstile, Uptime: 0.9}, nil)
		failures := new(MockFailureReader)
		failures.On("RecentByEquipment", mock.Anything, int64(1), recentFailureWindow).
			Return([]domain.FailureRecord{}, nil)

		svc := newPredictService(repo, equipment, failures, fixedScorer{tc.probability, 0.9, nil}, nil)

		p, err := svc.Predict(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, tc.risk, p.RiskLevel, "probability %.2f", tc.probability)
		assert.Equal(t, domain.PredictionActive, p.Status)
		assert.InDelta(t, tc.probability, p.Probability, 1e-9)
	}
}

func TestService_Predict_UnknownEquipment(t *testing.T) {
	repo := new(MockPredictionRepository)
	equipment := new(MockEquipmentReader)
	equipment.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := newPredictService(repo, equipment, new(MockFailureReader), fixedScorer{}, nil)

	_, err := svc.Predict(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "SupersedeActive", mock.Anything, mock.Anything)
}

func TestService_Predict_ScorerFailure(t *testing.T) {
	repo := new(MockPredictionRepository)
	equipment := new(MockEquipmentReader)
	equipment.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Equipment{ID: 1, Type: domain.TypeTurnstile}, nil)
	failures := new(MockFailureReader)
	failures.On("RecentByEquipment", mock.Anything, int64(1), recentFailureWindow).
		Return([]domain.FailureRecord{}, nil)

	svc := newPredictService(repo, equipment, failures,
		fixedScorer{err: errors.New("model endpoint down")}, nil)

	_, err := svc.Predict(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScoringUnavailable)
	// A failed scoring run must leave any existing prediction untouched.
	repo.AssertNotCalled(t, "SupersedeActive", mock.Anything, mock.Anything)
}

func TestService_Predict_NotifiesOnlyHighRisk(t *testing.T) {
	cases := []struct {
		probability float64
		notified    bool
	}{
		{0.1, false},
		{0.4, false},
		{0.6, true},
		{0.95, true},
	}

	for _, tc := range cases {
		repo := new(MockPredictionRepository)
		repo.On("SupersedeActive", mock.Anything, mock.Anything).Return(nil)
		equipment := new(MockEquipmentReader)
		equipment.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Equipment{ID: 1, Type: domain.TypePaymentTerminal}, nil)
		failures := new(MockFailureReader)
		failures.On("RecentByEquipment", mock.Anything, int64(1), recentFailureWindow).
			Return([]domain.FailureRecord{}, nil)

		notifier := &recordingNotifier{}
		svc := newPredictService(repo, equipment, failures, fixedScorer{tc.probability, 0.9, nil}, notifier)

		_, err := svc.Predict(context.Background(), 1)
		require.NoError(t, err)
		if tc.notified {
			assert.Len(t, notifier.seen, 1, "probability %.2f", tc.probability)
		} else {
			assert.Empty(t, notifier.seen, "probability %.2f", tc.probability)
		}
	}
}

func TestService_Predict_UsesMostFrequentRecentFailure(t *testing.T) {
	repo := new(MockPredictionRepository)
	repo.On("SupersedeActive", mock.Anything, mock.Anything).Return(nil)
	equipment := new(MockEquipmentReader)
	equipment.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Equipment{ID: 1, Type: domain.TypeTurnstile}, nil)
	failures := new(MockFailureReader)
	failures.On("RecentByEquipment", mock.Anything, int64(1), recentFailureWindow).
		Return([]domain.FailureRecord{
			{FailureType: "card reader"},
			{FailureType: "passage sensor"},
			{FailureType: "passage sensor"},
		}, nil)

	svc := newPredictService(repo, equipment, failures, fixedScorer{0.2, 0.9, nil}, nil)

	p, err := svc.Predict(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "passage sensor", p.PredictedFailure)
}

func TestService_Acknowledge(t *testing.T) {
	t.Run("active prediction", func(t *testing.T) {
		repo := new(MockPredictionRepository)
		repo.On("Acknowledge", mock.Anything, int64(5)).Return(int64(1), nil)
		repo.On("GetByID", mock.Anything, int64(5)).
			Return(&domain.Prediction{ID: 5, Status: domain.PredictionAcknowledged}, nil)

		svc := newPredictService(repo, new(MockEquipmentReader), new(MockFailureReader), fixedScorer{}, nil)

		p, err := svc.Acknowledge(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.PredictionAcknowledged, p.Status)
	})

	t.Run("unknown prediction", func(t *testing.T) {
		repo := new(MockPredictionRepository)
		repo.On("Acknowledge", mock.Anything, int64(404)).Return(int64(0), nil)
		repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := newPredictService(repo, new(MockEquipmentReader), new(MockFailureReader), fixedScorer{}, nil)

		_, err := svc.Acknowledge(context.Background(), 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expired prediction", func(t *testing.T) {
		repo := new(MockPredictionRepository)
		repo.On("Acknowledge", mock.Anything, int64(5)).Return(int64(0), nil)
		repo.On("GetByID", mock.Anything, int64(5)).
			Return(&domain.Prediction{ID: 5, Status: domain.PredictionExpired}, nil)

		svc := newPredictService(repo, new(MockEquipmentReader), new(MockFailureReader), fixedScorer{}, nil)

		_, err := svc.Acknowledge(context.Background(), 5)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

// memPredictionRepo is a minimal in-memory repository for exercising the
// supersede path under concurrency.
type memPredictionRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*domain.Prediction
}

func (r *memPredictionRepo) SupersedeActive(ctx context.Context, p *domain.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.EquipmentID == p.EquipmentID && row.Status != domain.PredictionExpired {
			row.Status = domain.PredictionExpired
		}
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *memPredictionRepo) GetByID(ctx context.Context, id int64) (*domain.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memPredictionRepo) ListActive(ctx context.Context, risk *domain.RiskLevel) ([]domain.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Prediction
	for _, row := range r.rows {
		if row.Status == domain.PredictionActive {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *memPredictionRepo) ExpireActive(ctx context.Context, equipmentID int64) error {
	return nil
}

func (r *memPredictionRepo) Acknowledge(ctx context.Context, id int64) (int64, error) {
	return 0, nil
}

func TestService_Predict_ConcurrentSingleActive(t *testing.T) {
	repo := &memPredictionRepo{}
	equipment := new(MockEquipmentReader)
	equipment.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Equipment{ID: 1, Type: domain.TypeTurnstile, Uptime: 0.95}, nil)
	failures := new(MockFailureReader)
	failures.On("RecentByEquipment", mock.Anything, int64(1), recentFailureWindow).
		Return([]domain.FailureRecord{}, nil)

	svc := newPredictService(repo, equipment, failures, fixedScorer{0.3, 0.9, nil}, nil)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Predict(context.Background(), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	active, err := repo.ListActive(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Len(t, repo.rows, n)
}

func TestHeuristicScorer_UnresolvedFailureRaisesRisk(t *testing.T) {
	eq := &domain.Equipment{Type: domain.TypeTurnstile, Uptime: 0.95}

	var sc HeuristicScorer
	pClean, _, err := sc.Score(context.Background(), eq, []domain.FailureRecord{{Resolved: true}})
	require.NoError(t, err)

	pOpen, _, err := sc.Score(context.Background(), eq, []domain.FailureRecord{{Resolved: false}})
	require.NoError(t, err)

	assert.Greater(t, pOpen, pClean)
}
