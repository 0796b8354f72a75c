package metrics

import (
	"context"
	"testing"
	"time"

	"conectasonda/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEquipmentCounter struct {
	mock.Mock
}

func (m *MockEquipmentCounter) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEquipmentCounter) CountByType(ctx context.Context) (map[domain.EquipmentType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.EquipmentType]int64), args.Error(1)
}

func (m *MockEquipmentCounter) CountByStatus(ctx context.Context) (map[domain.EquipmentStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.EquipmentStatus]int64), args.Error(1)
}

type MockPredictionCounter struct {
	mock.Mock
}

func (m *MockPredictionCounter) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPredictionCounter) CountActiveAtRisk(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockMaintenanceCounter struct {
	mock.Mock
}

func (m *MockMaintenanceCounter) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newCounters(total, atRisk, active, open int64) (*MockEquipmentCounter, *MockPredictionCounter, *MockMaintenanceCounter) {
	equipment := new(MockEquipmentCounter)
	equipment.On("Count", mock.Anything).Return(total, nil)
	equipment.On("CountByType", mock.Anything).
		Return(map[domain.EquipmentType]int64{domain.TypeTurnstile: 5, domain.TypePaymentTerminal: 3}, nil)
	equipment.On("CountByStatus", mock.Anything).
		Return(map[domain.EquipmentStatus]int64{domain.StatusOperational: 6, domain.StatusFailed: 1, domain.StatusUnderMaintenance: 1}, nil)

	predictions := new(MockPredictionCounter)
	predictions.On("CountActiveAtRisk", mock.Anything).Return(atRisk, nil)
	predictions.On("CountActive", mock.Anything).Return(active, nil)

	maintenance := new(MockMaintenanceCounter)
	maintenance.On("CountOpen", mock.Anything).Return(open, nil)

	return equipment, predictions, maintenance
}

func TestService_Snapshot(t *testing.T) {
	equipment, predictions, maintenance := newCounters(8, 2, 4, 1)

	svc := NewService(equipment, predictions, maintenance, 0.945, "2.3h")

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), snap.TotalEquipments)
	assert.Equal(t, int64(2), snap.ActiveAlerts)
	assert.Equal(t, int64(4), snap.PredictedFailures)
	assert.Equal(t, int64(1), snap.MaintenanceScheduled)
	assert.Equal(t, 0.945, snap.SystemAccuracy)
	assert.Equal(t, "2.3h", snap.AvgResponseTime)

	// Alerts count only high and critical, so they never exceed the total
	// of active predictions.
	assert.LessOrEqual(t, snap.ActiveAlerts, snap.PredictedFailures)

	var byStatus int64
	for _, n := range snap.StatusSummary {
		byStatus += n
	}
	assert.Equal(t, snap.TotalEquipments, byStatus)
}

func TestService_Report(t *testing.T) {
	equipment, predictions, maintenance := newCounters(8, 0, 0, 0)

	fixed := time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)
	svc := NewService(equipment, predictions, maintenance, 0.945, "2.3h")
	svc.now = func() time.Time { return fixed }

	t.Run("defaults report type", func(t *testing.T) {
		rep, err := svc.Report(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "general", rep.ReportType)
		assert.Equal(t, fixed, rep.GeneratedAt)
		assert.Equal(t, int64(8), rep.Snapshot.TotalEquipments)
	})

	t.Run("keeps explicit report type", func(t *testing.T) {
		rep, err := svc.Report(context.Background(), "weekly")
		require.NoError(t, err)
		assert.Equal(t, "weekly", rep.ReportType)
	})
}
