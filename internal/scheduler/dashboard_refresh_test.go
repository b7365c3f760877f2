package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/config"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/insighting"
	"go.uber.org/mock/gomock"
)

func newTestRefreshService(t *testing.T, enabled bool) (*DashboardRefreshService, *mocks.MockSnapshotStore) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSnapshotStore(ctrl)

	insighter := insighting.NewService(store, config.Metrics{})
	cfg := &config.Config{
		DashboardRefresh: config.DashboardRefresh{CronSchedule: "*/5 * * * *", Enabled: enabled},
	}

	return NewDashboardRefreshService(insighter, cfg), store
}

func TestDashboardRefreshService_RefreshDashboard(t *testing.T) {
	service, store := newTestRefreshService(t, true)

	lastOrder := time.Now().AddDate(0, 0, -30).Format(time.DateOnly)
	store.EXPECT().LoadCustomers(gomock.Any()).Return([]domain.Customer{
		{ID: "c1", Phone: "11987654321", OrderCount: 2, TotalSpent: 20, LastOrder: lastOrder},
		{ID: "c2", Phone: "11911112222"},
	}, nil)

	service.RefreshDashboard(context.Background())

	status := service.GetStatus()
	assert.Equal(t, 2, status["last_customer_count"])
	assert.Equal(t, 1, status["last_inactive_count"])
	assert.Equal(t, 1, status["completed_runs"])
	assert.Equal(t, "", status["last_error"])
	assert.Equal(t, false, status["sync_running"])
}

func TestDashboardRefreshService_RefreshDashboardError(t *testing.T) {
	service, store := newTestRefreshService(t, true)
	store.EXPECT().LoadCustomers(gomock.Any()).Return(nil, errors.New("conexão recusada"))

	service.RefreshDashboard(context.Background())

	status := service.GetStatus()
	assert.Contains(t, status["last_error"], "conexão recusada")
	assert.Equal(t, 0, status["completed_runs"])
}

func TestDashboardRefreshService_SkipsOverlappingRuns(t *testing.T) {
	service, _ := newTestRefreshService(t, true)

	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	// nenhuma chamada ao store é esperada
	service.RefreshDashboard(context.Background())
	service.TriggerManualSync()

	assert.Equal(t, 0, service.GetStatus()["completed_runs"])
}

func TestDashboardRefreshService_TriggerManualSync(t *testing.T) {
	service, store := newTestRefreshService(t, true)
	store.EXPECT().LoadCustomers(gomock.Any()).Return([]domain.Customer{}, nil)

	service.TriggerManualSync()

	require.Eventually(t, func() bool {
		return service.GetStatus()["completed_runs"] == 1
	}, time.Second, 10*time.Millisecond)
}

func TestDashboardRefreshService_StartDisabled(t *testing.T) {
	service, _ := newTestRefreshService(t, false)

	require.NoError(t, service.Start(context.Background()))
	assert.False(t, service.scheduler.IsRunning())
}

func TestDashboardRefreshService_StartInvalidCron(t *testing.T) {
	service, _ := newTestRefreshService(t, true)
	service.config.CronSchedule = "isso não é cron"

	assert.Error(t, service.Start(context.Background()))
}
