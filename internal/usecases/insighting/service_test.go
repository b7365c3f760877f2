package insighting

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
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mocks.MockSnapshotStore) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSnapshotStore(ctrl)

	service := NewService(store, config.Metrics{TopCustomers: 2})
	service.clock = func() time.Time { return fixedNow }

	return service, store
}

func dashboardCustomers() []domain.Customer {
	return []domain.Customer{
		{ID: "c1", Name: "John Smith", Phone: "11987654321", OrderCount: 24, TotalSpent: 1240.50, LastOrder: "2024-03-18"},
		{ID: "c2", Name: "Sarah Johnson", Phone: "11911112222", OrderCount: 18, TotalSpent: 980.75, LastOrder: "2024-02-29"},
		{ID: "c3", Name: "Mike Wilson", Phone: "21955554444", OrderCount: 0, LastOrder: "2024-01-01"},
		{ID: "c4", Name: "Emma Davis", Phone: "31977778888", OrderCount: 3, TotalSpent: 90, LastOrder: "2024-03-05"},
	}
}

func dashboardSales() []domain.SalesRecord {
	return []domain.SalesRecord{
		{Date: "2024-02-10", Amount: 200, CustomerPhone: "11987654321"},
		{Date: "2024-03-18", Amount: 250, CustomerPhone: "11987654321"},
		{Date: "2024-03-20", Amount: 50.56, CustomerPhone: "31977778888"},
	}
}

func TestService_GetOverview(t *testing.T) {
	service, store := newTestService(t)
	store.EXPECT().LoadCustomers(gomock.Any()).Return(dashboardCustomers(), nil)

	overview, err := service.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, overview.TotalCustomers)
	assert.Equal(t, 45, overview.TotalOrders)
	assert.Equal(t, 2311.25, overview.TotalRevenue)
	assert.Equal(t, 51.36, overview.AverageOrderValue)
	assert.Equal(t, 2, overview.InactiveCustomers)
	assert.Equal(t, domain.CustomerDistribution{Active: 2, Inactive: 2}, overview.CustomerDistribution)
	assert.Equal(t, 50.0, overview.EngagementPercent)
	require.Len(t, overview.RecentCustomers, 3)
	assert.Equal(t, "c4", overview.RecentCustomers[0].ID)
	assert.Equal(t, fixedNow, overview.GeneratedAt)
}

func TestService_GetOverview_Empty(t *testing.T) {
	service, store := newTestService(t)
	store.EXPECT().LoadCustomers(gomock.Any()).Return([]domain.Customer{}, nil)

	overview, err := service.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, overview.TotalCustomers)
	assert.Equal(t, 0.0, overview.AverageOrderValue)
	assert.Equal(t, 0.0, overview.EngagementPercent)
	assert.Empty(t, overview.RecentCustomers)
}

func TestService_GetCachedOverview(t *testing.T) {
	service, store := newTestService(t)

	// carrega uma vez no primeiro acesso e outra no refresh forçado
	store.EXPECT().LoadCustomers(gomock.Any()).Return(dashboardCustomers(), nil).Times(2)

	first, err := service.GetCachedOverview(context.Background(), false)
	require.NoError(t, err)

	second, err := service.GetCachedOverview(context.Background(), false)
	require.NoError(t, err)
	assert.Same(t, first, second)

	refreshed, err := service.GetCachedOverview(context.Background(), true)
	require.NoError(t, err)
	assert.NotSame(t, first, refreshed)
}

func TestService_InvalidateOverview(t *testing.T) {
	service, store := newTestService(t)

	updated := append(dashboardCustomers(), domain.Customer{ID: "c5", Phone: "41900001111", OrderCount: 1, TotalSpent: 30, LastOrder: "2024-03-20"})
	gomock.InOrder(
		store.EXPECT().LoadCustomers(gomock.Any()).Return(dashboardCustomers(), nil),
		store.EXPECT().LoadCustomers(gomock.Any()).Return(updated, nil),
	)

	first, err := service.GetCachedOverview(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 4, first.TotalCustomers)

	service.InvalidateOverview()

	second, err := service.GetCachedOverview(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 5, second.TotalCustomers)
	assert.Equal(t, 46, second.TotalOrders)
}

func TestService_GetCachedOverview_ErrorKeepsPreviousValue(t *testing.T) {
	service, store := newTestService(t)

	gomock.InOrder(
		store.EXPECT().LoadCustomers(gomock.Any()).Return(dashboardCustomers(), nil),
		store.EXPECT().LoadCustomers(gomock.Any()).Return(nil, errors.New("redis fora do ar")),
	)

	first, err := service.RefreshOverview(context.Background())
	require.NoError(t, err)

	_, err = service.RefreshOverview(context.Background())
	assert.ErrorIs(t, err, ErrLoadSnapshot)

	cached, err := service.GetCachedOverview(context.Background(), false)
	require.NoError(t, err)
	assert.Same(t, first, cached)
}

func TestService_GetAnalytics(t *testing.T) {
	service, store := newTestService(t)
	store.EXPECT().LoadCustomers(gomock.Any()).Return(dashboardCustomers(), nil)
	store.EXPECT().LoadSalesRecords(gomock.Any()).Return(dashboardSales(), nil)

	report, err := service.GetAnalytics(context.Background())
	require.NoError(t, err)

	require.Len(t, report.TopCustomers, 2)
	assert.Equal(t, "c1", report.TopCustomers[0].ID)
	assert.Equal(t, "c2", report.TopCustomers[1].ID)

	require.Len(t, report.InactiveCustomers, 2)
	assert.Equal(t, "c2", report.InactiveCustomers[0].ID)
	require.NotNil(t, report.InactiveCustomers[0].DaysSinceLastOrder)
	assert.Equal(t, 20, *report.InactiveCustomers[0].DaysSinceLastOrder)
	assert.Equal(t, 15, *report.InactiveCustomers[1].DaysSinceLastOrder)

	require.Len(t, report.MonthlyRevenue, 6)
	assert.Equal(t, "02-2024", report.MonthlyRevenue[4].Period)
	assert.Equal(t, 200.0, report.MonthlyRevenue[4].Revenue)
	assert.Equal(t, 300.56, report.MonthlyRevenue[5].Revenue)
	assert.Equal(t, 50.28, report.RevenueGrowthPercent)

	require.Len(t, report.DailySales, 7)
	assert.Equal(t, 50.56, report.DailySales[6].Sales)
	assert.Equal(t, 250.0, report.DailySales[4].Sales)
}

func TestService_GetAnalytics_SalesLoadError(t *testing.T) {
	service, store := newTestService(t)
	store.EXPECT().LoadCustomers(gomock.Any()).Return(dashboardCustomers(), nil)
	store.EXPECT().LoadSalesRecords(gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := service.GetAnalytics(context.Background())
	assert.ErrorIs(t, err, ErrLoadSnapshot)
}

func TestService_GetSalesReport(t *testing.T) {
	tests := []struct {
		name          string
		filter        domain.SalesFilter
		expectedLen   int
		expectedLast  string
		expectedTotal float64
		expectedOrder int
	}{
		{name: "Diário", filter: domain.SalesFilterDaily, expectedLen: 7, expectedLast: "2024-03-20", expectedTotal: 300.56, expectedOrder: 2},
		{name: "Semanal", filter: domain.SalesFilterWeekly, expectedLen: 4, expectedLast: "2024-03-14", expectedTotal: 300.56, expectedOrder: 2},
		{name: "Mensal", filter: domain.SalesFilterMonthly, expectedLen: 6, expectedLast: "03-2024", expectedTotal: 500.56, expectedOrder: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestService(t)
			store.EXPECT().LoadSalesRecords(gomock.Any()).Return(dashboardSales(), nil)

			report, err := service.GetSalesReport(context.Background(), tt.filter)
			require.NoError(t, err)

			assert.Equal(t, tt.filter, report.Filter)
			require.Len(t, report.Buckets, tt.expectedLen)
			assert.Equal(t, tt.expectedLast, report.Buckets[tt.expectedLen-1].Label)
			assert.Equal(t, tt.expectedTotal, report.Summary.Revenue)
			assert.Equal(t, tt.expectedOrder, report.Summary.Orders)
		})
	}
}

func TestService_GetSalesReport_InvalidFilter(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.GetSalesReport(context.Background(), domain.SalesFilter("yearly"))
	assert.ErrorIs(t, err, ErrInvalidSalesFilter)
}

func TestService_GetInactiveCustomers(t *testing.T) {
	t.Run("Limite padrão", func(t *testing.T) {
		service, store := newTestService(t)
		store.EXPECT().LoadCustomers(gomock.Any()).Return(dashboardCustomers(), nil)

		inactive, err := service.GetInactiveCustomers(context.Background(), 0)
		require.NoError(t, err)
		assert.Len(t, inactive, 2)
	})

	t.Run("Limite informado", func(t *testing.T) {
		service, store := newTestService(t)
		store.EXPECT().LoadCustomers(gomock.Any()).Return(dashboardCustomers(), nil)

		inactive, err := service.GetInactiveCustomers(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, inactive, 3)
	})

	t.Run("Cliente com pedidos sem data do último pedido", func(t *testing.T) {
		service, store := newTestService(t)
		store.EXPECT().LoadCustomers(gomock.Any()).Return([]domain.Customer{
			{ID: "x", Phone: "11987654321", OrderCount: 1, TotalSpent: 5},
		}, nil)

		inactive, err := service.GetInactiveCustomers(context.Background(), 14)
		require.NoError(t, err)
		require.Len(t, inactive, 1)
		assert.Nil(t, inactive[0].DaysSinceLastOrder)
	})
}
