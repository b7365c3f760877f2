package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
)

var referenceNow = time.Date(2024, 3, 20, 15, 30, 0, 0, time.UTC)

func daysAgo(days int) string {
	return referenceNow.AddDate(0, 0, -days).Format(time.DateOnly)
}

func TestTotalsAndAverageOrderValue(t *testing.T) {
	tests := []struct {
		name            string
		customers       []domain.Customer
		expectedRevenue float64
		expectedOrders  int
		expectedAOV     float64
	}{
		{
			name:            "Coleção vazia - todos os valores zerados",
			customers:       nil,
			expectedRevenue: 0,
			expectedOrders:  0,
			expectedAOV:     0,
		},
		{
			name: "Dois clientes com pedidos",
			customers: []domain.Customer{
				{ID: "1", TotalSpent: 1240.50, OrderCount: 24},
				{ID: "2", TotalSpent: 980.75, OrderCount: 18},
			},
			expectedRevenue: 2221.25,
			expectedOrders:  42,
			expectedAOV:     52.8869,
		},
		{
			name: "Clientes sem pedidos - ticket médio é zero",
			customers: []domain.Customer{
				{ID: "1"},
				{ID: "2"},
			},
			expectedRevenue: 0,
			expectedOrders:  0,
			expectedAOV:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expectedRevenue, TotalRevenue(tt.customers), 0.0001)
			assert.Equal(t, tt.expectedOrders, TotalOrders(tt.customers))
			assert.InDelta(t, tt.expectedAOV, AverageOrderValue(tt.customers), 0.001)
			assert.GreaterOrEqual(t, TotalRevenue(tt.customers), 0.0)
			assert.GreaterOrEqual(t, TotalOrders(tt.customers), 0)
		})
	}
}

func TestTopCustomers(t *testing.T) {
	customers := []domain.Customer{
		{ID: "a", TotalSpent: 100},
		{ID: "b", TotalSpent: 300},
		{ID: "c", TotalSpent: 100},
		{ID: "d", TotalSpent: 200},
	}

	t.Run("Ordena por total gasto e mantém ordem original nos empates", func(t *testing.T) {
		top := TopCustomers(customers, 4)

		ids := make([]string, 0, len(top))
		for _, c := range top {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
	})

	t.Run("Retorna min(n, len) clientes", func(t *testing.T) {
		assert.Len(t, TopCustomers(customers, 2), 2)
		assert.Len(t, TopCustomers(customers, 10), 4)
		assert.Empty(t, TopCustomers(customers, 0))
		assert.Empty(t, TopCustomers(customers, -1))
		assert.Empty(t, TopCustomers(nil, 3))
	})

	t.Run("Não altera a coleção recebida", func(t *testing.T) {
		_ = TopCustomers(customers, 3)
		assert.Equal(t, "a", customers[0].ID)
		assert.Equal(t, "b", customers[1].ID)
	})
}

func TestInactiveCustomers(t *testing.T) {
	tests := []struct {
		name      string
		customers []domain.Customer
		threshold int
		expected  []string
	}{
		{
			name:      "Último pedido há 20 dias com 5 pedidos - inativo",
			customers: []domain.Customer{{ID: "1", OrderCount: 5, TotalSpent: 50, LastOrder: daysAgo(20)}},
			threshold: DefaultInactivityThresholdDays,
			expected:  []string{"1"},
		},
		{
			name:      "Cliente sem pedidos nunca é inativo",
			customers: []domain.Customer{{ID: "1", OrderCount: 0, LastOrder: daysAgo(30)}},
			threshold: DefaultInactivityThresholdDays,
			expected:  []string{},
		},
		{
			name:      "Exatamente no limite ainda é ativo",
			customers: []domain.Customer{{ID: "1", OrderCount: 1, TotalSpent: 10, LastOrder: daysAgo(14)}},
			threshold: DefaultInactivityThresholdDays,
			expected:  []string{},
		},
		{
			name:      "Um dia além do limite é inativo",
			customers: []domain.Customer{{ID: "1", OrderCount: 1, TotalSpent: 10, LastOrder: daysAgo(15)}},
			threshold: DefaultInactivityThresholdDays,
			expected:  []string{"1"},
		},
		{
			name:      "Data do último pedido ausente com pedidos - inativo",
			customers: []domain.Customer{{ID: "1", OrderCount: 2, TotalSpent: 10}},
			threshold: DefaultInactivityThresholdDays,
			expected:  []string{"1"},
		},
		{
			name: "Limite customizado",
			customers: []domain.Customer{
				{ID: "1", OrderCount: 1, TotalSpent: 10, LastOrder: daysAgo(5)},
				{ID: "2", OrderCount: 1, TotalSpent: 10, LastOrder: daysAgo(2)},
			},
			threshold: 3,
			expected:  []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InactiveCustomers(tt.customers, referenceNow, tt.threshold)

			ids := make([]string, 0, len(result))
			for _, c := range result {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.expected, ids)

			again := InactiveCustomers(tt.customers, referenceNow, tt.threshold)
			assert.Equal(t, result, again)
		})
	}
}

func TestDaysSinceLastOrder(t *testing.T) {
	days, ok := DaysSinceLastOrder(domain.Customer{LastOrder: daysAgo(9)}, referenceNow)
	assert.True(t, ok)
	assert.Equal(t, 9, days)

	_, ok = DaysSinceLastOrder(domain.Customer{}, referenceNow)
	assert.False(t, ok)

	_, ok = DaysSinceLastOrder(domain.Customer{LastOrder: "20/03/2024"}, referenceNow)
	assert.False(t, ok)
}

func TestDistributionAndEngagement(t *testing.T) {
	customers := []domain.Customer{
		{ID: "1", OrderCount: 1, TotalSpent: 10, LastOrder: daysAgo(1)},
		{ID: "2", OrderCount: 1, TotalSpent: 10, LastOrder: daysAgo(40)},
		{ID: "3", OrderCount: 0},
		{ID: "4", OrderCount: 3, TotalSpent: 30, LastOrder: daysAgo(2)},
	}
	inactive := InactiveCustomers(customers, referenceNow, DefaultInactivityThresholdDays)

	dist := CustomerDistribution(customers, inactive)
	assert.Equal(t, domain.CustomerDistribution{Active: 3, Inactive: 1}, dist)
	assert.InDelta(t, 75.0, CustomerEngagementPercent(customers, inactive), 0.0001)

	assert.Equal(t, 0.0, CustomerEngagementPercent(nil, nil))
	assert.Equal(t, domain.CustomerDistribution{}, CustomerDistribution(nil, nil))
}

func TestRevenueGrowth(t *testing.T) {
	tests := []struct {
		name     string
		series   []domain.MonthlyRevenue
		expected float64
	}{
		{name: "Sem buckets", series: nil, expected: 0},
		{name: "Um único bucket", series: []domain.MonthlyRevenue{{Revenue: 100}}, expected: 0},
		{name: "Anterior e atual zerados", series: []domain.MonthlyRevenue{{Revenue: 0}, {Revenue: 0}}, expected: 0},
		{name: "Anterior zerado com receita atual", series: []domain.MonthlyRevenue{{Revenue: 0}, {Revenue: 100}}, expected: 100},
		{name: "Crescimento", series: []domain.MonthlyRevenue{{Revenue: 50}, {Revenue: 200}, {Revenue: 250}}, expected: 25},
		{name: "Queda", series: []domain.MonthlyRevenue{{Revenue: 200}, {Revenue: 100}}, expected: -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RevenueGrowth(tt.series), 0.0001)
		})
	}
}

func TestRecentCustomers(t *testing.T) {
	customers := []domain.Customer{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}

	recent := RecentCustomers(customers, 3)
	require.Len(t, recent, 3)
	assert.Equal(t, "4", recent[0].ID)
	assert.Equal(t, "3", recent[1].ID)
	assert.Equal(t, "2", recent[2].ID)

	assert.Len(t, RecentCustomers(customers[:2], 3), 2)
	assert.Empty(t, RecentCustomers(customers, 0))
}

func TestDailySalesSeries(t *testing.T) {
	t.Run("Sem vendas - 7 buckets zerados terminando hoje", func(t *testing.T) {
		series := DailySalesSeries(nil, referenceNow, DefaultDailySeriesDays)

		require.Len(t, series, 7)
		assert.Equal(t, "2024-03-14", series[0].Date)
		assert.Equal(t, "2024-03-20", series[6].Date)
		for _, b := range series {
			assert.Equal(t, 0.0, b.Sales)
			assert.Equal(t, 0, b.Orders)
		}
	})

	t.Run("Soma vendas por dia e ignora datas fora da janela", func(t *testing.T) {
		records := []domain.SalesRecord{
			{Date: "2024-03-20", Amount: 30, CustomerPhone: "11999999999"},
			{Date: "2024-03-20", Amount: 20, CustomerPhone: "11999999998"},
			{Date: "2024-03-15", Amount: 12.5, CustomerPhone: "11999999999"},
			{Date: "2024-03-01", Amount: 1000, CustomerPhone: "11999999999"},
		}

		series := DailySalesSeries(records, referenceNow, 7)

		assert.Equal(t, 50.0, series[6].Sales)
		assert.Equal(t, 2, series[6].Orders)
		assert.Equal(t, 12.5, series[1].Sales)
		assert.Equal(t, 1, series[1].Orders)
	})
}

func TestWeeklySalesSeries(t *testing.T) {
	records := []domain.SalesRecord{
		{Date: "2024-03-20", Amount: 10},
		{Date: "2024-03-14", Amount: 20},
		{Date: "2024-03-13", Amount: 5},
		{Date: "2024-02-22", Amount: 7},
		{Date: "2024-02-21", Amount: 1000},
	}

	series := WeeklySalesSeries(records, referenceNow, DefaultWeeklySeriesWeeks)

	require.Len(t, series, 4)
	assert.Equal(t, "2024-02-22", series[0].WeekStart)
	assert.Equal(t, "2024-03-14", series[3].WeekStart)
	assert.Equal(t, 7.0, series[0].Sales)
	assert.Equal(t, 5.0, series[2].Sales)
	assert.Equal(t, 30.0, series[3].Sales)
	assert.Equal(t, 2, series[3].Orders)
}

func TestMonthlyRevenueSeries(t *testing.T) {
	t.Run("Venda única no mês corrente", func(t *testing.T) {
		records := []domain.SalesRecord{{Date: "2024-03-02", Amount: 500, CustomerPhone: "11999999999"}}

		series := MonthlyRevenueSeries(records, referenceNow, DefaultMonthlySeriesMonths)

		require.Len(t, series, 6)
		assert.Equal(t, "10-2023", series[0].Period)
		assert.Equal(t, "03-2024", series[5].Period)
		assert.Equal(t, 500.0, series[5].Revenue)
		for _, b := range series[:5] {
			assert.Equal(t, 0.0, b.Revenue)
		}
	})

	t.Run("Virada de ano e registros com data inválida", func(t *testing.T) {
		records := []domain.SalesRecord{
			{Date: "2023-12-31", Amount: 40},
			{Date: "2024-01-01", Amount: 60},
			{Date: "invalid", Amount: 99},
		}

		series := MonthlyRevenueSeries(records, referenceNow, 6)

		assert.Equal(t, "12-2023", series[2].Period)
		assert.Equal(t, 40.0, series[2].Revenue)
		assert.Equal(t, 60.0, series[3].Revenue)
		assert.InDelta(t, -100.0, RevenueGrowth(series[2:5]), 0.0001)
	})
}

func TestSummarizeSeries(t *testing.T) {
	summary := SummarizeSeries([]domain.SalesBucket{
		{Label: "a", Revenue: 100, Orders: 2},
		{Label: "b", Revenue: 50, Orders: 1},
	})
	assert.Equal(t, 3, summary.Orders)
	assert.Equal(t, 150.0, summary.Revenue)
	assert.InDelta(t, 50.0, summary.AverageOrderValue, 0.0001)

	assert.Equal(t, domain.SalesSummary{}, SummarizeSeries(nil))
}
