package insighting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/config"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/metrics"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/utils"
)

type snapshot struct {
	customers []domain.Customer
	records   []domain.SalesRecord
}

// Service implementa Insighter sobre um SnapshotStore
type Service struct {
	store repository.SnapshotStore
	cfg   config.Metrics
	clock func() time.Time

	cacheMu  sync.RWMutex
	overview *domain.DashboardOverview
}

// NewService cria uma nova instância do serviço de insights
func NewService(store repository.SnapshotStore, cfg config.Metrics) *Service {
	return &Service{
		store: store,
		cfg:   withDefaults(cfg),
		clock: time.Now,
	}
}

func withDefaults(cfg config.Metrics) config.Metrics {
	if cfg.InactivityThresholdDays <= 0 {
		cfg.InactivityThresholdDays = metrics.DefaultInactivityThresholdDays
	}
	if cfg.TopCustomers <= 0 {
		cfg.TopCustomers = 5
	}
	if cfg.RecentCustomers <= 0 {
		cfg.RecentCustomers = 3
	}
	if cfg.DailySeriesDays <= 0 {
		cfg.DailySeriesDays = metrics.DefaultDailySeriesDays
	}
	if cfg.WeeklySeriesWeeks <= 0 {
		cfg.WeeklySeriesWeeks = metrics.DefaultWeeklySeriesWeeks
	}
	if cfg.MonthlySeriesMonths <= 0 {
		cfg.MonthlySeriesMonths = metrics.DefaultMonthlySeriesMonths
	}
	return cfg
}

// loadSnapshot busca clientes e vendas em paralelo
func (s *Service) loadSnapshot(ctx context.Context, withSales bool) (*snapshot, error) {
	var (
		snap        snapshot
		customerErr error
		salesErr    error
	)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		snap.customers, customerErr = s.store.LoadCustomers(ctx)
	}()

	if withSales {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap.records, salesErr = s.store.LoadSalesRecords(ctx)
		}()
	}

	wg.Wait()

	if customerErr != nil {
		logrus.WithError(customerErr).Error("Erro ao carregar clientes")
		return nil, fmt.Errorf("%w: %v", ErrLoadSnapshot, customerErr)
	}
	if salesErr != nil {
		logrus.WithError(salesErr).Error("Erro ao carregar vendas")
		return nil, fmt.Errorf("%w: %v", ErrLoadSnapshot, salesErr)
	}

	return &snap, nil
}

func (s *Service) GetOverview(ctx context.Context) (*domain.DashboardOverview, error) {
	snap, err := s.loadSnapshot(ctx, false)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	customers := snap.customers
	inactive := metrics.InactiveCustomers(customers, now, s.cfg.InactivityThresholdDays)

	return &domain.DashboardOverview{
		TotalCustomers:       len(customers),
		TotalOrders:          metrics.TotalOrders(customers),
		TotalRevenue:         utils.RoundWithTwoDecimalPlace(metrics.TotalRevenue(customers)),
		AverageOrderValue:    utils.RoundWithTwoDecimalPlace(metrics.AverageOrderValue(customers)),
		InactiveCustomers:    len(inactive),
		CustomerDistribution: metrics.CustomerDistribution(customers, inactive),
		EngagementPercent:    utils.RoundWithTwoDecimalPlace(metrics.CustomerEngagementPercent(customers, inactive)),
		RecentCustomers:      metrics.RecentCustomers(customers, s.cfg.RecentCustomers),
		GeneratedAt:          now,
	}, nil
}

func (s *Service) GetCachedOverview(ctx context.Context, forceRefresh bool) (*domain.DashboardOverview, error) {
	if !forceRefresh {
		s.cacheMu.RLock()
		cached := s.overview
		s.cacheMu.RUnlock()

		if cached != nil {
			return cached, nil
		}
	}

	return s.RefreshOverview(ctx)
}

// InvalidateOverview descarta o painel guardado; a próxima leitura recalcula
func (s *Service) InvalidateOverview() {
	s.cacheMu.Lock()
	s.overview = nil
	s.cacheMu.Unlock()
}

func (s *Service) RefreshOverview(ctx context.Context) (*domain.DashboardOverview, error) {
	overview, err := s.GetOverview(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	s.overview = overview
	s.cacheMu.Unlock()

	logrus.WithFields(logrus.Fields{
		"total_customers":    overview.TotalCustomers,
		"inactive_customers": overview.InactiveCustomers,
	}).Debug("Painel recalculado")

	return overview, nil
}

func (s *Service) GetAnalytics(ctx context.Context) (*domain.AnalyticsReport, error) {
	snap, err := s.loadSnapshot(ctx, true)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	customers := snap.customers
	inactive := metrics.InactiveCustomers(customers, now, s.cfg.InactivityThresholdDays)
	monthly := metrics.MonthlyRevenueSeries(snap.records, now, s.cfg.MonthlySeriesMonths)
	growth := metrics.RevenueGrowth(monthly)

	report := &domain.AnalyticsReport{
		TopCustomers:         metrics.TopCustomers(customers, s.cfg.TopCustomers),
		InactiveCustomers:    withDaysSinceLastOrder(inactive, now),
		CustomerDistribution: metrics.CustomerDistribution(customers, inactive),
		EngagementPercent:    utils.RoundWithTwoDecimalPlace(metrics.CustomerEngagementPercent(customers, inactive)),
		AverageOrderValue:    utils.RoundWithTwoDecimalPlace(metrics.AverageOrderValue(customers)),
		RevenueGrowthPercent: utils.RoundWithTwoDecimalPlace(growth),
		MonthlyRevenue:       roundMonthly(monthly),
		DailySales:           roundDaily(metrics.DailySalesSeries(snap.records, now, s.cfg.DailySeriesDays)),
		GeneratedAt:          now,
	}

	return report, nil
}

func (s *Service) GetSalesReport(ctx context.Context, filter domain.SalesFilter) (*domain.SalesReport, error) {
	switch filter {
	case domain.SalesFilterDaily, domain.SalesFilterWeekly, domain.SalesFilterMonthly:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSalesFilter, filter)
	}

	records, err := s.store.LoadSalesRecords(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar vendas")
		return nil, fmt.Errorf("%w: %v", ErrLoadSnapshot, err)
	}

	now := s.clock()
	var buckets []domain.SalesBucket

	switch filter {
	case domain.SalesFilterDaily:
		for _, d := range metrics.DailySalesSeries(records, now, s.cfg.DailySeriesDays) {
			buckets = append(buckets, domain.SalesBucket{Label: d.Date, Revenue: d.Sales, Orders: d.Orders})
		}
	case domain.SalesFilterWeekly:
		for _, w := range metrics.WeeklySalesSeries(records, now, s.cfg.WeeklySeriesWeeks) {
			buckets = append(buckets, domain.SalesBucket{Label: w.WeekStart, Revenue: w.Sales, Orders: w.Orders})
		}
	case domain.SalesFilterMonthly:
		for _, m := range metrics.MonthlyRevenueSeries(records, now, s.cfg.MonthlySeriesMonths) {
			buckets = append(buckets, domain.SalesBucket{Label: m.Period, Revenue: m.Revenue, Orders: m.Orders})
		}
	}

	summary := metrics.SummarizeSeries(buckets)
	summary.Revenue = utils.RoundWithTwoDecimalPlace(summary.Revenue)
	summary.AverageOrderValue = utils.RoundWithTwoDecimalPlace(summary.AverageOrderValue)

	for i := range buckets {
		buckets[i].Revenue = utils.RoundWithTwoDecimalPlace(buckets[i].Revenue)
	}

	return &domain.SalesReport{
		Filter:  filter,
		Buckets: buckets,
		Summary: summary,
	}, nil
}

func (s *Service) GetInactiveCustomers(ctx context.Context, thresholdDays int) ([]domain.InactiveCustomer, error) {
	if thresholdDays <= 0 {
		thresholdDays = s.cfg.InactivityThresholdDays
	}

	snap, err := s.loadSnapshot(ctx, false)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	inactive := metrics.InactiveCustomers(snap.customers, now, thresholdDays)

	return withDaysSinceLastOrder(inactive, now), nil
}

func withDaysSinceLastOrder(customers []domain.Customer, now time.Time) []domain.InactiveCustomer {
	result := make([]domain.InactiveCustomer, 0, len(customers))
	for _, c := range customers {
		item := domain.InactiveCustomer{Customer: c}
		if days, ok := metrics.DaysSinceLastOrder(c, now); ok {
			item.DaysSinceLastOrder = &days
		}
		result = append(result, item)
	}
	return result
}

func roundMonthly(series []domain.MonthlyRevenue) []domain.MonthlyRevenue {
	for i := range series {
		series[i].Revenue = utils.RoundWithTwoDecimalPlace(series[i].Revenue)
	}
	return series
}

func roundDaily(series []domain.DailySales) []domain.DailySales {
	for i := range series {
		series[i].Sales = utils.RoundWithTwoDecimalPlace(series[i].Sales)
	}
	return series
}
