package insighting

import (
	"context"

	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
)

// Insighter expõe as visões derivadas do painel
type Insighter interface {
	// GetOverview calcula os indicadores do painel a partir do snapshot atual
	GetOverview(ctx context.Context) (*domain.DashboardOverview, error)

	// GetCachedOverview retorna o último painel calculado, recalculando quando não existe ou forceRefresh é verdadeiro
	GetCachedOverview(ctx context.Context, forceRefresh bool) (*domain.DashboardOverview, error)

	// RefreshOverview recalcula e guarda o painel
	RefreshOverview(ctx context.Context) (*domain.DashboardOverview, error)

	// InvalidateOverview descarta o painel guardado após uma escrita
	InvalidateOverview()

	GetAnalytics(ctx context.Context) (*domain.AnalyticsReport, error)

	// GetSalesReport agrupa as vendas por dia, semana ou mês
	GetSalesReport(ctx context.Context, filter domain.SalesFilter) (*domain.SalesReport, error)

	// GetInactiveCustomers usa o limite configurado quando thresholdDays <= 0
	GetInactiveCustomers(ctx context.Context, thresholdDays int) ([]domain.InactiveCustomer, error)
}
