// Package metrics calcula as métricas derivadas do painel a partir de snapshots
// de clientes e vendas. Todas as funções são puras: não fazem I/O, não alteram
// as coleções recebidas e recebem o "agora" como parâmetro.
package metrics

import (
	"sort"
	"time"

	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/utils"
)

const (
	DefaultInactivityThresholdDays = 14
	DefaultDailySeriesDays         = 7
	DefaultWeeklySeriesWeeks       = 4
	DefaultMonthlySeriesMonths     = 6
)

func TotalRevenue(customers []domain.Customer) float64 {
	total := 0.0
	for _, c := range customers {
		total += c.TotalSpent
	}
	return total
}

func TotalOrders(customers []domain.Customer) int {
	total := 0
	for _, c := range customers {
		total += c.OrderCount
	}
	return total
}

// AverageOrderValue retorna 0 quando não há pedidos
func AverageOrderValue(customers []domain.Customer) float64 {
	orders := TotalOrders(customers)
	if orders == 0 {
		return 0
	}
	return TotalRevenue(customers) / float64(orders)
}

// TopCustomers ordena por total gasto (desc) mantendo a ordem original nos empates
func TopCustomers(customers []domain.Customer, n int) []domain.Customer {
	if n <= 0 || len(customers) == 0 {
		return []domain.Customer{}
	}

	sorted := make([]domain.Customer, len(customers))
	copy(sorted, customers)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalSpent > sorted[j].TotalSpent
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// DaysSinceLastOrder retorna os dias de calendário desde o último pedido.
// O segundo retorno é falso quando a data não existe ou não pode ser lida.
func DaysSinceLastOrder(customer domain.Customer, now time.Time) (int, bool) {
	if customer.LastOrder == "" {
		return 0, false
	}

	lastOrder, err := time.ParseInLocation(time.DateOnly, customer.LastOrder, now.Location())
	if err != nil {
		return 0, false
	}

	return utils.DaysBetween(lastOrder, now), true
}

// InactiveCustomers retorna os clientes com ao menos um pedido cujo último
// pedido é estritamente anterior a thresholdDays dias antes de now, ou cuja
// data do último pedido está ausente. Clientes sem pedidos nunca são inativos.
func InactiveCustomers(customers []domain.Customer, now time.Time, thresholdDays int) []domain.Customer {
	inactive := make([]domain.Customer, 0)

	for _, c := range customers {
		if c.OrderCount == 0 {
			continue
		}

		days, ok := DaysSinceLastOrder(c, now)
		if !ok || days > thresholdDays {
			inactive = append(inactive, c)
		}
	}

	return inactive
}

func CustomerDistribution(customers, inactive []domain.Customer) domain.CustomerDistribution {
	return domain.CustomerDistribution{
		Active:   len(customers) - len(inactive),
		Inactive: len(inactive),
	}
}

// CustomerEngagementPercent é a fatia de clientes ativos; 0 sem clientes
func CustomerEngagementPercent(customers, inactive []domain.Customer) float64 {
	total := len(customers)
	if total == 0 {
		return 0
	}

	active := total - len(inactive)
	return float64(active) / float64(total) * 100
}

// RevenueGrowth compara o último bucket com o penúltimo.
// Com penúltimo zerado retorna 100 se houve receita e 0 caso contrário.
func RevenueGrowth(series []domain.MonthlyRevenue) float64 {
	if len(series) < 2 {
		return 0
	}

	prev := series[len(series)-2].Revenue
	curr := series[len(series)-1].Revenue

	if prev == 0 {
		if curr > 0 {
			return 100
		}
		return 0
	}

	return (curr - prev) / prev * 100
}

// RecentCustomers retorna os n últimos clientes da coleção, do mais novo para o mais antigo
func RecentCustomers(customers []domain.Customer, n int) []domain.Customer {
	if n <= 0 {
		return []domain.Customer{}
	}
	if n > len(customers) {
		n = len(customers)
	}

	recent := make([]domain.Customer, 0, n)
	for i := len(customers) - 1; i >= len(customers)-n; i-- {
		recent = append(recent, customers[i])
	}
	return recent
}
