package metrics

import (
	"time"

	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/utils"
)

// DailySalesSeries gera `days` buckets terminando no dia de now, do mais antigo
// para o mais recente. A comparação de datas é por igualdade exata da string.
func DailySalesSeries(records []domain.SalesRecord, now time.Time, days int) []domain.DailySales {
	if days <= 0 {
		return []domain.DailySales{}
	}

	series := make([]domain.DailySales, days)
	index := make(map[string]int, days)

	for i := 0; i < days; i++ {
		date := utils.FormatDate(now.AddDate(0, 0, -(days - 1 - i)))
		series[i] = domain.DailySales{Date: date}
		index[date] = i
	}

	for _, r := range records {
		if i, ok := index[r.Date]; ok {
			series[i].Sales += r.Amount
			series[i].Orders++
		}
	}

	return series
}

// WeeklySalesSeries gera `weeks` janelas de 7 dias terminando em now
func WeeklySalesSeries(records []domain.SalesRecord, now time.Time, weeks int) []domain.WeeklySales {
	if weeks <= 0 {
		return []domain.WeeklySales{}
	}

	today := utils.StartOfDay(now)
	first := today.AddDate(0, 0, -(weeks*7 - 1))

	series := make([]domain.WeeklySales, weeks)
	for i := range series {
		series[i] = domain.WeeklySales{WeekStart: utils.FormatDate(first.AddDate(0, 0, i*7))}
	}

	for _, r := range records {
		date, err := time.ParseInLocation(time.DateOnly, r.Date, now.Location())
		if err != nil {
			continue
		}

		offset := utils.DaysBetween(first, date)
		if offset < 0 || offset >= weeks*7 {
			continue
		}

		series[offset/7].Sales += r.Amount
		series[offset/7].Orders++
	}

	return series
}

// MonthlyRevenueSeries gera `months` buckets mensais terminando no mês de now
func MonthlyRevenueSeries(records []domain.SalesRecord, now time.Time, months int) []domain.MonthlyRevenue {
	if months <= 0 {
		return []domain.MonthlyRevenue{}
	}

	currentMonth := utils.FirstDayOfMonth(now)
	series := make([]domain.MonthlyRevenue, months)
	index := make(map[string]int, months)

	for i := 0; i < months; i++ {
		period := utils.MonthPeriod(currentMonth.AddDate(0, -(months - 1 - i), 0))
		series[i] = domain.MonthlyRevenue{Period: period}
		index[period] = i
	}

	for _, r := range records {
		date, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			continue
		}

		if i, ok := index[utils.MonthPeriod(date)]; ok {
			series[i].Revenue += r.Amount
			series[i].Orders++
		}
	}

	return series
}

// SummarizeSeries soma pedidos e receita de uma série; ticket médio 0 sem pedidos
func SummarizeSeries(buckets []domain.SalesBucket) domain.SalesSummary {
	summary := domain.SalesSummary{}

	for _, b := range buckets {
		summary.Orders += b.Orders
		summary.Revenue += b.Revenue
	}

	if summary.Orders > 0 {
		summary.AverageOrderValue = summary.Revenue / float64(summary.Orders)
	}

	return summary
}
