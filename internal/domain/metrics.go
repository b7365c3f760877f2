package domain

import "time"

// SalesFilter define o agrupamento do relatório de vendas
type SalesFilter string

const (
	SalesFilterDaily   SalesFilter = "daily"
	SalesFilterWeekly  SalesFilter = "weekly"
	SalesFilterMonthly SalesFilter = "monthly"
)

// DailySales é o bucket diário da série de vendas
type DailySales struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// WeeklySales é um bucket de 7 dias identificado pelo primeiro dia da semana
type WeeklySales struct {
	WeekStart string  `json:"week_start"`
	Sales     float64 `json:"sales"`
	Orders    int     `json:"orders"`
}

// MonthlyRevenue é o bucket mensal; Period no formato mm-yyyy
type MonthlyRevenue struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type CustomerDistribution struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// SalesBucket é a forma genérica usada pelo relatório de vendas
type SalesBucket struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type SalesSummary struct {
	Orders            int     `json:"orders"`
	Revenue           float64 `json:"revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}

type SalesReport struct {
	Filter  SalesFilter   `json:"filter"`
	Buckets []SalesBucket `json:"buckets"`
	Summary SalesSummary  `json:"summary"`
}

// InactiveCustomer acompanha quantos dias se passaram desde o último pedido.
// DaysSinceLastOrder é nulo quando a data do último pedido não existe.
type InactiveCustomer struct {
	Customer
	DaysSinceLastOrder *int `json:"days_since_last_order"`
}

type DashboardOverview struct {
	TotalCustomers       int                  `json:"total_customers"`
	TotalOrders          int                  `json:"total_orders"`
	TotalRevenue         float64              `json:"total_revenue"`
	AverageOrderValue    float64              `json:"average_order_value"`
	InactiveCustomers    int                  `json:"inactive_customers"`
	CustomerDistribution CustomerDistribution `json:"customer_distribution"`
	EngagementPercent    float64              `json:"engagement_percent"`
	RecentCustomers      []Customer           `json:"recent_customers"`
	GeneratedAt          time.Time            `json:"generated_at"`
}

type AnalyticsReport struct {
	TopCustomers         []Customer           `json:"top_customers"`
	InactiveCustomers    []InactiveCustomer   `json:"inactive_customers"`
	CustomerDistribution CustomerDistribution `json:"customer_distribution"`
	EngagementPercent    float64              `json:"engagement_percent"`
	AverageOrderValue    float64              `json:"average_order_value"`
	MonthlyRevenue       []MonthlyRevenue     `json:"monthly_revenue"`
	RevenueGrowthPercent float64              `json:"revenue_growth_percent"`
	DailySales           []DailySales         `json:"daily_sales"`
	GeneratedAt          time.Time            `json:"generated_at"`
}
