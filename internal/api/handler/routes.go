package handler

import (
	"net/http"

	"github.com/vfg2006/foodbrand-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/signup",
			Method:  http.MethodPost,
			Handler: SignUp(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateStaffUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Customers(service customer.CustomerService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/customers",
			Method:      http.MethodGet,
			Handler:     ListCustomers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customers",
			Method:      http.MethodPost,
			Handler:     CreateCustomer(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customers/:id",
			Method:      http.MethodGet,
			Handler:     GetCustomer(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customers/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCustomer(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
		{
			Path:        "/v1/export/customers",
			Method:      http.MethodGet,
			Handler:     ExportCustomers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Orders(service customer.OrderService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/orders",
			Method:      http.MethodPost,
			Handler:     RecordOrder(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/overview",
			Method:      http.MethodGet,
			Handler:     GetOverview(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     GetSalesReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics",
			Method:      http.MethodGet,
			Handler:     GetAnalytics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analytics/inactive-customers",
			Method:      http.MethodGet,
			Handler:     GetInactiveCustomers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
	}
}
