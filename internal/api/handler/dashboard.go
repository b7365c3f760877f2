package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/apiErrors"
)

// GetOverview devolve o painel em cache; ?refresh=true força o recálculo
func GetOverview(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forceRefresh := false
		if raw := r.URL.Query().Get("refresh"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro refresh inválido", nil)
				return
			}
			forceRefresh = parsed
		}

		overview, err := service.GetCachedOverview(r.Context(), forceRefresh)
		if err != nil {
			writeServiceError(w, err, "Erro ao calcular painel")
			return
		}

		writeJSON(w, http.StatusOK, overview)
	}
}

func GetAnalytics(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.GetAnalytics(r.Context())
		if err != nil {
			writeServiceError(w, err, "Erro ao calcular análises")
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// GetSalesReport usa ?filter=daily|weekly|monthly, padrão daily
func GetSalesReport(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := domain.SalesFilter(r.URL.Query().Get("filter"))
		if filter == "" {
			filter = domain.SalesFilterDaily
		}

		report, err := service.GetSalesReport(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err, "Erro ao calcular relatório de vendas")
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

func GetInactiveCustomers(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threshold := 0
		if raw := r.URL.Query().Get("threshold_days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro threshold_days inválido", nil)
				return
			}
			threshold = parsed
		}

		customers, err := service.GetInactiveCustomers(r.Context(), threshold)
		if err != nil {
			writeServiceError(w, err, "Erro ao buscar clientes inativos")
			return
		}

		writeJSON(w, http.StatusOK, customers)
	}
}
