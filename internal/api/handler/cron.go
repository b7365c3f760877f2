package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/scheduler"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/apiErrors"
)

const (
	CronJobTypeDashboard = "dashboard"
	CronJobTypeAll       = "all"
)

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	DashboardRefreshService *scheduler.DashboardRefreshService
}

func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeDashboard, CronJobTypeAll:
			if services.DashboardRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização do painel não disponível", nil)
				return
			}
			services.DashboardRefreshService.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: dashboard, all", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.DashboardRefreshService != nil {
			status[CronJobTypeDashboard] = services.DashboardRefreshService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
