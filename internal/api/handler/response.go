package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz os erros dos casos de uso para o formato da API
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var customerErr *customer.CustomerError
	if errors.As(err, &customerErr) {
		details := map[string]any{}
		if customerErr.CustomerID != "" {
			details["customer_id"] = customerErr.CustomerID
		}
		if customerErr.Code == apiErrors.ErrCustomerAlreadyExists && customerErr.Details != "" {
			details["name"] = customerErr.Details
		}
		if len(details) == 0 {
			details = nil
		}
		apiErrors.WriteError(w, customerErr.Code, customerErr.Err.Error(), details)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), authErr.ResponseDetails())
		return
	}

	switch {
	case errors.Is(err, insighting.ErrInvalidSalesFilter):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, insighting.ErrInvalidSalesFilter.Error(), nil)
	case errors.Is(err, insighting.ErrLoadSnapshot):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, insighting.ErrLoadSnapshot.Error(), nil)
	default:
		logrus.WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
