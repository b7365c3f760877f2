package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/utils"
)

var customerCSVHeader = []string{"id", "name", "phone", "address", "order_count", "total_spent", "last_order"}

// ListCustomers aceita ?search= para filtrar por nome ou telefone
func ListCustomers(service customer.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := service.ListCustomers(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			writeServiceError(w, err, "Erro ao listar clientes")
			return
		}

		writeJSON(w, http.StatusOK, customers)
	}
}

func GetCustomer(service customer.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		c, err := service.GetCustomer(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, "Erro ao buscar cliente")
			return
		}

		writeJSON(w, http.StatusOK, c)
	}
}

func CreateCustomer(service customer.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCustomer")

		var req domain.CreateCustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		c, err := service.CreateCustomer(r.Context(), req)
		if err != nil {
			writeServiceError(w, err, "Erro ao cadastrar cliente")
			return
		}

		writeJSON(w, http.StatusCreated, c)
	}
}

func DeleteCustomer(service customer.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		c, err := service.DeleteCustomer(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, "Erro ao remover cliente")
			return
		}

		writeJSON(w, http.StatusOK, c)
	}
}

// ExportCustomers devolve a lista de clientes em CSV para download
func ExportCustomers(service customer.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := service.ListCustomers(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			writeServiceError(w, err, "Erro ao exportar clientes")
			return
		}

		filename := fmt.Sprintf("clientes-%s.csv", time.Now().Format(time.DateOnly))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		writer := csv.NewWriter(w)
		if err := writer.Write(customerCSVHeader); err != nil {
			logrus.WithError(err).Error("Erro ao escrever cabeçalho do CSV")
			return
		}

		for _, c := range customers {
			row := []string{
				c.ID,
				c.Name,
				c.Phone,
				c.Address,
				strconv.Itoa(c.OrderCount),
				utils.FormatMoney(c.TotalSpent),
				c.LastOrder,
			}
			if err := writer.Write(row); err != nil {
				logrus.WithError(err).Error("Erro ao escrever linha do CSV")
				return
			}
		}

		writer.Flush()
		if err := writer.Error(); err != nil {
			logrus.WithError(err).Error("Erro ao finalizar CSV")
		}
	}
}

func RecordOrder(service customer.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RecordOrder")

		var req domain.RecordOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		resp, err := service.RecordOrder(r.Context(), req)
		if err != nil {
			writeServiceError(w, err, "Erro ao registrar pedido")
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}
