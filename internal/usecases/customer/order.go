package customer

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/apiErrors"
)

// RecordOrder lança um pedido para um cliente existente, atualizando os
// totais do cliente e anexando a venda ao histórico.
func (s *Service) RecordOrder(ctx context.Context, request domain.RecordOrderRequest) (*domain.RecordOrderResponse, error) {
	phone := strings.TrimSpace(request.CustomerPhone)

	if math.IsNaN(request.Amount) || math.IsInf(request.Amount, 0) || request.Amount <= 0 {
		return nil, NewCustomerError(ErrInvalidAmount, apiErrors.ErrInvalidAmount, fmt.Sprintf("%v", request.Amount))
	}

	if !domain.IsValidPhone(phone) {
		return nil, NewCustomerError(ErrInvalidPhone, apiErrors.ErrInvalidPhone, phone)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.store.LoadCustomers(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar clientes")
		return nil, NewCustomerError(ErrLoadSnapshot, apiErrors.ErrDatabaseOperation, "Falha ao carregar clientes")
	}

	index := -1
	for i := range customers {
		if customers[i].Phone == phone {
			index = i
			break
		}
	}

	if index < 0 {
		return nil, NewCustomerError(ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, "Cadastre o cliente antes de lançar o pedido")
	}

	records, err := s.store.LoadSalesRecords(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar vendas")
		return nil, NewCustomerError(ErrLoadSnapshot, apiErrors.ErrDatabaseOperation, "Falha ao carregar vendas")
	}

	today := s.today()

	updatedCustomers := make([]domain.Customer, len(customers))
	copy(updatedCustomers, customers)

	customer := updatedCustomers[index]
	customer.OrderCount++
	customer.TotalSpent += request.Amount
	customer.LastOrder = today
	updatedCustomers[index] = customer

	sale := domain.SalesRecord{
		Date:          today,
		Amount:        request.Amount,
		CustomerPhone: phone,
	}

	updatedRecords := make([]domain.SalesRecord, 0, len(records)+1)
	updatedRecords = append(updatedRecords, records...)
	updatedRecords = append(updatedRecords, sale)

	logger := logrus.WithField("customer_id", customer.ID)

	if err := s.store.SaveCustomers(ctx, updatedCustomers); err != nil {
		logger.WithError(err).Error("Erro ao salvar clientes")
		return nil, NewCustomerErrorWithID(ErrSaveSnapshot, apiErrors.ErrDatabaseOperation, customer.ID, "Falha ao salvar pedido")
	}

	if err := s.store.SaveSalesRecords(ctx, updatedRecords); err != nil {
		logger.WithError(err).Error("Erro ao salvar vendas, restaurando clientes")
		if restoreErr := s.store.SaveCustomers(ctx, customers); restoreErr != nil {
			logger.WithError(restoreErr).Error("Erro ao restaurar clientes")
			s.notifyChange()
		}
		return nil, NewCustomerErrorWithID(ErrSaveSnapshot, apiErrors.ErrDatabaseOperation, customer.ID, "Falha ao salvar pedido")
	}

	s.notifyChange()
	logger.WithField("amount", request.Amount).Info("Pedido registrado")

	return &domain.RecordOrderResponse{
		Customer: customer,
		Sale:     sale,
	}, nil
}
