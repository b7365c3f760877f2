package customer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/utils"
)

type CustomerService interface {
	ListCustomers(ctx context.Context, search string) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, request domain.CreateCustomerRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) (*domain.Customer, error)
}

type OrderService interface {
	RecordOrder(ctx context.Context, request domain.RecordOrderRequest) (*domain.RecordOrderResponse, error)
}

// SnapshotObserver é avisado depois de cada gravação de clientes ou vendas
type SnapshotObserver interface {
	InvalidateOverview()
}

// Service implementa CustomerService e OrderService. Todo ciclo
// carregar-alterar-salvar acontece sob o mesmo mutex para que regravações
// concorrentes da coleção inteira não percam atualizações.
type Service struct {
	store     repository.SnapshotStore
	clock     func() time.Time
	mu        sync.Mutex
	observers []SnapshotObserver
}

func NewService(store repository.SnapshotStore, observers ...SnapshotObserver) *Service {
	return &Service{
		store:     store,
		clock:     time.Now,
		observers: observers,
	}
}

func (s *Service) notifyChange() {
	for _, o := range s.observers {
		o.InvalidateOverview()
	}
}

func (s *Service) today() string {
	return utils.FormatDate(s.clock())
}

// ListCustomers filtra por trecho do telefone ou do nome (sem diferenciar maiúsculas)
func (s *Service) ListCustomers(ctx context.Context, search string) ([]domain.Customer, error) {
	customers, err := s.store.LoadCustomers(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar clientes")
		return nil, NewCustomerError(ErrLoadSnapshot, apiErrors.ErrDatabaseOperation, "Falha ao carregar clientes")
	}

	search = strings.TrimSpace(search)
	if search == "" {
		return customers, nil
	}

	term := strings.ToLower(search)
	filtered := make([]domain.Customer, 0)
	for _, c := range customers {
		if strings.Contains(c.Phone, search) || strings.Contains(strings.ToLower(c.Name), term) {
			filtered = append(filtered, c)
		}
	}

	return filtered, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewCustomerError(ErrCustomerIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	customers, err := s.store.LoadCustomers(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar clientes")
		return nil, NewCustomerError(ErrLoadSnapshot, apiErrors.ErrDatabaseOperation, "Falha ao carregar clientes")
	}

	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}

	return nil, NewCustomerErrorWithID(ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, id, "")
}

func (s *Service) CreateCustomer(ctx context.Context, request domain.CreateCustomerRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(request.Name)
	phone := strings.TrimSpace(request.Phone)
	address := strings.TrimSpace(request.Address)

	if name == "" {
		return nil, NewCustomerError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "")
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

	for _, c := range customers {
		if c.Phone == phone {
			return nil, NewCustomerErrorWithID(ErrCustomerAlreadyExists, apiErrors.ErrCustomerAlreadyExists, c.ID, c.Name)
		}
	}

	id, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar id do cliente")
		return nil, NewCustomerError(err, apiErrors.ErrInternalServer, "Falha ao gerar id do cliente")
	}

	customer := domain.Customer{
		ID:         id,
		Name:       name,
		Phone:      phone,
		Address:    address,
		OrderCount: 0,
		TotalSpent: 0,
		LastOrder:  s.today(),
	}

	updated := make([]domain.Customer, 0, len(customers)+1)
	updated = append(updated, customers...)
	updated = append(updated, customer)

	if err := s.store.SaveCustomers(ctx, updated); err != nil {
		logrus.WithError(err).WithField("customer_id", id).Error("Erro ao salvar clientes")
		return nil, NewCustomerErrorWithID(ErrSaveSnapshot, apiErrors.ErrDatabaseOperation, id, "Falha ao salvar cliente")
	}

	s.notifyChange()
	logrus.WithField("customer_id", id).Info("Cliente cadastrado com sucesso")

	return &customer, nil
}

// DeleteCustomer remove o cliente e mantém o histórico de vendas dele
func (s *Service) DeleteCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewCustomerError(ErrCustomerIDRequired, apiErrors.ErrMissingRequiredData, "")
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
		if customers[i].ID == id {
			index = i
			break
		}
	}

	if index < 0 {
		return nil, NewCustomerErrorWithID(ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, id, "")
	}

	deleted := customers[index]

	remaining := make([]domain.Customer, 0, len(customers)-1)
	remaining = append(remaining, customers[:index]...)
	remaining = append(remaining, customers[index+1:]...)

	if err := s.store.SaveCustomers(ctx, remaining); err != nil {
		logrus.WithError(err).WithField("customer_id", id).Error("Erro ao salvar clientes")
		return nil, NewCustomerErrorWithID(ErrSaveSnapshot, apiErrors.ErrDatabaseOperation, id, "Falha ao remover cliente")
	}

	s.notifyChange()
	logrus.WithField("customer_id", id).Info("Cliente removido")

	return &deleted, nil
}
