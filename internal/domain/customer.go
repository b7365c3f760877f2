// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// PhoneLength é a quantidade exata de dígitos de um telefone de cliente
const PhoneLength = 11

var ErrInvalidSnapshot = errors.New("snapshot inválido")

// Customer é um cliente cadastrado. O telefone é a chave única de negócio.
type Customer struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Address    string  `json:"address"`
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
	LastOrder  string  `json:"last_order,omitempty"` // YYYY-MM-DD
}

// SalesRecord é uma venda lançada manualmente. CustomerPhone não é garantido
// como referência válida: registros órfãos são tolerados.
type SalesRecord struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Amount        float64 `json:"amount"`
	CustomerPhone string  `json:"customer_phone"`
}

// IsValidPhone verifica se o telefone tem exatamente 11 dígitos numéricos
func IsValidPhone(phone string) bool {
	if len(phone) != PhoneLength {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isValidAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: cliente sem id", ErrInvalidSnapshot)
	}
	if !IsValidPhone(c.Phone) {
		return fmt.Errorf("%w: cliente %s com telefone inválido %q", ErrInvalidSnapshot, c.ID, c.Phone)
	}
	if c.OrderCount < 0 {
		return fmt.Errorf("%w: cliente %s com quantidade de pedidos negativa", ErrInvalidSnapshot, c.ID)
	}
	if !isValidAmount(c.TotalSpent) || c.TotalSpent < 0 {
		return fmt.Errorf("%w: cliente %s com total gasto inválido", ErrInvalidSnapshot, c.ID)
	}
	if c.OrderCount == 0 && c.TotalSpent != 0 {
		return fmt.Errorf("%w: cliente %s sem pedidos não pode ter total gasto", ErrInvalidSnapshot, c.ID)
	}
	if c.LastOrder != "" {
		if _, err := time.Parse(time.DateOnly, c.LastOrder); err != nil {
			return fmt.Errorf("%w: cliente %s com data do último pedido inválida", ErrInvalidSnapshot, c.ID)
		}
	}
	return nil
}

func (r SalesRecord) Validate() error {
	if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
		return fmt.Errorf("%w: venda com data inválida %q", ErrInvalidSnapshot, r.Date)
	}
	if !isValidAmount(r.Amount) || r.Amount <= 0 {
		return fmt.Errorf("%w: venda de %s com valor inválido", ErrInvalidSnapshot, r.Date)
	}
	if !IsValidPhone(r.CustomerPhone) {
		return fmt.Errorf("%w: venda de %s com telefone inválido %q", ErrInvalidSnapshot, r.Date, r.CustomerPhone)
	}
	return nil
}

// ValidateCustomers valida cada cliente e a unicidade de id e telefone na coleção
func ValidateCustomers(customers []Customer) error {
	ids := make(map[string]struct{}, len(customers))
	phones := make(map[string]struct{}, len(customers))

	for _, c := range customers {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, exists := ids[c.ID]; exists {
			return fmt.Errorf("%w: id de cliente duplicado %s", ErrInvalidSnapshot, c.ID)
		}
		if _, exists := phones[c.Phone]; exists {
			return fmt.Errorf("%w: telefone duplicado %s", ErrInvalidSnapshot, c.Phone)
		}
		ids[c.ID] = struct{}{}
		phones[c.Phone] = struct{}{}
	}

	return nil
}

func ValidateSalesRecords(records []SalesRecord) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type RecordOrderRequest struct {
	Amount        float64 `json:"amount"`
	CustomerPhone string  `json:"customer_phone"`
}

type RecordOrderResponse struct {
	Customer Customer    `json:"customer"`
	Sale     SalesRecord `json:"sale"`
}
