package customer

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de clientes e pedidos
var (
	// Erros de validação
	ErrNameRequired       = errors.New("nome do cliente é obrigatório")
	ErrInvalidPhone       = errors.New("telefone deve ter exatamente 11 dígitos")
	ErrInvalidAmount      = errors.New("valor do pedido deve ser maior que zero")
	ErrCustomerIDRequired = errors.New("id do cliente é obrigatório")

	// Erros de negócio
	ErrCustomerNotFound      = errors.New("cliente não encontrado")
	ErrCustomerAlreadyExists = errors.New("já existe cliente com este telefone")

	// Erros de armazenamento
	ErrLoadSnapshot = errors.New("erro ao carregar dados")
	ErrSaveSnapshot = errors.New("erro ao salvar dados")
)

// CustomerError é um erro com contexto adicional para clientes
type CustomerError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	CustomerID string // ID do cliente envolvido (quando aplicável)
	Details    string // Detalhes adicionais
}

func (e *CustomerError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CustomerError) Unwrap() error {
	return e.Err
}

func NewCustomerError(err error, code string, details string) *CustomerError {
	return &CustomerError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewCustomerErrorWithID(err error, code string, customerID string, details string) *CustomerError {
	return &CustomerError{
		Err:        err,
		Code:       code,
		CustomerID: customerID,
		Details:    details,
	}
}
