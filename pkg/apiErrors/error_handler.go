package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro retornados pela API
const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe
	ErrPasswordMismatch      = "AUTH_010" // Confirmação de senha diferente
	ErrWeakPassword          = "AUTH_011" // Senha não atende aos requisitos
	ErrSignUpClosed          = "AUTH_012" // Cadastro público encerrado após o primeiro dono

	// Erros de clientes e pedidos
	ErrCustomerNotFound      = "CUS_001" // Cliente não encontrado
	ErrCustomerAlreadyExists = "CUS_002" // Já existe cliente com o telefone
	ErrInvalidPhone          = "CUS_003" // Telefone deve ter 11 dígitos
	ErrInvalidAmount         = "ORD_001" // Valor do pedido inválido

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrRouteNotFound       = "VAL_004" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_005" // Método não suportado pela rota

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusConflict,
	ErrPasswordMismatch:      http.StatusBadRequest,
	ErrWeakPassword:          http.StatusBadRequest,
	ErrSignUpClosed:          http.StatusForbidden,
	ErrCustomerNotFound:      http.StatusNotFound,
	ErrCustomerAlreadyExists: http.StatusConflict,
	ErrInvalidPhone:          http.StatusBadRequest,
	ErrInvalidAmount:         http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP associado ao código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}
