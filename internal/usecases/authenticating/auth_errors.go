package authenticating

import (
	"errors"
	"fmt"
)

// Sessão e token
var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrUserDisabled       = errors.New("usuário desativado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrInvalidToken       = errors.New("token inválido")
	ErrExpiredToken       = errors.New("token expirado")
)

// Cadastro de dono e funcionários
var (
	ErrOwnerRequired       = errors.New("operação restrita ao dono do estabelecimento")
	ErrSignUpClosed        = errors.New("cadastro público encerrado")
	ErrUserAlreadyExists   = errors.New("usuário já existe")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrInvalidFormat       = errors.New("formato de dados inválido")
)

// Senha
var (
	ErrWeakPassword           = errors.New("senha fraca")
	ErrPasswordMismatch       = errors.New("senhas não conferem")
	ErrSamePassword           = errors.New("nova senha deve ser diferente da atual")
	ErrInvalidCurrentPassword = errors.New("senha atual incorreta")
)

// AuthError carrega o código da API e, quando houver, o usuário envolvido
type AuthError struct {
	Err     error
	Code    string
	UserID  int
	Details string
}

func (e *AuthError) Error() string {
	if e.Details == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Details)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ResponseDetails devolve os campos extras expostos no corpo de erro da API
func (e *AuthError) ResponseDetails() map[string]any {
	if e.UserID == 0 {
		return nil
	}
	return map[string]any{"user_id": e.UserID}
}

func IsCredentialsError(err error) bool {
	for _, target := range []error{ErrInvalidCredentials, ErrUserDisabled, ErrUserNotFound, ErrInvalidCurrentPassword} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func IsAuthorizationError(err error) bool {
	for _, target := range []error{ErrOwnerRequired, ErrSignUpClosed, ErrInvalidToken, ErrExpiredToken} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return NewUserAuthError(baseErr, code, 0, details)
}

// NewUserAuthError é como NewAuthError, mas registra o ID do usuário afetado
func NewUserAuthError(baseErr error, code string, userID int, details string) *AuthError {
	return &AuthError{Err: baseErr, Code: code, UserID: userID, Details: details}
}
