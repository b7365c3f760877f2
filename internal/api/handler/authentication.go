package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/middleware"
)

type TokenResponse struct {
	Token string `json:"token"`
}

type SignUpResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type CreateStaffResponse struct {
	User     *domain.User `json:"user"`
	Password string       `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err, "Erro interno ao realizar login")
			return
		}

		writeJSON(w, http.StatusOK, TokenResponse{Token: token})
	}
}

// SignUp cadastra o dono do negócio e já devolve o token de acesso
func SignUp(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SignUp")

		var req domain.SignUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		user, token, err := service.SignUp(r.Context(), req)
		if err != nil {
			writeServiceError(w, err, "Erro ao cadastrar usuário")
			return
		}

		writeJSON(w, http.StatusCreated, SignUpResponse{User: user, Token: token})
	}
}

func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), userClaims.UserID)
		if err != nil {
			writeServiceError(w, err, "Erro ao obter dados do usuário")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// CreateStaffUser cadastra um funcionário; a senha gerada só é exibida nesta resposta
func CreateStaffUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateStaffUser")

		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Não autorizado", nil)
			return
		}

		var req domain.CreateStaffRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		user, password, err := service.CreateStaffUser(r.Context(), userClaims.UserID, req)
		if err != nil {
			writeServiceError(w, err, "Erro ao cadastrar funcionário")
			return
		}

		writeJSON(w, http.StatusCreated, CreateStaffResponse{User: user, Password: password})
	}
}

// ChangePassword permite que o usuário altere apenas a própria senha
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ChangePassword")

		targetUserIDStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if targetUserIDStr == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do usuário não fornecido", nil)
			return
		}

		targetUserID, err := strconv.Atoi(targetUserIDStr)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
			return
		}

		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Não autorizado", nil)
			return
		}

		if userClaims.UserID != targetUserID {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Não autorizado a alterar a senha de outro usuário", nil)
			return
		}

		var req domain.ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.ChangePassword(r.Context(), targetUserID, req.CurrentPassword, req.NewPassword); err != nil {
			writeServiceError(w, err, "Erro ao alterar senha")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
