package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/config"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "segredo-de-teste"

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)

	return NewService(repo, config.Auth{Secret: testSecret, TokenDuration: time.Hour}), repo
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func assertAuthErrorCode(t *testing.T, err error, target error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.Is(err, target), "esperado %v, obtido %v", target, err)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, code, authErr.Code)
}

func TestService_SignUp(t *testing.T) {
	validRequest := domain.SignUpRequest{
		Name:            "Ana Souza",
		Email:           " Ana@FoodBrand.com ",
		Company:         "FoodBrand",
		Password:        "Senha@123",
		ConfirmPassword: "Senha@123",
	}

	t.Run("Cria dono ativo e retorna token válido", func(t *testing.T) {
		service, repo := newTestService(t)

		repo.EXPECT().HasOwner(gomock.Any()).Return(false, nil)
		repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@foodbrand.com").Return(nil, nil)
		repo.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.Equal(t, domain.RoleOwner, user.RoleID)
				assert.True(t, user.Active)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Senha@123")))
				user.ID = 7
				return user, nil
			})

		user, token, err := service.SignUp(context.Background(), validRequest)
		require.NoError(t, err)

		assert.Equal(t, 7, user.ID)
		assert.Empty(t, user.PasswordHash)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, "FoodBrand", claims.UserCompany)
		assert.Equal(t, domain.RoleOwner, claims.UserRoleID)
	})

	t.Run("Senhas diferentes", func(t *testing.T) {
		service, _ := newTestService(t)

		request := validRequest
		request.ConfirmPassword = "Outra@123"

		_, _, err := service.SignUp(context.Background(), request)
		assertAuthErrorCode(t, err, ErrPasswordMismatch, apiErrors.ErrPasswordMismatch)
	})

	t.Run("Campos obrigatórios", func(t *testing.T) {
		service, _ := newTestService(t)

		request := validRequest
		request.Company = ""

		_, _, err := service.SignUp(context.Background(), request)
		assertAuthErrorCode(t, err, ErrMissingRequiredData, apiErrors.ErrMissingRequiredData)
	})

	t.Run("Senha fraca", func(t *testing.T) {
		service, _ := newTestService(t)

		request := validRequest
		request.Password = "fraca"
		request.ConfirmPassword = "fraca"

		_, _, err := service.SignUp(context.Background(), request)
		assertAuthErrorCode(t, err, ErrWeakPassword, apiErrors.ErrWeakPassword)
	})

	t.Run("Email já cadastrado", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().HasOwner(gomock.Any()).Return(false, nil)
		repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@foodbrand.com").Return(&domain.User{ID: 1}, nil)

		_, _, err := service.SignUp(context.Background(), validRequest)
		assertAuthErrorCode(t, err, ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists)
	})

	t.Run("Email reservado entre a consulta e a criação", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().HasOwner(gomock.Any()).Return(false, nil)
		repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, repository.ErrUserEmailTaken)

		_, _, err := service.SignUp(context.Background(), validRequest)
		assertAuthErrorCode(t, err, ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists)
	})

	t.Run("Segundo cadastro é recusado quando já existe dono", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().HasOwner(gomock.Any()).Return(true, nil)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)

		user, token, err := service.SignUp(context.Background(), validRequest)
		assertAuthErrorCode(t, err, ErrSignUpClosed, apiErrors.ErrSignUpClosed)
		assert.True(t, IsAuthorizationError(err))
		assert.Nil(t, user)
		assert.Empty(t, token)
	})

	t.Run("Falha ao verificar dono", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().HasOwner(gomock.Any()).Return(false, errors.New("conexão recusada"))

		_, _, err := service.SignUp(context.Background(), validRequest)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, authErr.Code)
	})
}

func TestService_LoginUser(t *testing.T) {
	activeUser := func() *domain.User {
		return &domain.User{ID: 3, Name: "Ana", Email: "ana@foodbrand.com", Active: true, RoleID: domain.RoleStaff, PasswordHash: hashPassword(t, "Senha@123")}
	}

	t.Run("Credenciais válidas", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@foodbrand.com").Return(activeUser(), nil)

		token, err := service.LoginUser(context.Background(), "ANA@foodbrand.com", "Senha@123")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 3, claims.UserID)
		assert.Equal(t, domain.RoleStaff, claims.UserRoleID)
	})

	t.Run("Senha incorreta", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(activeUser(), nil)

		_, err := service.LoginUser(context.Background(), "ana@foodbrand.com", "errada")
		assertAuthErrorCode(t, err, ErrInvalidCredentials, apiErrors.ErrInvalidCredentials)
		assert.True(t, IsCredentialsError(err))
	})

	t.Run("Usuário desativado", func(t *testing.T) {
		service, repo := newTestService(t)
		user := activeUser()
		user.Active = false
		repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := service.LoginUser(context.Background(), "ana@foodbrand.com", "Senha@123")
		assertAuthErrorCode(t, err, ErrUserDisabled, apiErrors.ErrUserDisabled)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := service.LoginUser(context.Background(), "ninguem@foodbrand.com", "Senha@123")
		assertAuthErrorCode(t, err, ErrUserNotFound, apiErrors.ErrUserNotFound)
	})

	t.Run("Campos vazios", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.LoginUser(context.Background(), "", "")
		assertAuthErrorCode(t, err, ErrMissingRequiredData, apiErrors.ErrMissingRequiredData)
	})
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := newTestService(t)

	t.Run("Token expirado", func(t *testing.T) {
		claims := domain.Claims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assertAuthErrorCode(t, err, ErrExpiredToken, apiErrors.ErrExpiredToken)
	})

	t.Run("Assinado com outro segredo", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{UserID: 1}).SignedString([]byte("outro"))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assertAuthErrorCode(t, err, ErrInvalidToken, apiErrors.ErrInvalidToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("Token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("abc.def")
		assertAuthErrorCode(t, err, ErrInvalidToken, apiErrors.ErrInvalidToken)
	})
}

func TestService_ChangePassword(t *testing.T) {
	t.Run("Altera a senha", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), 3).Return(&domain.User{ID: 3, PasswordHash: hashPassword(t, "Senha@123")}, nil)
		repo.EXPECT().
			UpdateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Nova#Senha1")))
				return nil
			})

		require.NoError(t, service.ChangePassword(context.Background(), 3, "Senha@123", "Nova#Senha1"))
	})

	t.Run("Senha atual incorreta", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), 3).Return(&domain.User{ID: 3, PasswordHash: hashPassword(t, "Senha@123")}, nil)

		err := service.ChangePassword(context.Background(), 3, "errada", "Nova#Senha1")
		assertAuthErrorCode(t, err, ErrInvalidCurrentPassword, apiErrors.ErrInvalidCredentials)
	})

	t.Run("Nova senha igual à atual", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), 3).Return(&domain.User{ID: 3, PasswordHash: hashPassword(t, "Senha@123")}, nil)

		err := service.ChangePassword(context.Background(), 3, "Senha@123", "Senha@123")
		assert.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), 9).Return(nil, nil)

		err := service.ChangePassword(context.Background(), 9, "a", "b")
		assertAuthErrorCode(t, err, ErrUserNotFound, apiErrors.ErrUserNotFound)
	})
}

func TestService_CreateStaffUser(t *testing.T) {
	t.Run("Dono cadastra funcionário", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), 1).Return(&domain.User{ID: 1, RoleID: domain.RoleOwner, Company: "FoodBrand"}, nil)
		repo.EXPECT().GetUserByEmail(gomock.Any(), "joao@foodbrand.com").Return(nil, nil)
		repo.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.Equal(t, domain.RoleStaff, user.RoleID)
				assert.Equal(t, "FoodBrand", user.Company)
				user.ID = 2
				return user, nil
			})

		user, password, err := service.CreateStaffUser(context.Background(), 1, domain.CreateStaffRequest{Name: "João", Email: "joao@foodbrand.com"})
		require.NoError(t, err)
		assert.Equal(t, 2, user.ID)
		assert.Len(t, password, 12)
		assert.NoError(t, service.ValidatePasswordStrength(password))
	})

	t.Run("Funcionário não pode cadastrar", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetUserByID(gomock.Any(), 2).Return(&domain.User{ID: 2, RoleID: domain.RoleStaff}, nil)

		_, _, err := service.CreateStaffUser(context.Background(), 2, domain.CreateStaffRequest{Name: "X", Email: "x@foodbrand.com"})
		assertAuthErrorCode(t, err, ErrOwnerRequired, apiErrors.ErrInsufficientPrivilege)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		password string
		valid    bool
	}{
		{password: "Senha@123", valid: true},
		{password: "S@1a", valid: false},
		{password: "senha@123", valid: false},
		{password: "SENHA@123", valid: false},
		{password: "Senha@abc", valid: false},
		{password: "Senha1234", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrWeakPassword)
		})
	}
}

func TestGenerateStrongPassword(t *testing.T) {
	password, err := generateStrongPassword(4)
	require.NoError(t, err)
	assert.Len(t, password, 8)
}
