package authenticating

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/config"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	SignUp(ctx context.Context, request domain.SignUpRequest) (*domain.User, string, error)
	CreateStaffUser(ctx context.Context, requestUserID int, request domain.CreateStaffRequest) (*domain.User, string, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	ValidatePasswordStrength(password string) error
}

type Service struct {
	userRepo repository.UserRepository
	cfg      config.Auth

	// serializa a checagem de dono com a criação no SignUp
	signUpMu sync.Mutex
}

func NewService(userRepo repository.UserRepository, cfg config.Auth) *Service {
	if cfg.TokenDuration <= 0 {
		cfg.TokenDuration = 24 * time.Hour
	}

	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

// SignUp cadastra o dono do negócio e já devolve o token de acesso.
// Só o primeiro cadastro é aceito; depois dele os funcionários entram por CreateStaffUser.
func (s *Service) SignUp(ctx context.Context, request domain.SignUpRequest) (*domain.User, string, error) {
	name := strings.TrimSpace(request.Name)
	email := handleEmail(request.Email)
	company := strings.TrimSpace(request.Company)

	if name == "" || email == "" || company == "" || request.Password == "" {
		return nil, "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome, email, empresa e senha são obrigatórios")
	}

	if !strings.Contains(email, "@") {
		return nil, "", NewAuthError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, "Email inválido")
	}

	if request.Password != request.ConfirmPassword {
		return nil, "", NewAuthError(ErrPasswordMismatch, apiErrors.ErrPasswordMismatch, "A confirmação de senha não confere")
	}

	if err := s.ValidatePasswordStrength(request.Password); err != nil {
		return nil, "", err
	}

	s.signUpMu.Lock()
	defer s.signUpMu.Unlock()

	hasOwner, err := s.userRepo.HasOwner(ctx)
	if err != nil {
		return nil, "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if hasOwner {
		logrus.WithField("email", email).Warn("Tentativa de cadastro público com dono já existente")
		return nil, "", NewAuthError(ErrSignUpClosed, apiErrors.ErrSignUpClosed, "Peça ao dono do estabelecimento para criar seu acesso")
	}

	user, err := s.createUser(ctx, &domain.User{
		Name:    name,
		Email:   email,
		Company: company,
		Active:  true,
		RoleID:  domain.RoleOwner,
	}, request.Password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	logrus.WithField("user_id", user.ID).Info("Conta criada com sucesso")

	user.PasswordHash = ""
	return user, token, nil
}

// CreateStaffUser permite ao dono cadastrar um funcionário com senha gerada
func (s *Service) CreateStaffUser(ctx context.Context, requestUserID int, request domain.CreateStaffRequest) (*domain.User, string, error) {
	owner, err := s.userRepo.GetUserByID(ctx, requestUserID)
	if err != nil {
		return nil, "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if owner == nil {
		return nil, "", NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, requestUserID, "")
	}
	if owner.RoleID != domain.RoleOwner {
		return nil, "", NewUserAuthError(ErrOwnerRequired, apiErrors.ErrInsufficientPrivilege, requestUserID, "Apenas o dono pode cadastrar funcionários")
	}

	name := strings.TrimSpace(request.Name)
	email := handleEmail(request.Email)
	if name == "" || email == "" {
		return nil, "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome e email são obrigatórios")
	}

	password, err := generateStrongPassword(12)
	if err != nil {
		return nil, "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar senha")
	}

	user, err := s.createUser(ctx, &domain.User{
		Name:    name,
		Email:   email,
		Company: owner.Company,
		Active:  true,
		RoleID:  domain.RoleStaff,
	}, password)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, password, nil
}

func (s *Service) createUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao processar senha")
	}
	user.PasswordHash = string(hashedPassword)

	created, err := s.userRepo.CreateUser(ctx, user)
	if errors.Is(err, repository.ErrUserEmailTaken) {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
	}
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	return created, nil
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Erro ao buscar perfil")
		return nil, NewUserAuthError(err, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	claims := domain.Claims{
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		UserCompany: user.Company,
		UserRoleID:  user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
}

// generateStrongPassword gera uma senha forte com o comprimento especificado
// incluindo letras maiúsculas, minúsculas, números e caracteres especiais
func generateStrongPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	sets := []string{lowerChars, upperChars, numberChars, specialChars}
	allChars := lowerChars + upperChars + numberChars + specialChars

	password := make([]byte, length)

	// um caractere de cada tipo nas primeiras posições
	for i, set := range sets {
		c, err := getRandomChar(set)
		if err != nil {
			return "", err
		}
		password[i] = c
	}

	for i := len(sets); i < length; i++ {
		c, err := getRandomChar(allChars)
		if err != nil {
			return "", err
		}
		password[i] = c
	}

	// embaralha para não deixar os tipos em ordem previsível
	for i := range password {
		j, err := randomInt(int64(len(password)))
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func getRandomChar(charset string) (byte, error) {
	n, err := randomInt(int64(len(charset)))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// randomInt gera um número aleatório seguro entre 0 e max-1
func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

// ValidatePasswordStrength exige ao menos 8 caracteres com maiúsculas, minúsculas, números e caracteres especiais
func (s *Service) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "a senha deve conter pelo menos 8 caracteres")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool

	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "a senha deve conter pelo menos uma letra maiúscula")
	case !hasLower:
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "a senha deve conter pelo menos uma letra minúscula")
	case !hasNumber:
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "a senha deve conter pelo menos um número")
	case !hasSpecial:
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "a senha deve conter pelo menos um caractere especial")
	}

	return nil
}

// ChangePassword permite que um usuário altere sua própria senha
func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return NewUserAuthError(err, apiErrors.ErrDatabaseOperation, userID, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrInvalidCurrentPassword, apiErrors.ErrInvalidCredentials, userID, "")
	}

	if currentPassword == newPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrWeakPassword, userID, "")
	}

	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewUserAuthError(err, apiErrors.ErrInternalServer, userID, "Erro ao processar senha")
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return NewUserAuthError(err, apiErrors.ErrDatabaseOperation, userID, "Erro ao atualizar senha")
	}

	logrus.WithField("user_id", userID).Info("Senha alterada")

	return nil
}
