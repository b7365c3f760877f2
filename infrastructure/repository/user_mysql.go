package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"gorm.io/gorm"
)

type mysqlUserRepository struct {
	db *gorm.DB
}

func NewMySQLUserRepository(db *gorm.DB) UserRepository {
	return &mysqlUserRepository{
		db: db,
	}
}

func (r *mysqlUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("erro ao verificar email: %w", err)
	}
	if count > 0 {
		return nil, ErrUserEmailTaken
	}

	model := UserModelFromDomain(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("erro ao criar usuário: %w", err)
	}

	return model.ToDomain(), nil
}

func (r *mysqlUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	updates := map[string]interface{}{
		"active": user.Active,
	}

	if user.Name != "" {
		updates["name"] = user.Name
	}
	if user.Email != "" {
		updates["email"] = user.Email
	}
	if user.Company != "" {
		updates["company"] = user.Company
	}
	if user.PasswordHash != "" {
		updates["password_hash"] = user.PasswordHash
	}
	if user.RoleID != 0 {
		updates["role_id"] = user.RoleID
	}

	err := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", user.ID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}

	return nil
}

func (r *mysqlUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *mysqlUserRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.first(ctx, "id = ?", userID)
}

func (r *mysqlUserRepository) HasOwner(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).Where("role_id = ?", domain.RoleOwner).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("erro ao verificar dono: %w", err)
	}
	return count > 0, nil
}

func (r *mysqlUserRepository) first(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return model.ToDomain(), nil
}
