package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
)

const (
	usersTable = "users"
)

var ErrUserEmailTaken = errors.New("email já cadastrado")

//go:generate mockgen -source=user.go -destination=mocks/user_repository.go -package=mocks

// UserRepository retorna (nil, nil) quando o usuário não existe
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
	HasOwner(ctx context.Context) (bool, error)
}

type userRepository struct {
	conn postgres.Conn
}

func NewUserRepository(conn postgres.Conn) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	queryBuilder := squirrel.
		Insert(usersTable).
		Columns("name", "email", "company", "password_hash", "active", "role_id").
		Values(user.Name, user.Email, user.Company, user.PasswordHash, user.Active, user.RoleID).
		Suffix("ON CONFLICT (email) DO NOTHING RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRowContext(ctx, usersSQL, usersArgs...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserEmailTaken
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("active", user.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID})

	if user.Name != "" {
		queryBuilder = queryBuilder.Set("name", user.Name)
	}

	if user.Email != "" {
		queryBuilder = queryBuilder.Set("email", user.Email)
	}

	if user.Company != "" {
		queryBuilder = queryBuilder.Set("company", user.Company)
	}

	if user.PasswordHash != "" {
		queryBuilder = queryBuilder.Set("password_hash", user.PasswordHash)
	}

	if user.RoleID != 0 {
		queryBuilder = queryBuilder.Set("role_id", user.RoleID)
	}

	usersSQL, usersArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	if _, err = r.conn.ExecContext(ctx, usersSQL, usersArgs...); err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": userID})
}

func (r *userRepository) HasOwner(ctx context.Context) (bool, error) {
	query, args, err := squirrel.
		Select("1").
		From(usersTable).
		Where(squirrel.Eq{"role_id": domain.RoleOwner}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var found int
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao verificar dono: %w", err)
	}

	return true, nil
}

func (r *userRepository) getUser(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	query, args, err := squirrel.
		Select("id", "name", "email", "company", "password_hash", "active", "role_id", "created_at", "updated_at").
		From(usersTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var user domain.User
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Company,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
