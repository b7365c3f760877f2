package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
)

// redisUser inclui o hash da senha, omitido no JSON de domain.User
type redisUser struct {
	domain.User
	PasswordHash string `json:"password_hash"`
}

// redisUserRepository guarda cada usuário como JSON em <prefix>:user:<id>,
// com índice por email em <prefix>:user-email:<email>. O id do primeiro dono
// fica em <prefix>:owner.
type redisUserRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisUserRepository(client *redis.Client, prefix string) UserRepository {
	return &redisUserRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *redisUserRepository) key(parts ...string) string {
	key := strings.Join(parts, ":")
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *redisUserRepository) userKey(id int) string {
	return r.key("user", strconv.Itoa(id))
}

func (r *redisUserRepository) emailKey(email string) string {
	return r.key("user-email", strings.ToLower(email))
}

func (r *redisUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := r.client.Incr(ctx, r.key("user-seq")).Result()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id do usuário: %w", err)
	}

	reserved, err := r.client.SetNX(ctx, r.emailKey(user.Email), id, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("erro ao reservar email: %w", err)
	}
	if !reserved {
		return nil, ErrUserEmailTaken
	}

	now := time.Now().UTC()
	user.ID = int(id)
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := r.put(ctx, user); err != nil {
		_ = r.client.Del(ctx, r.emailKey(user.Email)).Err()
		return nil, err
	}

	if user.RoleID == domain.RoleOwner {
		if err := r.client.SetNX(ctx, r.key("owner"), user.ID, 0).Err(); err != nil {
			return nil, fmt.Errorf("erro ao registrar dono: %w", err)
		}
	}

	return user, nil
}

func (r *redisUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	current, err := r.GetUserByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("usuário %d não encontrado", user.ID)
	}

	current.Active = user.Active
	if user.Name != "" {
		current.Name = user.Name
	}
	if user.Company != "" {
		current.Company = user.Company
	}
	if user.PasswordHash != "" {
		current.PasswordHash = user.PasswordHash
	}
	if user.RoleID != 0 {
		current.RoleID = user.RoleID
	}
	if user.Email != "" && !strings.EqualFold(user.Email, current.Email) {
		reserved, err := r.client.SetNX(ctx, r.emailKey(user.Email), current.ID, 0).Result()
		if err != nil {
			return fmt.Errorf("erro ao reservar email: %w", err)
		}
		if !reserved {
			return ErrUserEmailTaken
		}
		_ = r.client.Del(ctx, r.emailKey(current.Email)).Err()
		current.Email = user.Email
	}
	current.UpdatedAt = time.Now().UTC()

	return r.put(ctx, current)
}

func (r *redisUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, err := r.client.Get(ctx, r.emailKey(email)).Int()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar índice de email: %w", err)
	}

	return r.GetUserByID(ctx, id)
}

func (r *redisUserRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	data, err := r.client.Get(ctx, r.userKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	var stored redisUser
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("erro ao decodificar usuário: %w", err)
	}

	user := stored.User
	user.PasswordHash = stored.PasswordHash
	return &user, nil
}

func (r *redisUserRepository) HasOwner(ctx context.Context) (bool, error) {
	n, err := r.client.Exists(ctx, r.key("owner")).Result()
	if err != nil {
		return false, fmt.Errorf("erro ao verificar dono: %w", err)
	}
	return n > 0, nil
}

func (r *redisUserRepository) put(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(redisUser{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return fmt.Errorf("erro ao codificar usuário: %w", err)
	}

	if err := r.client.Set(ctx, r.userKey(user.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("erro ao salvar usuário: %w", err)
	}
	return nil
}
