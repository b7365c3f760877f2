package repository

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	customersKey    = "customers"
	salesRecordsKey = "salesData"
)

// redisSnapshotStore guarda cada coleção como um array JSON em uma única chave
type redisSnapshotStore struct {
	client *redis.Client
	prefix string
}

func NewRedisSnapshotStore(client *redis.Client, prefix string) SnapshotStore {
	return &redisSnapshotStore{
		client: client,
		prefix: prefix,
	}
}

func (s *redisSnapshotStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}

func (s *redisSnapshotStore) LoadCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0)
	if err := s.load(ctx, s.key(customersKey), &customers); err != nil {
		return nil, fmt.Errorf("erro ao buscar clientes: %w", err)
	}

	return dropInvalidCustomers("redis", customers), nil
}

func (s *redisSnapshotStore) LoadSalesRecords(ctx context.Context) ([]domain.SalesRecord, error) {
	records := make([]domain.SalesRecord, 0)
	if err := s.load(ctx, s.key(salesRecordsKey), &records); err != nil {
		return nil, fmt.Errorf("erro ao buscar vendas: %w", err)
	}

	return dropInvalidSalesRecords("redis", records), nil
}

func (s *redisSnapshotStore) SaveCustomers(ctx context.Context, customers []domain.Customer) error {
	if err := domain.ValidateCustomers(customers); err != nil {
		return err
	}

	if customers == nil {
		customers = []domain.Customer{}
	}

	if err := s.save(ctx, s.key(customersKey), customers); err != nil {
		return fmt.Errorf("erro ao salvar clientes: %w", err)
	}
	return nil
}

func (s *redisSnapshotStore) SaveSalesRecords(ctx context.Context, records []domain.SalesRecord) error {
	if err := domain.ValidateSalesRecords(records); err != nil {
		return err
	}

	if records == nil {
		records = []domain.SalesRecord{}
	}

	if err := s.save(ctx, s.key(salesRecordsKey), records); err != nil {
		return fmt.Errorf("erro ao salvar vendas: %w", err)
	}
	return nil
}

// load trata chave inexistente como coleção vazia
func (s *redisSnapshotStore) load(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, dest)
}

func (s *redisSnapshotStore) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, data, 0).Err()
}
