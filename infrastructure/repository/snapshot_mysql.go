package repository

import (
	"context"
	"fmt"

	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
	"gorm.io/gorm"
)

type mysqlSnapshotStore struct {
	db *gorm.DB
}

func NewMySQLSnapshotStore(db *gorm.DB) SnapshotStore {
	return &mysqlSnapshotStore{
		db: db,
	}
}

func (s *mysqlSnapshotStore) LoadCustomers(ctx context.Context) ([]domain.Customer, error) {
	var models []CustomerModel
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("erro ao buscar clientes: %w", err)
	}

	customers := make([]domain.Customer, 0, len(models))
	for i := range models {
		customers = append(customers, models[i].ToDomain())
	}

	return dropInvalidCustomers("mysql", customers), nil
}

func (s *mysqlSnapshotStore) LoadSalesRecords(ctx context.Context) ([]domain.SalesRecord, error) {
	var models []SalesRecordModel
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("erro ao buscar vendas: %w", err)
	}

	records := make([]domain.SalesRecord, 0, len(models))
	for i := range models {
		records = append(records, models[i].ToDomain())
	}

	return dropInvalidSalesRecords("mysql", records), nil
}

func (s *mysqlSnapshotStore) SaveCustomers(ctx context.Context, customers []domain.Customer) error {
	if err := domain.ValidateCustomers(customers); err != nil {
		return err
	}

	models := make([]CustomerModel, 0, len(customers))
	for i, c := range customers {
		models = append(models, CustomerModelFromDomain(i, c))
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&CustomerModel{}).Error; err != nil {
			return fmt.Errorf("erro ao limpar clientes: %w", err)
		}

		if len(models) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(models, insertBatchSize).Error; err != nil {
			return fmt.Errorf("erro ao inserir clientes: %w", err)
		}

		return nil
	})
}

func (s *mysqlSnapshotStore) SaveSalesRecords(ctx context.Context, records []domain.SalesRecord) error {
	if err := domain.ValidateSalesRecords(records); err != nil {
		return err
	}

	models := make([]SalesRecordModel, 0, len(records))
	for i, r := range records {
		models = append(models, SalesRecordModelFromDomain(i, r))
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&SalesRecordModel{}).Error; err != nil {
			return fmt.Errorf("erro ao limpar vendas: %w", err)
		}

		if len(models) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(models, insertBatchSize).Error; err != nil {
			return fmt.Errorf("erro ao inserir vendas: %w", err)
		}

		return nil
	})
}
