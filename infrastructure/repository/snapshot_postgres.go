package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
)

const (
	customersTable    = "customers"
	salesRecordsTable = "sales_records"

	// limite de linhas por INSERT para não estourar o máximo de parâmetros do postgres
	insertBatchSize = 500
)

type postgresSnapshotStore struct {
	conn postgres.Conn
}

func NewPostgresSnapshotStore(conn postgres.Conn) SnapshotStore {
	return &postgresSnapshotStore{
		conn: conn,
	}
}

func (s *postgresSnapshotStore) LoadCustomers(ctx context.Context) ([]domain.Customer, error) {
	query, args, err := squirrel.
		Select("id", "name", "phone", "address", "order_count", "total_spent", "last_order").
		From(customersTable).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar clientes: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var (
			customer  domain.Customer
			lastOrder sql.NullTime
		)

		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Phone,
			&customer.Address,
			&customer.OrderCount,
			&customer.TotalSpent,
			&lastOrder,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}

		if lastOrder.Valid {
			customer.LastOrder = lastOrder.Time.Format(time.DateOnly)
		}

		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return dropInvalidCustomers("postgres", customers), nil
}

func (s *postgresSnapshotStore) LoadSalesRecords(ctx context.Context) ([]domain.SalesRecord, error) {
	query, args, err := squirrel.
		Select("date", "amount", "customer_phone").
		From(salesRecordsTable).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendas: %w", err)
	}
	defer rows.Close()

	records := make([]domain.SalesRecord, 0)
	for rows.Next() {
		var (
			record domain.SalesRecord
			date   time.Time
		)

		if err := rows.Scan(&date, &record.Amount, &record.CustomerPhone); err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}

		record.Date = date.Format(time.DateOnly)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return dropInvalidSalesRecords("postgres", records), nil
}

func (s *postgresSnapshotStore) SaveCustomers(ctx context.Context, customers []domain.Customer) error {
	if err := domain.ValidateCustomers(customers); err != nil {
		return err
	}

	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+customersTable); err != nil {
			return fmt.Errorf("erro ao limpar clientes: %w", err)
		}

		for start := 0; start < len(customers); start += insertBatchSize {
			end := min(start+insertBatchSize, len(customers))

			builder := squirrel.
				Insert(customersTable).
				Columns("position", "id", "name", "phone", "address", "order_count", "total_spent", "last_order").
				PlaceholderFormat(squirrel.Dollar)

			for i, c := range customers[start:end] {
				builder = builder.Values(start+i, c.ID, c.Name, c.Phone, c.Address, c.OrderCount, c.TotalSpent, nullableDate(c.LastOrder))
			}

			query, args, err := builder.ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("erro ao inserir clientes: %w", err)
			}
		}

		return nil
	})
}

func (s *postgresSnapshotStore) SaveSalesRecords(ctx context.Context, records []domain.SalesRecord) error {
	if err := domain.ValidateSalesRecords(records); err != nil {
		return err
	}

	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+salesRecordsTable); err != nil {
			return fmt.Errorf("erro ao limpar vendas: %w", err)
		}

		for start := 0; start < len(records); start += insertBatchSize {
			end := min(start+insertBatchSize, len(records))

			builder := squirrel.
				Insert(salesRecordsTable).
				Columns("position", "date", "amount", "customer_phone").
				PlaceholderFormat(squirrel.Dollar)

			for i, r := range records[start:end] {
				builder = builder.Values(start+i, r.Date, r.Amount, r.CustomerPhone)
			}

			query, args, err := builder.ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("erro ao inserir vendas: %w", err)
			}
		}

		return nil
	})
}

func nullableDate(date string) interface{} {
	if date == "" {
		return nil
	}
	return date
}
