package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/domain"
)

//go:generate mockgen -source=snapshot.go -destination=mocks/snapshot_store.go -package=mocks

// SnapshotStore persiste as coleções inteiras de clientes e vendas.
// Cada Save substitui a coleção anterior por completo.
type SnapshotStore interface {
	LoadCustomers(ctx context.Context) ([]domain.Customer, error)
	LoadSalesRecords(ctx context.Context) ([]domain.SalesRecord, error)
	SaveCustomers(ctx context.Context, customers []domain.Customer) error
	SaveSalesRecords(ctx context.Context, records []domain.SalesRecord) error
}

// dropInvalidCustomers descarta os clientes inválidos lidos do armazenamento.
// Telefones repetidos mantêm apenas a primeira ocorrência.
func dropInvalidCustomers(driver string, customers []domain.Customer) []domain.Customer {
	valid := make([]domain.Customer, 0, len(customers))
	phones := make(map[string]struct{}, len(customers))
	ids := make(map[string]struct{}, len(customers))

	for _, c := range customers {
		if err := c.Validate(); err != nil {
			logrus.WithField("driver", driver).Warnf("Descartando cliente inválido: %v", err)
			continue
		}
		if _, ok := phones[c.Phone]; ok {
			logrus.WithField("driver", driver).Warnf("Descartando cliente %s com telefone duplicado", c.ID)
			continue
		}
		if _, ok := ids[c.ID]; ok {
			logrus.WithField("driver", driver).Warnf("Descartando cliente com id duplicado %s", c.ID)
			continue
		}

		phones[c.Phone] = struct{}{}
		ids[c.ID] = struct{}{}
		valid = append(valid, c)
	}

	return valid
}

func dropInvalidSalesRecords(driver string, records []domain.SalesRecord) []domain.SalesRecord {
	valid := make([]domain.SalesRecord, 0, len(records))

	for _, r := range records {
		if err := r.Validate(); err != nil {
			logrus.WithField("driver", driver).Warnf("Descartando venda inválida: %v", err)
			continue
		}
		valid = append(valid, r)
	}

	return valid
}
