package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/config"
)

const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// Queryer é satisfeito tanto por *sql.DB quanto por *sql.Tx, permitindo
// que os repositórios rodem a mesma query dentro ou fora de transação
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

type Connection struct {
	*sql.DB
}

func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "falha ao abrir conexão com postgres")
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "postgres não respondeu ao ping")
	}

	logrus.WithField("max_open_conns", maxOpenConns).Debug("Pool do postgres inicializado")

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction executa fn numa transação. Erro ou panic em fn desfaz tudo.
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "falha ao iniciar transação")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logrus.WithError(rbErr).Error("Falha ao desfazer transação")
		}
		return err
	}

	return errors.Wrap(tx.Commit(), "falha ao confirmar transação")
}
