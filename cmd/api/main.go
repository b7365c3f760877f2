package main

import (
	"context"
	"io"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/database/mysql"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/database/redis"
	"github.com/vfg2006/foodbrand-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/api"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/config"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/scheduler"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/log"
)

type storage struct {
	snapshots repository.SnapshotStore
	users     repository.UserRepository
	closer    io.Closer
}

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := openStorage(ctx, cfg)

	insightService := insighting.NewService(store.snapshots, cfg.Metrics)
	customerService := customer.NewService(store.snapshots, insightService)
	authenticator := authenticating.NewService(store.users, cfg.Auth)

	dashboardRefreshService := scheduler.NewDashboardRefreshService(insightService, cfg)
	if err := dashboardRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do painel")
	} else {
		logrus.Info("Agendador de atualização do painel iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Customers:        customerService,
		Orders:           customerService,
		Insights:         insightService,
		Authenticator:    authenticator,
		DashboardRefresh: dashboardRefreshService,
	}, store.closer)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource permite encontrar o .env ao rodar com go run
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	if err := os.Chdir(path.Dir(file)); err != nil {
		logrus.WithError(err).Debug("Não foi possível mudar o diretório de trabalho")
	}
}

// openStorage conecta ao driver configurado em STORAGE_DRIVER
func openStorage(ctx context.Context, cfg *config.Config) storage {
	logger := logrus.WithField("driver", cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case config.StorageDriverMySQL:
		db, err := mysql.NewConnection(ctx, cfg.MySQL)
		if err != nil {
			logger.WithError(err).Fatal("Erro ao conectar ao MySQL")
		}

		if err := db.WithContext(ctx).AutoMigrate(repository.AllModels()...); err != nil {
			logger.WithError(err).Fatal("Erro ao migrar tabelas no MySQL")
		}

		sqlDB, err := db.DB()
		if err != nil {
			logger.WithError(err).Fatal("Erro ao obter conexão do MySQL")
		}

		logger.Info("Conexão com MySQL estabelecida com sucesso")
		return storage{
			snapshots: repository.NewMySQLSnapshotStore(db),
			users:     repository.NewMySQLUserRepository(db),
			closer:    sqlDB,
		}

	case config.StorageDriverRedis:
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			logger.WithError(err).Fatal("Erro ao conectar ao Redis")
		}

		logger.Info("Conexão com Redis estabelecida com sucesso")
		return storage{
			snapshots: repository.NewRedisSnapshotStore(client, cfg.Redis.Prefix),
			users:     repository.NewRedisUserRepository(client, cfg.Redis.Prefix),
			closer:    client,
		}

	default:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			logger.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
		}

		logger.Info("Conexão com PostgreSQL estabelecida com sucesso")
		return storage{
			snapshots: repository.NewPostgresSnapshotStore(conn),
			users:     repository.NewUserRepository(conn),
			closer:    conn,
		}
	}
}
