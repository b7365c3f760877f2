package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/api/handler"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/config"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/scheduler"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/foodbrand-dashboard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	closers    []io.Closer
}

// Services agrupa os casos de uso expostos pela API
type Services struct {
	Customers        customer.CustomerService
	Orders           customer.OrderService
	Insights         insighting.Insighter
	Authenticator    authenticating.Authenticator
	DashboardRefresh *scheduler.DashboardRefreshService
}

func NewHandler(cfg config.Server, services Services) http.Handler {
	cronServices := handler.CronJobServices{
		DashboardRefreshService: services.DashboardRefresh,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Customers(services.Customers)...),
		router.WithRoutes(handler.Orders(services.Orders)...),
		router.WithRoutes(handler.Insights(services.Insights)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.AllowedOrigins...),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

// New monta o servidor HTTP; closers são fechados no desligamento, depois do servidor
func New(cfg *config.Config, services Services, closers ...io.Closer) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg.Server, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
		closers: closers,
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("Servidor HTTP desligado com sucesso")

	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao liberar recurso no desligamento")
		}
	}

	return nil
}
