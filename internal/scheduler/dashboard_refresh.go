package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/config"
	"github.com/vfg2006/foodbrand-dashboard-api/internal/usecases/insighting"
)

// DashboardRefreshConfig representa a configuração do agendador de atualização do painel
type DashboardRefreshConfig struct {
	CronSchedule string
	Enabled      bool
}

// DashboardRefreshService recalcula periodicamente o painel guardado em cache
type DashboardRefreshService struct {
	scheduler *gocron.Scheduler
	config    DashboardRefreshConfig
	insighter insighting.Insighter

	syncMutex            sync.Mutex
	syncRunning          bool
	lastSyncStartedAt    time.Time
	lastSyncCompletedAt  time.Time
	lastError            string
	lastInactiveCount    int
	lastCustomerCount    int
	completedRefreshRuns int
}

func NewDashboardRefreshService(insighter insighting.Insighter, appConfig *config.Config) *DashboardRefreshService {
	refreshConfig := DashboardRefreshConfig{
		CronSchedule: appConfig.DashboardRefresh.CronSchedule,
		Enabled:      appConfig.DashboardRefresh.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"enabled":       refreshConfig.Enabled,
	}).Info("Configuração do agendador de atualização do painel carregada")

	return &DashboardRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		insighter: insighter,
	}
}

// Start inicia o agendador
func (s *DashboardRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Atualização agendada do painel desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atualização do painel")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RefreshDashboard(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do painel: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização do painel")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshDashboard recalcula o painel; execuções sobrepostas são ignoradas
func (s *DashboardRefreshService) RefreshDashboard(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do painel já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()

	overview, err := s.insighter.RefreshOverview(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro ao atualizar painel")
		return
	}

	s.lastError = ""
	s.lastSyncCompletedAt = time.Now()
	s.lastCustomerCount = overview.TotalCustomers
	s.lastInactiveCount = overview.InactiveCustomers
	s.completedRefreshRuns++

	logrus.WithFields(logrus.Fields{
		"duration":           time.Since(startTime).String(),
		"total_customers":    overview.TotalCustomers,
		"inactive_customers": overview.InactiveCustomers,
	}).Info("Painel atualizado")

	if overview.InactiveCustomers > 0 {
		logrus.WithField("inactive_customers", overview.InactiveCustomers).Warn("Existem clientes inativos aguardando contato")
	}
}

// TriggerManualSync inicia manualmente uma atualização do painel
func (s *DashboardRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do painel já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do painel")
	go s.RefreshDashboard(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *DashboardRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_error":             s.lastError,
		"last_customer_count":    s.lastCustomerCount,
		"last_inactive_count":    s.lastInactiveCount,
		"completed_runs":         s.completedRefreshRuns,
	}
}
