package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/rmaestri/shop-manager-api/internal/config"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BackupExportConfig representa a configuração do agendador de backups
type BackupExportConfig struct {
	CronSchedule string
	OutputDir    string
	Enabled      bool
}

// BackupExportService agenda a exportação noturna do pacote de dados de
// cada tenant para arquivos JSON em disco.
type BackupExportService struct {
	scheduler           *gocron.Scheduler
	config              BackupExportConfig
	storage             *storing.Service
	syncRunning         bool
	syncMutex           sync.Mutex
	lastExportStartedAt time.Time
	lastExportEndedAt   time.Time
}

// NewBackupExportService cria uma nova instância do serviço de backup
func NewBackupExportService(storage *storing.Service, appConfig *config.Config) *BackupExportService {
	backupConfig := BackupExportConfig{
		CronSchedule: appConfig.Backup.CronSchedule,
		OutputDir:    appConfig.Backup.OutputDir,
		Enabled:      appConfig.Backup.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": backupConfig.CronSchedule,
		"output_dir":    backupConfig.OutputDir,
		"enabled":       backupConfig.Enabled,
	}).Info("Configuração do agendador de backups carregada")

	return &BackupExportService{
		scheduler: scheduler,
		config:    backupConfig,
		storage:   storage,
	}
}

// Start inicia o agendador
func (s *BackupExportService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Exportação agendada de backups desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de backups")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.exportAllTenants(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar exportação de backups: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de backups")
		s.scheduler.Stop()
	}()

	return nil
}

// exportAllTenants exporta o pacote de cada tenant conhecido. A lista de
// tenants vem dos registros de configuração, que todo tenant ativo possui.
func (s *BackupExportService) exportAllTenants(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Exportação de backups já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	s.lastExportStartedAt = time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastExportEndedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando exportação de backups de todos os tenants")

	allSettings, err := s.storage.ListSettings(ctx, tenant.System(tenant.Master))
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar tenants para exportação")
		return
	}

	exported := 0
	for _, settings := range allSettings {
		if err := s.exportTenant(ctx, settings.TenantID); err != nil {
			logrus.WithError(err).Errorf("Erro ao exportar backup do tenant %s", settings.TenantID)
			continue
		}
		exported++
	}

	logrus.WithFields(logrus.Fields{
		"tenants":     len(allSettings),
		"exported":    exported,
		"duration_ms": time.Since(s.lastExportStartedAt).Milliseconds(),
	}).Info("Exportação de backups finalizada")
}

func (s *BackupExportService) exportTenant(ctx context.Context, tenantID string) error {
	bundle, err := s.storage.ExportTenantData(ctx, tenant.System(tenantID), false)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.config.OutputDir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s-%s.json", tenantID, time.Now().Format("2006-01-02"))
	path := filepath.Join(s.config.OutputDir, name)

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"tenant": tenantID,
		"file":   path,
	}).Info("Backup do tenant exportado")

	return nil
}

// TriggerManualExport dispara uma exportação fora do agendamento
func (s *BackupExportService) TriggerManualExport() {
	go s.exportAllTenants(context.Background())
}

// GetStatus devolve o estado atual do agendador
func (s *BackupExportService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":           s.config.Enabled,
		"cron_schedule":     s.config.CronSchedule,
		"running":           s.syncRunning,
		"last_started_at":   s.lastExportStartedAt,
		"last_completed_at": s.lastExportEndedAt,
	}
}
