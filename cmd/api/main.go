package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection"
	"github.com/rmaestri/shop-manager-api/infrastructure/repository"
	"github.com/rmaestri/shop-manager-api/internal/api"
	"github.com/rmaestri/shop-manager-api/internal/config"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/scheduler"
	"github.com/rmaestri/shop-manager-api/internal/usecases/auditing"
	"github.com/rmaestri/shop-manager-api/internal/usecases/authenticating"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newStore(ctx, cfg)
	defer store.Close()

	auditService := auditing.NewService(repository.New[*domain.AuditLogEntry](store, "auditLogs"))
	storageService := storing.NewService(store, auditService)

	authenticator := authenticating.NewService(storageService.Users(), cfg)

	// Drena as falhas de auditoria para o log da aplicação
	go func() {
		for err := range auditService.Failures() {
			logrus.WithError(err).Warn("Falha de auditoria observada")
		}
	}()

	backupService := scheduler.NewBackupExportService(storageService, cfg)
	if err := backupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de backups")
	} else {
		logrus.Info("Agendador de backups iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		storageService,
		authenticator,
		backupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// newStore escolhe o backend de coleções a partir da configuração
func newStore(ctx context.Context, cfg *config.Config) collection.Store {
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		store, err := collection.NewPostgresStore(ctx, cfg.Database.DSN)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
		}
		logrus.Info("Armazenamento de coleções no PostgreSQL")
		return store

	case config.StorageRedis:
		store := collection.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		logrus.Info("Armazenamento de coleções no Redis")
		return store

	default:
		store, err := collection.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao preparar o diretório de dados")
		}
		logrus.WithField("dir", cfg.Storage.DataDir).Info("Armazenamento de coleções em arquivos")
		return store
	}
}
