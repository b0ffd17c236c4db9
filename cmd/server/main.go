package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-photo-share/internal/adapter"
	"github.com/MKhiriev/go-photo-share/internal/broker"
	"github.com/MKhiriev/go-photo-share/internal/config"
	"github.com/MKhiriev/go-photo-share/internal/handler"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/mail"
	"github.com/MKhiriev/go-photo-share/internal/server"
	"github.com/MKhiriev/go-photo-share/internal/service"
	"github.com/MKhiriev/go-photo-share/internal/store"
	"github.com/MKhiriev/go-photo-share/internal/workers"
	"github.com/MKhiriev/go-photo-share/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("go-photo-share-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	var cache store.UserCache
	if cfg.Cache.Address != "" {
		redisClient, err := store.NewRedisClient(ctx, cfg.Cache, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting redis")
		}
		defer redisClient.Close()
		cache = store.NewRedisUserCache(redisClient, log)
	} else {
		log.Warn().Msg("user cache is disabled")
	}
	storages := store.NewStorages(db, cache)

	sender, err := mail.NewSender(cfg.Mail, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail sender")
	}

	objectStorage, err := adapter.NewCloudinaryStorage(cfg.ObjectStorage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating object storage")
	}

	deps := service.Dependencies{
		Storages:      storages,
		ObjectStorage: objectStorage,
		Sender:        sender,
		BuildInfo:     buildInfo,
	}

	// the e-mail worker only runs when jobs go through the queue
	var emailWorker workers.Worker
	if cfg.Broker.URL != "" {
		b, err := broker.Dial(cfg.Broker, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting broker")
		}
		defer b.Close()

		deps.Publisher = b
		emailWorker = workers.NewEmailWorker(b, sender, log)
	} else {
		log.Warn().Msg("broker is disabled, e-mails are sent in-process")
	}

	services, err := service.NewServices(deps, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	jobs := workers.NewWorkers(
		workers.WorkerFunc(srv.RunServer),
		workers.NewBlacklistPruner(storages.BlacklistRepository, cfg.Workers.BlacklistPruneInterval, log),
		emailWorker,
	)

	log.Info().Int("workers", jobs.Len()).Msg("starting")
	if err = jobs.Run(ctx); err != nil {
		log.Error().Err(err).Msg("stopped with error")
		return
	}
	log.Info().Msg("stopped")
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.BuildDate)
	fmt.Printf("Build commit: %s\n", info.BuildCommit)
}
