package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/charmakemoussa99-ops/gestion-de-l-cole/apps/api/echo"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/report"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
	emailsvc "github.com/charmakemoussa99-ops/gestion-de-l-cole/services/email"
	logsvc "github.com/charmakemoussa99-ops/gestion-de-l-cole/services/logger"
	filestore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/file"
	inmemstore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/inmem"
	mongostore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/mongo"
	pgstore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/postgres"
)

func main() {
	stdLogger := log.New(os.Stdout, fmt.Sprintf("%s API : ", core.Conf.AppName), log.LstdFlags|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, core.Conf)
	logger.Enable(!(core.Conf.Debug || core.Conf.TestMode))

	if err := run(logger); err != nil {
		logger.Fatal("starting api", err)
	}
}

func run(logger core.Logger) error {
	// set up the document store
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	// set up services
	var emailSvc core.EmailService
	if core.Conf.Debug {
		emailSvc = emailsvc.NewConsoleService()
	} else {
		emailSvc = emailsvc.NewSendgridService(logger)
	}
	svc := school.NewService(store)

	app := echoapi.NewServer(&echoapi.Options{
		Address:  core.Conf.Server.Address(),
		Svc:      svc,
		Reports:  report.NewAssembler(svc),
		EmailSvc: emailSvc,
		Logger:   logger,
	})

	serverErrors := make(chan error, 1)
	go func() { serverErrors <- app.Start() }()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case <-app.ShutdownSignal():
		logger.Warn("integrity issue detected, shutting down")
	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("caught signal %v, shutting down", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Stop(ctx)
}

func openStore() (school.Store, func(), error) {
	noop := func() {}
	switch core.Conf.Storage.Backend {
	case "inmem":
		return inmemstore.Open(), noop, nil
	case "file":
		return filestore.Open(core.Conf), noop, nil
	case "postgres":
		store, err := pgstore.Open(core.Conf)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	case "mongo":
		store, err := mongostore.Open(core.Conf)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", core.Conf.Storage.Backend)
	}
}
