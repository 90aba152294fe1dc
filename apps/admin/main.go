package main

import (
	"fmt"
	"log"
	"os"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
	filestore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/file"
	inmemstore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/inmem"
	mongostore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/mongo"
	pgstore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/postgres"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	cli := commandLine{}

	switch core.Conf.Storage.Backend {
	case "inmem":
		cli.svc = school.NewService(inmemstore.Open())
	case "file":
		cli.svc = school.NewService(filestore.Open(core.Conf))
	case "postgres":
		store, err := pgstore.Open(core.Conf)
		errAndDie(err)
		defer store.Close()

		db, err := pgstore.OpenDB(core.Conf)
		errAndDie(err)
		defer db.Close()
		errAndDie(db.Ping())

		cli.svc = school.NewService(store)
		cli.db = db
	case "mongo":
		store, err := mongostore.Open(core.Conf)
		errAndDie(err)
		defer store.Close()
		cli.svc = school.NewService(store)
	default:
		errAndDie(fmt.Errorf("unknown storage backend %q", core.Conf.Storage.Backend))
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
