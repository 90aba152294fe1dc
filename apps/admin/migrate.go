package main

import (
	"errors"

	"github.com/trezcool/goose"

	pgstore "github.com/charmakemoussa99-ops/gestion-de-l-cole/storage/docstore/postgres"
)

var gooseRunFunc = goose.RunFS // mockable

var errNoDB = errors.New("migrations require the postgres storage backend")

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDB
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, pgstore.Migrations, pgstore.MigrationsDir, arguments...)
}
