package driver

import (
	"database/sql"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"

	"embed"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return errors.Wrap(err, "load migrations")
	}

	target, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return errors.Wrap(err, "prepare migration target")
	}

	m, err := migrate.NewWithInstance("iofs", source, "mysql", target)
	if err != nil {
		return errors.Wrap(err, "prepare migrations")
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}
