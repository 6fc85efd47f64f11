package database

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies all pending up migrations embedded in the binary.
func Migrate(dsn string, log *zap.Logger) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("migration: open embedded source: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, toPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: initialize: %w", err)
	}
	defer func() {
		srcErr, dbErr := migrator.Close()
		if srcErr != nil {
			log.Error("Failed to close migration source", zap.Error(srcErr))
		}
		if dbErr != nil {
			log.Error("Failed to close migration database", zap.Error(dbErr))
		}
	}()

	migrator.Log = &migrateLogger{log: log.Sugar()}

	current, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: read version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d", current)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database schema up to date", zap.Uint("version", current))
			return nil
		}
		return fmt.Errorf("migration: up: %w", err)
	}

	next, _, _ := migrator.Version()
	log.Info("Database migrated", zap.Uint("from", current), zap.Uint("to", next))
	return nil
}

// toPgx5DSN rewrites postgres:// URLs to the pgx5:// scheme the migrate driver registers.
func toPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

type migrateLogger struct {
	log *zap.SugaredLogger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Debugf(strings.TrimSuffix(format, "\n"), v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
