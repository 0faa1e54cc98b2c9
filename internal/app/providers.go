package app

import (
	"go.uber.org/zap"

	"safecast-migrate/internal/app/logging"
	"safecast-migrate/internal/app/repository/migrate"
	"safecast-migrate/internal/app/repository/pg"
	"safecast-migrate/internal/app/repository/sqlite"
	"safecast-migrate/internal/config"
)

func provideLogger() (*zap.Logger, func(), error) {
	logger, err := logging.NewLogger(false)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideSourceDB(cfg config.Config) (*sqlite.SourceDB, func(), error) {
	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

func provideTargetDB(cfg config.Config) (*pg.TargetDB, func(), error) {
	db, err := pg.Open(cfg.PGConnString())
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

func provideMigrator(cfg config.Config, source *sqlite.SourceDB, target *pg.TargetDB, logger *zap.Logger) *migrate.Migrator {
	return migrate.NewMigrator(source, target, cfg.BatchSize, logger)
}
