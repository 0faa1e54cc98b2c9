//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"safecast-migrate/internal/app/repository/migrate"
	"safecast-migrate/internal/config"
)

// InitializeMigrator assembles a migrator for one run: logger, read-only
// sqlite source, postgres target. The returned cleanup closes both
// connections.
func InitializeMigrator(cfg config.Config) (*migrate.Migrator, func(), error) {
	wire.Build(provideLogger, provideSourceDB, provideTargetDB, provideMigrator)
	return nil, nil, nil
}
