// Package app wires the database, repositories and services together.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"loglan_core/internal/config"
	"loglan_core/internal/database"
	"loglan_core/internal/repositories"
	"loglan_core/internal/selectors"
	"loglan_core/internal/services"
)

type App struct {
	Config config.Config
	Log    *zap.Logger
	DB     *gorm.DB

	Words       *repositories.WordRepository
	Definitions *repositories.DefinitionRepository
	Events      *repositories.EventRepository
	Keys        *repositories.KeyRepository
	Types       *repositories.TypeRepository
	Authors     *repositories.AuthorRepository
	Settings    *repositories.SettingRepository
	Syllables   *repositories.SyllableRepository

	Linker   *services.LinkerService
	Exporter *services.ExportService
	Sources  *services.SourceService

	pool *pgxpool.Pool
}

// New opens the configured database and builds every repository and
// service on top of it.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if err := database.EnsureDatabaseExists(ctx, cfg.Database, log); err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	return FromDB(cfg, db, log), nil
}

// FromDB builds the application around an already open connection.
func FromDB(cfg config.Config, db *gorm.DB, log *zap.Logger) *App {
	return &App{
		Config: cfg,
		Log:    log,
		DB:     db,

		Words:       repositories.NewWordRepository(db),
		Definitions: repositories.NewDefinitionRepository(db),
		Events:      repositories.NewEventRepository(db),
		Keys:        repositories.NewKeyRepository(db),
		Types:       repositories.NewTypeRepository(db),
		Authors:     repositories.NewAuthorRepository(db),
		Settings:    repositories.NewSettingRepository(db),
		Syllables:   repositories.NewSyllableRepository(db),

		Linker:   services.NewLinkerService(db, log.Named("linker")),
		Exporter: services.NewExportService(db, log.Named("export")),
		Sources:  services.NewSourceService(db),
	}
}

// Migrate brings the schema up to date.
func (a *App) Migrate(ctx context.Context) error {
	return database.RunMigrations(ctx, a.DB, a.Log)
}

// SelectorOptions are the construction options matching the open backend.
func (a *App) SelectorOptions(caseSensitive bool) []selectors.Option {
	return []selectors.Option{
		selectors.ForDB(a.DB),
		selectors.WithCaseSensitive(caseSensitive),
	}
}

// Schema returns the ER diagram service for the open backend. Postgres is
// introspected through a pgx pool that lives until Close.
func (a *App) Schema(ctx context.Context) (*services.SchemaService, error) {
	switch a.Config.Database.Driver {
	case config.DriverSQLite:
		return services.NewSchemaService(repositories.NewSQLiteSchemaRepository(a.DB)), nil
	case config.DriverPostgres:
		if a.pool == nil {
			pool, err := database.Connect(ctx, a.Config.Database, a.Log)
			if err != nil {
				return nil, err
			}
			a.pool = pool
		}
		return services.NewSchemaService(repositories.NewSchemaRepository(a.pool, "public")), nil
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnsupportedDriver, a.Config.Database.Driver)
	}
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	database.Close(a.DB, a.Log)
}
