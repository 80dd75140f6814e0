package main

import (
	"errors"
	"flag"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	infrapg "github.com/jhoicas/menu-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/menu-admin-api/pkg/config"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

// Aplica las migraciones embebidas en el binario contra la base configurada (DATABASE_URL o DB_*).
func main() {
	var (
		command = flag.String("command", "up", "comando de migración (up, down, steps, force, version)")
		steps   = flag.Int("steps", 1, "número de pasos para -command=steps (negativo revierte)")
		version = flag.Int("version", 1, "versión para -command=force")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	pgxCfg, err := pgx.ParseConfig(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("DSN inválido")
	}
	db := stdlib.OpenDB(*pgxCfg)
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("driver de migración")
	}
	src, err := iofs.New(infrapg.Migrations, "migrations")
	if err != nil {
		log.Fatal().Err(err).Msg("fuente de migraciones")
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		log.Fatal().Err(err).Msg("crear migrador")
	}

	switch *command {
	case "up":
		log.Info().Msg("aplicando migraciones...")
		err = m.Up()
	case "down":
		log.Info().Msg("revirtiendo migraciones...")
		err = m.Down()
	case "steps":
		log.Info().Int("steps", *steps).Msg("aplicando pasos...")
		err = m.Steps(*steps)
	case "force":
		log.Info().Int("version", *version).Msg("forzando versión...")
		err = m.Force(*version)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal().Err(verr).Msg("leer versión")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión actual")
		return
	default:
		log.Fatal().Str("command", *command).Msg("comando desconocido")
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("command", *command).Msg("migración fallida")
	}
	log.Info().Str("command", *command).Msg("migración completada")
}
