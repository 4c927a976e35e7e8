// migrate aplica el esquema embebido de PostgreSQL y, opcionalmente, los datos de ejemplo.
//
// Uso: go run ./cmd/migrate [-seed]
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/biztime-api/internal/infrastructure/postgres"
	"github.com/jhoicas/biztime-api/pkg/config"
	"github.com/jhoicas/biztime-api/pkg/logger"
)

func main() {
	seed := flag.Bool("seed", false, "cargar datos de ejemplo después del esquema")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración")
	}
	log.Info().Msg("esquema aplicado")

	if *seed {
		if err := postgres.Seed(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("datos de ejemplo")
		}
		log.Info().Msg("datos de ejemplo cargados")
	}
}
