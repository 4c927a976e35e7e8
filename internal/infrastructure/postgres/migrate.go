package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

//go:embed seed.sql
var seedSQL string

// Migrate aplica el esquema embebido. Sin argumentos pgx usa el protocolo simple,
// que admite varias sentencias en un solo Exec.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}

// Seed carga los datos de ejemplo (no duplica si ya existen).
func Seed(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, seedSQL); err != nil {
		return fmt.Errorf("cargar datos de ejemplo: %w", err)
	}
	return nil
}
