package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/biztime-api/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"sin filas", pgx.ErrNoRows, domain.ErrNotFound},
		{"sin filas envuelto", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"pk duplicada", &pgconn.PgError{Code: "23505", ConstraintName: "companies_pkey"}, domain.ErrDuplicate},
		{"fk rota", &pgconn.PgError{Code: "23503", ConstraintName: "invoices_comp_code_fkey"}, domain.ErrForeignKey},
		{"check", &pgconn.PgError{Code: "23514", Message: "amt > 0"}, domain.ErrInvalidInput},
		{"not null", &pgconn.PgError{Code: "23502"}, domain.ErrInvalidInput},
		{"texto inválido", &pgconn.PgError{Code: "22P02"}, domain.ErrInvalidInput},
		{"otro error de servidor", &pgconn.PgError{Code: "57P01"}, domain.ErrUnavailable},
		{"conexión", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), domain.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("op", tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassify_ConservaLaCausa(t *testing.T) {
	cause := &pgconn.PgError{Code: "57P01"}
	got := classify("list companies", cause)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(got, &pgErr), "la causa original debe seguir accesible")
	assert.Contains(t, got.Error(), "list companies")
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, classify("op", nil))
}

func TestClassify_ContextoCanceladoNoEsFalloDeTransporte(t *testing.T) {
	got := classify("op", context.Canceled)
	assert.ErrorIs(t, got, context.Canceled)
	assert.NotErrorIs(t, got, domain.ErrUnavailable)
}

func TestNotFoundIfNoRows(t *testing.T) {
	assert.ErrorIs(t, notFoundIfNoRows("delete", pgconn.NewCommandTag("DELETE 0")), domain.ErrNotFound)
	assert.NoError(t, notFoundIfNoRows("delete", pgconn.NewCommandTag("DELETE 1")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
}
