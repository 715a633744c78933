package postgres

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vetstock-api/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"sin filas", pgx.ErrNoRows, domain.ErrNotFound},
		{"único", &pgconn.PgError{Code: "23505"}, domain.ErrDuplicate},
		{"fk", &pgconn.PgError{Code: "23503"}, domain.ErrNotFound},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "products_stock_level_nonneg"}, domain.ErrInvalidInput},
		{"uuid inválido", &pgconn.PgError{Code: "22P02"}, domain.ErrNotFound},
		{"fuera de rango", &pgconn.PgError{Code: "22003"}, domain.ErrInvalidInput},
		{"otro", errors.New("connection reset"), domain.ErrPersistence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError("op", tt.err), tt.want)
		})
	}
	assert.NoError(t, mapError("op", nil))
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, nullableString(""))
	require.NotNil(t, nullableString("x"))
	assert.Equal(t, "x", derefString(nullableString("x")))
	assert.Equal(t, "", derefString(nil))
}

func TestMigrationsEmbebidas(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, migrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_init.sql", entries[0].Name())

	body, err := fs.ReadFile(migrationsFS, migrationsDir+"/00001_init.sql")
	require.NoError(t, err)
	sql := string(body)
	assert.True(t, strings.HasPrefix(sql, "-- +goose Up"))
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "ON DELETE CASCADE")
	assert.Contains(t, sql, "lower(name)")
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "postgres://vet:xxxxx@db:5432/vetstock", RedactDSN("postgres://vet:secreto@db:5432/vetstock"))
}
