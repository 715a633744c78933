package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vetstock-api/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "postgres://postgres:@localhost:5432/vetstock?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("DB_MAX_CONNS", "abc")
	v.Set("DB_PASSWORD", "p@ss/word")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 25, cfg.DB.MaxConns, "valor inválido vuelve al default")
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%2Fword")
}

func TestFromViper_Invalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "sqlite")
	_, err := config.FromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("HTTP_PORT", 70000)
	_, err = config.FromViper(v)
	assert.Error(t, err)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_NAME", "vetstock-test")
	t.Setenv("LOG_LEVEL", "debug")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "vetstock-test", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
}
