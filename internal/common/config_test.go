package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("INFERENCE_URL", "")

	cfg := LoadConfig()
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, ":8080", cfg.Server.GRPCAddr)
	assert.Equal(t, 45*time.Second, cfg.Inference.Timeout)
	assert.Equal(t, 4, cfg.Queue.Workers)
	assert.True(t, cfg.Ingest.InitialScan)
	assert.Nil(t, cfg.Ingest.WatchRoots)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/invoices")
	t.Setenv("INFERENCE_TIMEOUT", "10s")
	t.Setenv("QUEUE_WORKERS", "8")
	t.Setenv("WATCH_ROOTS", "/inbox, /scans ,")

	cfg := LoadConfig()
	assert.Equal(t, "postgres://localhost/invoices", cfg.Database.DSN)
	assert.Equal(t, 10*time.Second, cfg.Inference.Timeout)
	assert.Equal(t, 8, cfg.Queue.Workers)
	assert.Equal(t, []string{"/inbox", "/scans"}, cfg.Ingest.WatchRoots)
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{
		Database:  DatabaseConfig{DSN: "postgres://localhost/invoices"},
		Server:    ServerConfig{GRPCAddr: ":8080"},
		Inference: InferenceConfig{BaseURL: "https://inference.example", APIKey: "k"},
	}
	require.NoError(t, cfg.Validate())

	missingKey := *cfg
	missingKey.Inference.APIKey = ""
	err := missingKey.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	missingDSN := *cfg
	missingDSN.Database.DSN = ""
	assert.Error(t, missingDSN.Validate())
}
