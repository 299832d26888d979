package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http": "www.example:9000",
		"database_path":      "gate.db",
		"dataset_source":     "s3",
		"dataset_path":       "risk.csv",
		"dataset_encoding":   "utf-8",
		"bcrypt_cost":        12,
		"top_n":              7,
		"s3_bucket":          "bucket",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJSON(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "gate.db", cfg.DatabasePath)
		assert.Equal(t, "s3", cfg.DatasetSource)
		assert.Equal(t, "risk.csv", cfg.DatasetPath)
		assert.Equal(t, "utf-8", cfg.DatasetEncoding)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, 7, cfg.TopN)
		assert.Equal(t, "bucket", cfg.S3Bucket)
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"database_path": "other.db"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJSON(cfg)

		assert.Equal(t, "other.db", cfg.DatabasePath)
		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, "latin1", cfg.DatasetEncoding)
	})

	t.Run("no flag means no overlay", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJSON(cfg)

		assert.Equal(t, "riskboard.db", cfg.DatabasePath)
	})
}

func Test_parseEnv(t *testing.T) {
	t.Setenv("RISKBOARD_HTTP_ADDR", ":7070")
	t.Setenv("RISKBOARD_DATASET_SOURCE", "s3")
	t.Setenv("RISKBOARD_TOP_N", "3")
	t.Setenv("RISKBOARD_BCRYPT_COST", "not-a-number")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "s3", cfg.DatasetSource)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, 0, cfg.BcryptCost, "unparseable int keeps the default")
}
