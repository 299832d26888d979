package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with RISKBOARD_* environment variables. A .env
// file in the working directory is honored first; a missing file is fine.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("RISKBOARD_HTTP_ADDR"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("RISKBOARD_DATABASE_PATH"); ok {
		config.DatabasePath = v
	}
	if v, ok := os.LookupEnv("RISKBOARD_DATASET_SOURCE"); ok {
		config.DatasetSource = v
	}
	if v, ok := os.LookupEnv("RISKBOARD_DATASET_PATH"); ok {
		config.DatasetPath = v
	}
	if v, ok := os.LookupEnv("RISKBOARD_DATASET_ENCODING"); ok {
		config.DatasetEncoding = v
	}
	if v, ok := os.LookupEnv("RISKBOARD_LOG_DIR"); ok {
		config.LogDir = v
	}
	if v, ok := os.LookupEnv("RISKBOARD_BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
	if v, ok := os.LookupEnv("RISKBOARD_TOP_N"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.TopN = n
		}
	}
	if v, ok := os.LookupEnv("RISKBOARD_S3_ROOT_USER"); ok {
		config.S3RootUser = v
	}
	if v, ok := os.LookupEnv("RISKBOARD_S3_ROOT_PASSWORD"); ok {
		config.S3RootPassword = v
	}
	if v, ok := os.LookupEnv("RISKBOARD_S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("RISKBOARD_S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("RISKBOARD_S3_BASE_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
}
