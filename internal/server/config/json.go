package config

import (
	"encoding/json"
	"os"

	"github.com/klimata/riskboard/internal/flagx"
)

// jsonConfig mirrors Config for JSON unmarshalling. Absent keys leave the
// corresponding Config field untouched, so the file only has to name the
// settings it overrides.
type jsonConfig struct {
	EndpointAddrHTTP *string `json:"endpoint_addr_http"`
	DatabasePath     *string `json:"database_path"`
	DatasetSource    *string `json:"dataset_source"`
	DatasetPath      *string `json:"dataset_path"`
	DatasetEncoding  *string `json:"dataset_encoding"`
	LogDir           *string `json:"log_dir"`
	BcryptCost       *int    `json:"bcrypt_cost"`
	TopN             *int    `json:"top_n"`
	S3RootUser       *string `json:"s3_root_user"`
	S3RootPassword   *string `json:"s3_root_password"`
	S3Bucket         *string `json:"s3_bucket"`
	S3Region         *string `json:"s3_region"`
	S3BaseEndpoint   *string `json:"s3_base_endpoint"`
}

// parseJSON loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If neither flag is set, nothing
// is loaded. An unreadable or malformed file panics: a config file that was
// explicitly requested but cannot be used is a startup bug, not a condition
// to limp past.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFile()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabasePath != nil {
		config.DatabasePath = *c.DatabasePath
	}
	if c.DatasetSource != nil {
		config.DatasetSource = *c.DatasetSource
	}
	if c.DatasetPath != nil {
		config.DatasetPath = *c.DatasetPath
	}
	if c.DatasetEncoding != nil {
		config.DatasetEncoding = *c.DatasetEncoding
	}
	if c.LogDir != nil {
		config.LogDir = *c.LogDir
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.TopN != nil {
		config.TopN = *c.TopN
	}
	if c.S3RootUser != nil {
		config.S3RootUser = *c.S3RootUser
	}
	if c.S3RootPassword != nil {
		config.S3RootPassword = *c.S3RootPassword
	}
	if c.S3Bucket != nil {
		config.S3Bucket = *c.S3Bucket
	}
	if c.S3Region != nil {
		config.S3Region = *c.S3Region
	}
	if c.S3BaseEndpoint != nil {
		config.S3BaseEndpoint = *c.S3BaseEndpoint
	}
}
