// Package config handles configuration for the dashboard server, including
// defaults, JSON overlay, environment variables, and command-line flags.
package config

// Config holds runtime settings for the riskboard server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the dashboard HTTP endpoint.
//   - DatabasePath: path of the single-file SQLite credential store.
//   - DatasetSource: where the indicator CSV comes from, "file" or "s3".
//   - DatasetPath: CSV path (file source) or object key (s3 source).
//   - DatasetEncoding: CSV byte encoding, "latin1" or "utf-8".
//   - LogDir: when set, logs are duplicated into rotated files there.
//   - BcryptCost: bcrypt cost for password hashing; 0 selects the default.
//   - TopN: how many top at-risk barangays the overview chart shows.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	EndpointAddrHTTP string
	DatabasePath     string
	DatasetSource    string
	DatasetPath      string
	DatasetEncoding  string
	LogDir           string
	BcryptCost       int
	TopN             int
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabasePath = "riskboard.db"
	c.DatasetSource = "file"
	c.DatasetPath = "URBAN_RISK_data.csv"
	c.DatasetEncoding = "latin1"
	c.LogDir = ""
	c.BcryptCost = 0
	c.TopN = 5
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "datasets"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
