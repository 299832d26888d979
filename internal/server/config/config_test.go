package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "riskboard.db", c.DatabasePath)
	assert.Equal(t, "file", c.DatasetSource)
	assert.Equal(t, "URBAN_RISK_data.csv", c.DatasetPath)
	assert.Equal(t, "latin1", c.DatasetEncoding)
	assert.Equal(t, "", c.LogDir)
	assert.Equal(t, 0, c.BcryptCost)
	assert.Equal(t, 5, c.TopN)
	assert.Equal(t, "admin", c.S3RootUser)
	assert.Equal(t, "secretpassword", c.S3RootPassword)
	assert.Equal(t, "datasets", c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "http://127.0.0.1:9000/", c.S3BaseEndpoint)
}
