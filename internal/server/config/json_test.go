package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

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

func Test_parseJson_LoadsFromFlaggedFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"endpoint_addr":           "www.example:9000",
		"database_dsn":            "tracker.db",
		"secret_key":              "my_secret_key",
		"token_validity_duration": "45m",
		"s3_root_user":            "user",
		"s3_root_password":        "password",
		"s3_bucket":               "bucket",
		"s3_region":               "region",
		"s3_base_endpoint":        "http://127.0.0.1:9000/",
	})

	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	parseJson(cfg)

	assert.Equal(t, "www.example:9000", cfg.EndpointAddr)
	assert.Equal(t, "tracker.db", cfg.DatabaseDSN)
	assert.Equal(t, "my_secret_key", cfg.SecretKey)
	assert.Equal(t, 45*time.Minute, cfg.TokenValidityDuration)
	assert.Equal(t, "user", cfg.S3RootUser)
	assert.Equal(t, "password", cfg.S3RootPassword)
	assert.Equal(t, "bucket", cfg.S3Bucket)
	assert.Equal(t, "region", cfg.S3Region)
	assert.Equal(t, "http://127.0.0.1:9000/", cfg.S3BaseEndpoint)
}

func Test_parseJson_NoFlagIsNoOp(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
}
