package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromTOML(t *testing.T, body string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(body)))
	return FromViper(v)
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromTOML(t, "")
	require.NoError(t, err)

	assert.Equal(t, "thienphuoc-erp", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 15*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "erp", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.BalanceCacheTTL)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	assert.Equal(t, "thienphuoc-erp", cfg.Telemetry.ServiceName)
	assert.Equal(t, "100-M", cfg.HTTP.RateLimit)
	assert.Equal(t, int64(1<<20), cfg.HTTP.BodyLimit)
	assert.True(t, cfg.HTTP.SwaggerEnabled)
	assert.Equal(t, "receipts", cfg.Storage.KeyPrefix)
	assert.False(t, cfg.IsProduction())
}

func TestFromViper_File(t *testing.T) {
	cfg, err := fromTOML(t, `
[app]
name = "erp-hcm"
port = "9090"

[database]
host = "db.internal"
name = "thienphuoc"
max_open_conns = 40
slow_threshold = "500ms"

[redis]
enabled = true
addr = "cache:6379"
balance_cache_ttl = "30s"

[telemetry]
sampling_ratio = 0.25

[http]
cors_origins = ["https://erp.example.vn", "http://localhost:3000"]
rate_limit = "20-S"
swagger_enabled = false

[storage]
receipt_archive_enabled = true
bucket = "erp-receipts"
`)
	require.NoError(t, err)

	assert.Equal(t, "erp-hcm", cfg.App.Name)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 40, cfg.Database.MaxOpenConns)
	assert.Equal(t, 500*time.Millisecond, cfg.Database.SlowThreshold)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.BalanceCacheTTL)
	assert.Equal(t, 0.25, cfg.Telemetry.SamplingRatio)
	assert.Equal(t, []string{"https://erp.example.vn", "http://localhost:3000"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "20-S", cfg.HTTP.RateLimit)
	assert.False(t, cfg.HTTP.SwaggerEnabled)
	assert.True(t, cfg.Storage.ReceiptArchiveEnabled)
	assert.Equal(t, "erp-receipts", cfg.Storage.Bucket)
}

func TestFromViper_EnvOverridesFile(t *testing.T) {
	t.Setenv("ERP_DATABASE_HOST", "env-host")
	t.Setenv("ERP_DATABASE_PASSWORD", "s3cret")
	t.Setenv("ERP_HTTP_CORS_ORIGINS", "https://a.vn, https://b.vn")

	cfg, err := fromTOML(t, `
[database]
host = "file-host"
`)
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, []string{"https://a.vn", "https://b.vn"}, cfg.HTTP.CORSOrigins)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		toml    string
		wantErr string
	}{
		{"non numeric port", "[app]\nport = \"http\"", "app.port"},
		{"port out of range", "[app]\nport = \"70000\"", "app.port"},
		{"unknown log level", "[log]\nlevel = \"verbose\"", "log.level"},
		{"sampling ratio above one", "[telemetry]\nsampling_ratio = 1.5", "sampling_ratio"},
		{"negative sampling ratio", "[telemetry]\nsampling_ratio = -0.1", "sampling_ratio"},
		{"idle exceeds open", "[database]\nmax_open_conns = 2\nmax_idle_conns = 3", "max_idle_conns"},
		{"archive without bucket", "[storage]\nreceipt_archive_enabled = true", "storage.bucket"},
		{"profiling without address", "[profiling]\nenabled = true", "profiling.server_address"},
		{"production without password", "[app]\nenv = \"production\"", "database.password"},
		{"production wildcard cors", "[app]\nenv = \"production\"\n[database]\npassword = \"x\"\n[http]\ncors_origins = [\"*\"]", "cors_origins"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fromTOML(t, tc.toml)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_EmptyDatabaseHost(t *testing.T) {
	cfg, err := fromTOML(t, "")
	require.NoError(t, err)

	cfg.Database.Host = " "
	assert.ErrorContains(t, cfg.Validate(), "database.host")

	cfg.Database.Host = "localhost"
	cfg.Database.DBName = ""
	assert.ErrorContains(t, cfg.Validate(), "database.name")
}

func TestDatabaseConfig_DSNAndURL(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "erp", Password: "p@ss:word", DBName: "erp", SSLMode: "require"}

	assert.Equal(t, "host=db port=5433 user=erp password=p@ss:word dbname=erp sslmode=require TimeZone=Asia/Ho_Chi_Minh", d.DSN())
	assert.Equal(t, "postgres://erp:p%40ss%3Aword@db:5433/erp?sslmode=require", d.URL())
}
