package config

// Store drivers understood by store.Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds runtime settings for the registry CLI.
//
// Fields:
//   - StoreDriver: sqlite, postgres or redis.
//   - StoreDSN: SQLite file path or PostgreSQL DSN (pgx); unused for redis.
//   - RedisAddr / RedisPassword / RedisDB / RedisKeyPrefix: redis backend.
//   - LogLevel / LogFormat: see logging.New.
//   - ExportDir: directory XLSX exports are written to.
//   - SeedDemoData: write one demo senior when the registry is empty.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey:
//     photo storage; an empty bucket disables photo uploads.
type Config struct {
	StoreDriver    string
	StoreDSN       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
	LogLevel       string
	LogFormat      string
	ExportDir      string
	SeedDemoData   bool
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with defaults suitable for a single workstation.
func (c *Config) LoadDefaults() {
	c.StoreDriver = DriverSQLite
	c.StoreDSN = "mapatag.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisKeyPrefix = "mapatag:"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.ExportDir = "."
	c.SeedDemoData = true
	c.S3Region = "us-east-1"
}

// PhotosEnabled reports whether photo storage is configured.
func (c *Config) PhotosEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
