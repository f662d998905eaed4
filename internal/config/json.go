package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mapatag/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from an explicit zero value.
type JsonConfig struct {
	StoreDriver    string `json:"store_driver"`
	StoreDSN       string `json:"store_dsn"`
	RedisAddr      string `json:"redis_addr"`
	RedisPassword  string `json:"redis_password"`
	RedisDB        *int   `json:"redis_db"`
	RedisKeyPrefix string `json:"redis_key_prefix"`
	LogLevel       string `json:"log_level"`
	LogFormat      string `json:"log_format"`
	ExportDir      string `json:"export_dir"`
	SeedDemoData   *bool  `json:"seed_demo_data"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// comes from flagx.ConfigFilePath. Only keys present in the file are applied.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.StoreDriver, jc.StoreDriver)
	setString(&cfg.StoreDSN, jc.StoreDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.RedisKeyPrefix, jc.RedisKeyPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	if jc.SeedDemoData != nil {
		cfg.SeedDemoData = *jc.SeedDemoData
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
