package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/mapatag/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only the flags it knows about, using
// flagx.Filter, so the -c/-config flag handled by parseJson does not break
// parsing. Invalid values panic, as with the JSON loader.
func parseFlags(cfg *Config) {
	args := flagx.Filter(os.Args[1:],
		[]string{"-s", "-d", "-r", "-l", "-f", "-o", "-b", "-e"},
		[]string{"-seed"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "store driver: sqlite, postgres, redis")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "sqlite file path or postgres DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format: text, json, zap")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "export directory")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for photos")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.BoolVar(&cfg.SeedDemoData, "seed", cfg.SeedDemoData, "seed demo data into an empty registry")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
